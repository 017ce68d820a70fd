package client_api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/humanbelnik/moviematch/internal/model"
)

var ErrNotFound = errors.New("not found")

const EventLikeSaved = "LIKE_SAVED"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a non-2xx answer of the server.
type Error struct {
	Status  int
	Message string       `json:"error"`
	Detail  string       `json:"message"`
	Fields  []FieldError `json:"errors"`
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%d %s", e.Status, e.Message)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	for _, f := range e.Fields {
		msg += fmt.Sprintf("; %s %s", f.Field, f.Message)
	}
	return msg
}

func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

type likeRequest struct {
	TmdbID   int64  `json:"tmdbId"`
	Username string `json:"username"`
	Liked    bool   `json:"liked"`
}

type likeDTO struct {
	ID       int64  `json:"id"`
	TmdbID   int64  `json:"tmdbId"`
	Username string `json:"username"`
	Liked    bool   `json:"liked"`
}

func (l likeDTO) toModel() model.Like {
	return model.Like{ID: l.ID, TmdbID: l.TmdbID, Username: l.Username, Liked: l.Liked}
}

type wsEvent struct {
	Type    string  `json:"type"`
	Payload likeDTO `json:"payload"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	dialer     *websocket.Dialer
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New builds a client for the api root, e.g. http://localhost:8080/api.
func New(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		dialer:     websocket.DefaultDialer,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Genres(ctx context.Context) ([]model.Genre, error) {
	var resp struct {
		Genres []model.Genre `json:"genres"`
	}
	if err := c.do(ctx, http.MethodGet, "/genres", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

func (c *Client) Discover(ctx context.Context, genre string, page int) (model.DiscoverPage, error) {
	q := url.Values{}
	if genre != "" {
		q.Set("genre", genre)
	}
	q.Set("page", strconv.Itoa(page))

	var resp model.DiscoverPage
	if err := c.do(ctx, http.MethodGet, "/movies/discover?"+q.Encode(), nil, &resp); err != nil {
		return model.DiscoverPage{}, err
	}
	return resp, nil
}

func (c *Client) Movie(ctx context.Context, id model.MovieID) (model.MovieDetail, error) {
	var resp model.MovieDetail
	if err := c.do(ctx, http.MethodGet, "/movies/"+strconv.FormatInt(id, 10), nil, &resp); err != nil {
		return model.MovieDetail{}, err
	}
	return resp, nil
}

func (c *Client) Like(ctx context.Context, tmdbID model.MovieID, username string, liked model.Reaction) (model.Like, error) {
	var resp likeDTO
	req := likeRequest{TmdbID: tmdbID, Username: username, Liked: liked}
	if err := c.do(ctx, http.MethodPost, "/movies/like", req, &resp); err != nil {
		return model.Like{}, err
	}
	return resp.toModel(), nil
}

// Matches returns details of the movies the user liked.
func (c *Client) Matches(ctx context.Context, username string) ([]model.MovieDetail, error) {
	var resp []model.MovieDetail
	if err := c.do(ctx, http.MethodGet, "/movies/likes/"+url.PathEscape(username), nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// WatchLikes streams the user's saved reactions to fn until ctx is done
// or the connection drops.
func (c *Client) WatchLikes(ctx context.Context, username string, fn func(model.Like)) error {
	u, err := url.Parse(c.baseURL + "/ws/likes/" + url.PathEscape(username))
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	conn, _, err := c.dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("websocket connection failed: %w", err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		var event wsEvent
		if err := conn.ReadJSON(&event); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if event.Type == EventLikeSaved {
			fn(event.Payload.toModel())
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, dst any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		if json.Unmarshal(raw, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if dst == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
