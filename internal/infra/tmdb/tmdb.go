package infra_tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/humanbelnik/moviematch/internal/config"
	"github.com/humanbelnik/moviematch/internal/model"
	usecase_catalog "github.com/humanbelnik/moviematch/internal/usecase/catalog"
)

const maxBodySize = 5 * 1024 * 1024

var errStatusNotFound = errors.New("upstream status 404")

// HTTPClient is the subset of *http.Client the gateway needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	client   HTTPClient
	baseURL  string
	apiKey   string
	language string

	logger *slog.Logger
}

type ClientOption func(*Client)

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithHTTPClient(client HTTPClient) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

func New(cfg config.Catalog, opts ...ClientOption) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		client:   &http.Client{Timeout: timeout},
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type genresResponse struct {
	Genres []model.Genre `json:"genres"`
}

func (c *Client) Genres(ctx context.Context) ([]model.Genre, error) {
	var resp genresResponse
	if err := c.get(ctx, "/genre/movie/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

func (c *Client) Discover(ctx context.Context, page int, genreID *int64) (model.DiscoverPage, error) {
	params := url.Values{}
	params.Set("sort_by", "popularity.desc")
	params.Set("include_adult", "false")
	params.Set("page", strconv.Itoa(page))
	if genreID != nil {
		params.Set("with_genres", strconv.FormatInt(*genreID, 10))
	}

	var resp model.DiscoverPage
	if err := c.get(ctx, "/discover/movie", params, &resp); err != nil {
		return model.DiscoverPage{}, err
	}
	if resp.Results == nil {
		resp.Results = []model.MovieSummary{}
	}
	return resp, nil
}

func (c *Client) Movie(ctx context.Context, id model.MovieID) (model.MovieDetail, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits")

	var resp model.MovieDetail
	err := c.get(ctx, "/movie/"+strconv.FormatInt(id, 10), params, &resp)
	if errors.Is(err, errStatusNotFound) {
		return model.MovieDetail{}, fmt.Errorf("%w: movie %d", usecase_catalog.ErrNotFound, id)
	}
	if err != nil {
		return model.MovieDetail{}, err
	}
	return resp, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dst any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %w", usecase_catalog.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: %s: %w", usecase_catalog.ErrUpstream, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("catalog request",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %w: %s", usecase_catalog.ErrUpstream, errStatusNotFound, path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("catalog returned non-2xx",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return fmt.Errorf("%w: %s: unexpected status %d", usecase_catalog.ErrUpstream, path, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode %s: %w", usecase_catalog.ErrUpstream, path, err)
	}
	return nil
}
