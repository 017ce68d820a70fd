// Package deck holds the client side of swiping: the card stack, the feed
// session that refills it page by page, and the detail view.
package deck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/sethvargo/go-retry"
)

var (
	ErrDirectionRejected = errors.New("only left and right swipes are accepted")
	ErrNotReady          = errors.New("deck is not ready")
)

type State int

const (
	StateLoading State = iota
	StateReady
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateExhausted:
		return "exhausted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Overlay is the like/dislike badge shown while a swipe resolves.
type Overlay struct {
	Like    bool
	Visible bool
}

// Card is a movie with its position from the top of the stack; the top card has rank 0.
type Card struct {
	Movie model.MovieSummary
	Rank  int
}

// Recorder persists a reaction.
type Recorder interface {
	Like(ctx context.Context, tmdbID model.MovieID, username string, liked model.Reaction) (model.Like, error)
}

type Deck struct {
	username string
	recorder Recorder

	// swipeMu serializes swipes; hooks run under it and must not swipe.
	swipeMu sync.Mutex

	mu      sync.RWMutex
	items   []model.MovieSummary
	cursor  int
	state   State
	overlay Overlay

	onOverlay func(Overlay)
	onError   func(model.MovieID, error)
	backoff   func() retry.Backoff
	logger    *slog.Logger

	inflight sync.WaitGroup
}

type Option func(*Deck)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Deck) {
		d.logger = logger
	}
}

// WithOverlayHook is called when the overlay is shown and when it is cleared.
func WithOverlayHook(fn func(Overlay)) Option {
	return func(d *Deck) {
		d.onOverlay = fn
	}
}

// WithErrorHook reports reactions that could not be persisted.
func WithErrorHook(fn func(model.MovieID, error)) Option {
	return func(d *Deck) {
		d.onError = fn
	}
}

// WithRetry retries failed persistence using a fresh backoff per reaction.
func WithRetry(newBackoff func() retry.Backoff) Option {
	return func(d *Deck) {
		d.backoff = newBackoff
	}
}

func New(username string, recorder Recorder, opts ...Option) *Deck {
	d := &Deck{
		username: username,
		recorder: recorder,
		state:    StateLoading,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Reset puts the deck back into loading while a new page is fetched.
func (d *Deck) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.items = nil
	d.cursor = 0
	d.state = StateLoading
}

// Load replaces the stack with a fresh page.
func (d *Deck) Load(items []model.MovieSummary) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.items = append([]model.MovieSummary(nil), items...)
	d.cursor = 0
	d.state = StateReady
	if len(d.items) == 0 {
		d.state = StateExhausted
	}
}

func (d *Deck) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

func (d *Deck) Cursor() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cursor
}

func (d *Deck) Overlay() Overlay {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.overlay
}

func (d *Deck) Top() (model.MovieSummary, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.state != StateReady {
		return model.MovieSummary{}, false
	}
	return d.items[d.cursor], true
}

// Cards lists the cards still in the stack, top first.
func (d *Deck) Cards() []Card {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.state != StateReady {
		return nil
	}
	cards := make([]Card, 0, len(d.items)-d.cursor)
	for i := d.cursor; i < len(d.items); i++ {
		cards = append(cards, Card{Movie: d.items[i], Rank: i - d.cursor})
	}
	return cards
}

// Swipe resolves the top card. Left is a dislike and right is a like.
// The reaction is persisted in the background and is never rolled back.
func (d *Deck) Swipe(ctx context.Context, dir Direction) error {
	if dir != Left && dir != Right {
		return fmt.Errorf("%w: %s", ErrDirectionRejected, dir)
	}

	d.swipeMu.Lock()
	defer d.swipeMu.Unlock()

	movie, ok := d.Top()
	if !ok {
		return ErrNotReady
	}
	liked := dir == Right

	d.setOverlay(Overlay{Like: liked, Visible: true})
	d.persist(ctx, movie.ID, liked)

	d.mu.Lock()
	d.cursor++
	if d.cursor >= len(d.items) {
		d.state = StateExhausted
	}
	d.mu.Unlock()

	d.setOverlay(Overlay{})
	return nil
}

// Wait blocks until every dispatched reaction has settled.
func (d *Deck) Wait() {
	d.inflight.Wait()
}

func (d *Deck) setOverlay(o Overlay) {
	d.mu.Lock()
	d.overlay = o
	d.mu.Unlock()

	if d.onOverlay != nil {
		d.onOverlay(o)
	}
}

func (d *Deck) persist(ctx context.Context, id model.MovieID, liked model.Reaction) {
	ctx = context.WithoutCancel(ctx)

	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()

		if err := d.record(ctx, id, liked); err != nil {
			d.logger.Warn("reaction not saved",
				slog.Int64("tmdb_id", id),
				slog.Bool("liked", liked),
				slog.String("error", err.Error()),
			)
			if d.onError != nil {
				d.onError(id, err)
			}
		}
	}()
}

func (d *Deck) record(ctx context.Context, id model.MovieID, liked model.Reaction) error {
	if d.backoff == nil {
		_, err := d.recorder.Like(ctx, id, d.username, liked)
		return err
	}

	return retry.Do(ctx, d.backoff(), func(ctx context.Context) error {
		if _, err := d.recorder.Like(ctx, id, d.username, liked); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}
