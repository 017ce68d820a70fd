package deck

import (
	"context"
	"fmt"
	"sync"

	"github.com/humanbelnik/moviematch/internal/model"
)

// Feed serves discover pages.
type Feed interface {
	Discover(ctx context.Context, genre string, page int) (model.DiscoverPage, error)
}

// Session keeps the deck filled from the feed for the selected genre.
// Pages wrap back to the first one after the last, so the feed never ends.
type Session struct {
	deck *Deck
	feed Feed

	mu         sync.Mutex
	genre      string
	page       int
	totalPages int
}

func NewSession(deck *Deck, feed Feed) *Session {
	return &Session{
		deck:  deck,
		feed:  feed,
		genre: model.AllGenres,
		page:  1,
	}
}

func (s *Session) Deck() *Deck {
	return s.deck
}

func (s *Session) Genre() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.genre
}

func (s *Session) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Start loads the current page.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// SelectGenre switches the filter and starts over from the first page.
func (s *Session) SelectGenre(ctx context.Context, genre string) error {
	if genre == "" {
		genre = model.AllGenres
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.genre = genre
	s.page = 1
	s.totalPages = 0
	return s.load(ctx)
}

// Swipe resolves the top card and refills the deck once it runs out.
func (s *Session) Swipe(ctx context.Context, dir Direction) error {
	if err := s.deck.Swipe(ctx, dir); err != nil {
		return err
	}
	if s.deck.State() == StateExhausted {
		return s.Refill(ctx)
	}
	return nil
}

// Refill loads the page after the current one.
func (s *Session) Refill(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.page++
	if s.totalPages == 0 || s.page > s.totalPages {
		s.page = 1
	}
	return s.load(ctx)
}

func (s *Session) load(ctx context.Context) error {
	s.deck.Reset()

	result, err := s.feed.Discover(ctx, s.genre, s.page)
	if err != nil {
		return fmt.Errorf("load page %d of %q: %w", s.page, s.genre, err)
	}

	s.totalPages = result.TotalPages
	s.deck.Load(result.Results)
	return nil
}
