package deck

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pageRequest struct {
	genre string
	page  int
}

// fakeFeed serves pages of 2 from a fixed list per genre.
type fakeFeed struct {
	mu       sync.Mutex
	byGenre  map[string][]model.MovieID
	requests []pageRequest
	err      error
}

func (f *fakeFeed) Discover(ctx context.Context, genre string, page int) (model.DiscoverPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, pageRequest{genre: genre, page: page})
	if f.err != nil {
		return model.DiscoverPage{}, f.err
	}

	ids := f.byGenre[genre]
	total := (len(ids) + 1) / 2
	start := (page - 1) * 2
	results := []model.MovieSummary{}
	for i := start; i < start+2 && i < len(ids); i++ {
		results = append(results, model.MovieSummary{ID: ids[i]})
	}
	return model.DiscoverPage{Page: page, Results: results, TotalPages: total, TotalResults: len(ids)}, nil
}

func newSession(feed *fakeFeed) *Session {
	return NewSession(New("u", &fakeRecorder{}), feed)
}

func topID(t *testing.T, s *Session) model.MovieID {
	t.Helper()
	m, ok := s.Deck().Top()
	require.True(t, ok)
	return m.ID
}

func TestSessionStartsOnFirstPageOfAll(t *testing.T) {
	feed := &fakeFeed{byGenre: map[string][]model.MovieID{model.AllGenres: {1, 2, 3}}}
	s := newSession(feed)

	require.NoError(t, s.Start(context.Background()))

	assert.Equal(t, model.AllGenres, s.Genre())
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, model.MovieID(1), topID(t, s))
}

func TestSessionRefillsAndWraps(t *testing.T) {
	feed := &fakeFeed{byGenre: map[string][]model.MovieID{model.AllGenres: {1, 2, 3}}}
	s := newSession(feed)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	var seen []model.MovieID
	for range 5 {
		seen = append(seen, topID(t, s))
		require.NoError(t, s.Swipe(ctx, Right))
	}
	s.Deck().Wait()

	assert.Equal(t, []model.MovieID{1, 2, 3, 1, 2}, seen)
	assert.Equal(t, 2, s.Page())
	assert.Equal(t, []pageRequest{
		{model.AllGenres, 1},
		{model.AllGenres, 2},
		{model.AllGenres, 1},
		{model.AllGenres, 2},
	}, feed.requests)
}

func TestSelectGenreResetsPage(t *testing.T) {
	feed := &fakeFeed{byGenre: map[string][]model.MovieID{
		model.AllGenres: {1, 2, 3, 4},
		"35":            {9},
	}}
	s := newSession(feed)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Swipe(ctx, Left))
	require.NoError(t, s.Swipe(ctx, Left))
	require.Equal(t, 2, s.Page())

	require.NoError(t, s.SelectGenre(ctx, "35"))

	assert.Equal(t, "35", s.Genre())
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, 0, s.Deck().Cursor())
	assert.Equal(t, model.MovieID(9), topID(t, s))
}

func TestSelectEmptyGenreMeansAll(t *testing.T) {
	feed := &fakeFeed{byGenre: map[string][]model.MovieID{model.AllGenres: {1}}}
	s := newSession(feed)

	require.NoError(t, s.SelectGenre(context.Background(), ""))

	assert.Equal(t, model.AllGenres, s.Genre())
}

func TestFeedFailureLeavesDeckLoading(t *testing.T) {
	feed := &fakeFeed{err: errors.New("offline")}
	s := newSession(feed)

	err := s.Start(context.Background())

	assert.Error(t, err)
	assert.Equal(t, StateLoading, s.Deck().State())
	assert.ErrorIs(t, s.Swipe(context.Background(), Right), ErrNotReady)
}

func TestEmptyGenreIsExhausted(t *testing.T) {
	feed := &fakeFeed{byGenre: map[string][]model.MovieID{}}
	s := newSession(feed)

	require.NoError(t, s.SelectGenre(context.Background(), "99"))

	assert.Equal(t, StateExhausted, s.Deck().State())
}
