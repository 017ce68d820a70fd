package deck

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	ID       model.MovieID
	Username string
	Liked    bool
}

type fakeRecorder struct {
	mu       sync.Mutex
	calls    []call
	failures int
	err      error
	block    chan struct{}
}

func (r *fakeRecorder) Like(ctx context.Context, id model.MovieID, username string, liked model.Reaction) (model.Like, error) {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, call{ID: id, Username: username, Liked: liked})
	if r.failures > 0 {
		r.failures--
		return model.Like{}, r.err
	}
	return model.Like{TmdbID: id, Username: username, Liked: liked}, nil
}

func (r *fakeRecorder) recorded() []call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]call(nil), r.calls...)
}

func movies(ids ...model.MovieID) []model.MovieSummary {
	out := make([]model.MovieSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.MovieSummary{ID: id})
	}
	return out
}

func TestNewDeckIsLoading(t *testing.T) {
	d := New("u", &fakeRecorder{})

	assert.Equal(t, StateLoading, d.State())
	assert.ErrorIs(t, d.Swipe(context.Background(), Right), ErrNotReady)
}

func TestSwipingAllCardsExhaustsDeck(t *testing.T) {
	for n := 1; n <= 5; n++ {
		rec := &fakeRecorder{}
		d := New("u", rec)
		ids := make([]model.MovieID, n)
		for i := range ids {
			ids[i] = model.MovieID(i + 1)
		}
		d.Load(movies(ids...))

		for k := 0; k < n; k++ {
			require.Equal(t, StateReady, d.State())
			require.Equal(t, k, d.Cursor())
			require.NoError(t, d.Swipe(context.Background(), Right))
		}

		assert.Equal(t, StateExhausted, d.State())
		assert.ErrorIs(t, d.Swipe(context.Background(), Left), ErrNotReady)
	}
}

func TestSwipeOrderAndReactions(t *testing.T) {
	rec := &fakeRecorder{}
	d := New("u", rec)
	d.Load(movies(10, 20, 30))

	require.NoError(t, d.Swipe(context.Background(), Right))
	require.NoError(t, d.Swipe(context.Background(), Left))
	d.Wait()

	assert.Equal(t, StateReady, d.State())
	assert.Equal(t, 2, d.Cursor())
	top, ok := d.Top()
	require.True(t, ok)
	assert.Equal(t, model.MovieID(30), top.ID)

	got := rec.recorded()
	want := []call{{ID: 10, Username: "u", Liked: true}, {ID: 20, Username: "u", Liked: false}}
	// persistence runs concurrently, order across calls is not guaranteed
	assert.ElementsMatch(t, want, got)
}

func TestVerticalSwipesAreRejected(t *testing.T) {
	rec := &fakeRecorder{}
	d := New("u", rec)
	d.Load(movies(1, 2))

	for _, dir := range []Direction{Up, Down} {
		err := d.Swipe(context.Background(), dir)
		assert.ErrorIs(t, err, ErrDirectionRejected)
	}
	d.Wait()

	assert.Equal(t, 0, d.Cursor())
	assert.Equal(t, StateReady, d.State())
	assert.Empty(t, rec.recorded())
}

func TestOverlayShownThenCleared(t *testing.T) {
	var seen []Overlay
	d := New("u", &fakeRecorder{}, WithOverlayHook(func(o Overlay) { seen = append(seen, o) }))
	d.Load(movies(1, 2))

	require.NoError(t, d.Swipe(context.Background(), Right))
	require.NoError(t, d.Swipe(context.Background(), Left))

	want := []Overlay{
		{Like: true, Visible: true}, {},
		{Like: false, Visible: true}, {},
	}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("overlay sequence mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, Overlay{}, d.Overlay())
}

func TestSwipeDoesNotWaitForPersistence(t *testing.T) {
	rec := &fakeRecorder{block: make(chan struct{})}
	d := New("u", rec)
	d.Load(movies(1, 2))

	done := make(chan struct{})
	go func() {
		_ = d.Swipe(context.Background(), Right)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("swipe blocked on persistence")
	}
	assert.Equal(t, 1, d.Cursor())

	close(rec.block)
	d.Wait()
	assert.Len(t, rec.recorded(), 1)
}

func TestPersistenceFailureIsReportedNotRolledBack(t *testing.T) {
	boom := errors.New("offline")
	rec := &fakeRecorder{failures: 1, err: boom}

	var mu sync.Mutex
	var reported []model.MovieID
	d := New("u", rec, WithErrorHook(func(id model.MovieID, err error) {
		mu.Lock()
		defer mu.Unlock()
		assert.ErrorIs(t, err, boom)
		reported = append(reported, id)
	}))
	d.Load(movies(7, 8))

	require.NoError(t, d.Swipe(context.Background(), Right))
	d.Wait()

	assert.Equal(t, 1, d.Cursor())
	assert.Equal(t, []model.MovieID{7}, reported)
}

func TestRetryBackoff(t *testing.T) {
	rec := &fakeRecorder{failures: 2, err: errors.New("flaky")}
	var failed bool
	d := New("u", rec,
		WithRetry(func() retry.Backoff {
			return retry.WithMaxRetries(3, retry.NewConstant(time.Millisecond))
		}),
		WithErrorHook(func(model.MovieID, error) { failed = true }),
	)
	d.Load(movies(5))

	require.NoError(t, d.Swipe(context.Background(), Right))
	d.Wait()

	assert.Len(t, rec.recorded(), 3)
	assert.False(t, failed)
}

func TestCardsRanks(t *testing.T) {
	d := New("u", &fakeRecorder{})
	d.Load(movies(1, 2, 3))
	require.NoError(t, d.Swipe(context.Background(), Left))
	d.Wait()

	cards := d.Cards()

	require.Len(t, cards, 2)
	assert.Equal(t, Card{Movie: model.MovieSummary{ID: 2}, Rank: 0}, cards[0])
	assert.Equal(t, Card{Movie: model.MovieSummary{ID: 3}, Rank: 1}, cards[1])
}

func TestEmptyPageIsExhausted(t *testing.T) {
	d := New("u", &fakeRecorder{})
	d.Load(nil)

	assert.Equal(t, StateExhausted, d.State())
	_, ok := d.Top()
	assert.False(t, ok)
	assert.Nil(t, d.Cards())
}
