package infra_fixture

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/humanbelnik/moviematch/internal/model"
	usecase_catalog "github.com/humanbelnik/moviematch/internal/usecase/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(movies []model.MovieSummary) []model.MovieID {
	out := make([]model.MovieID, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.ID)
	}
	return out
}

func genre(id int64) *int64 { return &id }

func TestDiscoverFiltersByMembershipPreservingOrder(t *testing.T) {
	const a, b = 100, 200
	c := New(nil, []model.MovieSummary{
		{ID: 1, GenreIDs: []int64{a}},
		{ID: 2, GenreIDs: []int64{b}},
		{ID: 3, GenreIDs: []int64{a, b}},
	})

	page, err := c.Discover(context.Background(), 1, genre(a))

	require.NoError(t, err)
	if diff := cmp.Diff([]model.MovieID{1, 3}, ids(page.Results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, page.TotalResults)
	assert.Equal(t, 1, page.TotalPages)
}

func TestDiscoverEveryResultHasGenre(t *testing.T) {
	c := Default()
	ctx := context.Background()

	for _, g := range DefaultGenres() {
		for p := 1; ; p++ {
			page, err := c.Discover(ctx, p, genre(g.ID))
			require.NoError(t, err)
			if len(page.Results) == 0 {
				break
			}
			for _, m := range page.Results {
				assert.Truef(t, m.HasGenre(g.ID), "movie %d lacks genre %d", m.ID, g.ID)
			}
		}
	}
}

func TestDiscoverPaginationReconstructsFilteredSet(t *testing.T) {
	c := Default()
	ctx := context.Background()

	filters := []*int64{nil, genre(28), genre(18), genre(14)}
	for _, f := range filters {
		first, err := c.Discover(ctx, 1, f)
		require.NoError(t, err)

		var all []model.MovieID
		seen := map[model.MovieID]bool{}
		for p := 1; p <= first.TotalPages; p++ {
			page, err := c.Discover(ctx, p, f)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(page.Results), PageSize)

			again, err := c.Discover(ctx, p, f)
			require.NoError(t, err)
			assert.Equal(t, ids(page.Results), ids(again.Results), "pagination must be stable")

			for _, id := range ids(page.Results) {
				assert.False(t, seen[id], "duplicate id %d", id)
				seen[id] = true
				all = append(all, id)
			}
		}
		assert.Len(t, all, first.TotalResults)
	}
}

func TestDiscoverUnfilteredPages(t *testing.T) {
	c := Default()

	page, err := c.Discover(context.Background(), 3, nil)

	require.NoError(t, err)
	assert.Equal(t, []model.MovieID{11, 12}, ids(page.Results))
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 12, page.TotalResults)

	beyond, err := c.Discover(context.Background(), 4, nil)
	require.NoError(t, err)
	assert.Empty(t, beyond.Results)
	assert.NotNil(t, beyond.Results)
}

func TestDiscoverHugePageIsEmpty(t *testing.T) {
	c := Default()

	for _, p := range []int{math.MaxInt/PageSize + 2, math.MaxInt} {
		page, err := c.Discover(context.Background(), p, genre(28))

		require.NoError(t, err)
		assert.Empty(t, page.Results)
		assert.Equal(t, p, page.Page)
	}
}

func TestMovieDetail(t *testing.T) {
	c := Default()

	detail, err := c.Movie(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, model.MovieID(4), detail.ID)
	assert.Equal(t, []model.Genre{
		{ID: 878, Name: "Science Fiction"},
		{ID: 12, Name: "Adventure"},
		{ID: 28, Name: "Action"},
	}, detail.Genres)
	require.NotNil(t, detail.Runtime)
	assert.GreaterOrEqual(t, *detail.Runtime, 90)
	assert.Less(t, *detail.Runtime, 150)
	assert.False(t, detail.Adult)
	require.NotNil(t, detail.Credits)
	assert.Len(t, detail.Credits.Cast, 5)
	director, ok := detail.Director()
	assert.True(t, ok)
	assert.Equal(t, "Famous Director", director.Name)
}

func TestMovieUnknownGenreName(t *testing.T) {
	c := New(nil, []model.MovieSummary{{ID: 1, GenreIDs: []int64{999}}})

	detail, err := c.Movie(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, []model.Genre{{ID: 999, Name: "Unknown"}}, detail.Genres)
}

func TestMovieNotFound(t *testing.T) {
	_, err := Default().Movie(context.Background(), 4242)

	assert.ErrorIs(t, err, usecase_catalog.ErrNotFound)
}
