package infra_tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/humanbelnik/moviematch/internal/config"
	usecase_catalog "github.com/humanbelnik/moviematch/internal/usecase/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.Catalog{
		APIKey:   "key",
		BaseURL:  srv.URL,
		Language: "en-US",
		Timeout:  time.Second,
	})
}

func TestGenres(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/genre/movie/list", r.URL.Path)
		assert.Equal(t, "key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		_, _ = w.Write([]byte(`{"genres":[{"id":28,"name":"Action"}]}`))
	})

	genres, err := c.Genres(context.Background())

	require.NoError(t, err)
	require.Len(t, genres, 1)
	assert.Equal(t, "Action", genres[0].Name)
}

func TestDiscoverPassesGenreVerbatim(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/discover/movie", r.URL.Path)
		assert.Equal(t, "35", q.Get("with_genres"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "popularity.desc", q.Get("sort_by"))
		assert.Equal(t, "false", q.Get("include_adult"))
		_, _ = w.Write([]byte(`{"page":2,"results":[{"id":9,"title":"Nine","overview":"o","poster_path":null,"vote_average":6.5,"genre_ids":[35]}],"total_pages":4,"total_results":70}`))
	})
	genre := int64(35)

	page, err := c.Discover(context.Background(), 2, &genre)

	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 4, page.TotalPages)
	assert.Equal(t, 70, page.TotalResults)
	require.Len(t, page.Results, 1)
	assert.Equal(t, int64(9), page.Results[0].ID)
	assert.Nil(t, page.Results[0].PosterPath)
}

func TestDiscoverWithoutGenre(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.URL.Query()["with_genres"]
		assert.False(t, ok)
		_, _ = w.Write([]byte(`{"page":1,"total_pages":0,"total_results":0}`))
	})

	page, err := c.Discover(context.Background(), 1, nil)

	require.NoError(t, err)
	assert.NotNil(t, page.Results)
}

func TestMovieWithCredits(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603", r.URL.Path)
		assert.Equal(t, "credits", r.URL.Query().Get("append_to_response"))
		_, _ = w.Write([]byte(`{"id":603,"title":"The Matrix","runtime":136,"adult":false,
			"genres":[{"id":28,"name":"Action"}],
			"credits":{"cast":[{"id":6384,"name":"Keanu Reeves","character":"Neo"}],
			"crew":[{"id":9339,"name":"Lana Wachowski","job":"Director","department":"Directing"}]}}`))
	})

	movie, err := c.Movie(context.Background(), 603)

	require.NoError(t, err)
	assert.Equal(t, int64(603), movie.ID)
	require.NotNil(t, movie.Runtime)
	assert.Equal(t, 136, *movie.Runtime)
	director, ok := movie.Director()
	assert.True(t, ok)
	assert.Equal(t, "Lana Wachowski", director.Name)
}

func TestMovieNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Movie(context.Background(), 1)

	assert.ErrorIs(t, err, usecase_catalog.ErrNotFound)
	assert.NotErrorIs(t, err, usecase_catalog.ErrUpstream)
}

func TestListingNotFoundIsUpstreamFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Genres(context.Background())
	assert.ErrorIs(t, err, usecase_catalog.ErrUpstream)
	assert.NotErrorIs(t, err, usecase_catalog.ErrNotFound)

	_, err = c.Discover(context.Background(), 1, nil)
	assert.ErrorIs(t, err, usecase_catalog.ErrUpstream)
	assert.NotErrorIs(t, err, usecase_catalog.ErrNotFound)
}

func TestUpstreamFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_message":"Invalid API key"}`))
	})

	_, err := c.Genres(context.Background())

	assert.ErrorIs(t, err, usecase_catalog.ErrUpstream)
}

func TestTimeoutIsBounded(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := New(config.Catalog{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})

	_, err := c.Genres(context.Background())

	assert.ErrorIs(t, err, usecase_catalog.ErrUpstream)
}
