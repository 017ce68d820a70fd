package infra_fixture

import (
	"context"
	"fmt"
	"slices"

	"github.com/humanbelnik/moviematch/internal/model"
	usecase_catalog "github.com/humanbelnik/moviematch/internal/usecase/catalog"
)

// PageSize is fixed for the fixture catalog.
const PageSize = 5

const unknownGenreName = "Unknown"

// Catalog serves a static movie list. It is safe for concurrent use: nothing is mutated after New.
type Catalog struct {
	genres []model.Genre
	movies []model.MovieSummary
}

func New(genres []model.Genre, movies []model.MovieSummary) *Catalog {
	return &Catalog{
		genres: slices.Clone(genres),
		movies: slices.Clone(movies),
	}
}

// Default returns the built-in demo catalog.
func Default() *Catalog {
	return New(DefaultGenres(), DefaultMovies())
}

func (c *Catalog) Genres(ctx context.Context) ([]model.Genre, error) {
	return slices.Clone(c.genres), nil
}

func (c *Catalog) Discover(ctx context.Context, page int, genreID *int64) (model.DiscoverPage, error) {
	if page < 1 {
		return model.DiscoverPage{}, fmt.Errorf("%w: page must be positive", usecase_catalog.ErrInvalidInput)
	}

	filtered := c.movies
	if genreID != nil {
		filtered = make([]model.MovieSummary, 0, len(c.movies))
		for _, m := range c.movies {
			if m.HasGenre(*genreID) {
				filtered = append(filtered, m)
			}
		}
	}

	total := len(filtered)
	totalPages := (total + PageSize - 1) / PageSize

	results := []model.MovieSummary{}
	if page <= totalPages {
		start := (page - 1) * PageSize
		end := min(start+PageSize, total)
		results = slices.Clone(filtered[start:end])
	}

	return model.DiscoverPage{
		Page:         page,
		Results:      results,
		TotalPages:   totalPages,
		TotalResults: total,
	}, nil
}

func (c *Catalog) Movie(ctx context.Context, id model.MovieID) (model.MovieDetail, error) {
	idx := slices.IndexFunc(c.movies, func(m model.MovieSummary) bool { return m.ID == id })
	if idx < 0 {
		return model.MovieDetail{}, fmt.Errorf("%w: %d", usecase_catalog.ErrNotFound, id)
	}
	movie := c.movies[idx]

	genres := make([]model.Genre, 0, len(movie.GenreIDs))
	for _, gid := range movie.GenreIDs {
		genres = append(genres, c.genre(gid))
	}

	runtime := fixtureRuntime(id)
	return model.MovieDetail{
		MovieSummary: movie,
		Genres:       genres,
		Runtime:      &runtime,
		Adult:        false,
		Credits:      fixtureCredits(),
	}, nil
}

func (c *Catalog) genre(id int64) model.Genre {
	for _, g := range c.genres {
		if g.ID == id {
			return g
		}
	}
	return model.Genre{ID: id, Name: unknownGenreName}
}

// fixtureRuntime is deterministic in [90, 150).
func fixtureRuntime(id model.MovieID) int {
	offset := (id * 37) % 60
	if offset < 0 {
		offset = -offset
	}
	return 90 + int(offset)
}
