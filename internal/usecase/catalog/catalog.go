package usecase_catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/humanbelnik/moviematch/internal/model"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("movie not found")
	ErrUpstream     = errors.New("catalog upstream failure")
)

// Gateway is a movie catalog: the live upstream or the fixture list.
type Gateway interface {
	Genres(ctx context.Context) ([]model.Genre, error)
	Discover(ctx context.Context, page int, genreID *int64) (model.DiscoverPage, error)
	Movie(ctx context.Context, id model.MovieID) (model.MovieDetail, error)
}

type Usecase struct {
	gateway Gateway
}

func New(gateway Gateway) *Usecase {
	return &Usecase{
		gateway: gateway,
	}
}

func (u *Usecase) Genres(ctx context.Context) ([]model.Genre, error) {
	genres, err := u.gateway.Genres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

// Discover returns one page of candidates. genre is "", "all" or a genre id.
func (u *Usecase) Discover(ctx context.Context, genre string, page int) (model.DiscoverPage, error) {
	if page < 1 {
		return model.DiscoverPage{}, fmt.Errorf("%w: page must be positive", ErrInvalidInput)
	}

	genreID, err := ParseGenre(genre)
	if err != nil {
		return model.DiscoverPage{}, err
	}

	result, err := u.gateway.Discover(ctx, page, genreID)
	if err != nil {
		return model.DiscoverPage{}, fmt.Errorf("failed to discover page %d: %w", page, err)
	}
	return result, nil
}

func (u *Usecase) Movie(ctx context.Context, id model.MovieID) (model.MovieDetail, error) {
	if id <= model.EmptyMovieID {
		return model.MovieDetail{}, fmt.Errorf("%w: movie ID must be positive", ErrInvalidInput)
	}

	movie, err := u.gateway.Movie(ctx, id)
	if err != nil {
		return model.MovieDetail{}, fmt.Errorf("failed to load movie %d: %w", id, err)
	}
	return movie, nil
}

// ParseGenre maps the genre filter to an optional id; "" and "all" mean no filter.
func ParseGenre(genre string) (*int64, error) {
	genre = strings.TrimSpace(genre)
	if genre == "" || strings.EqualFold(genre, model.AllGenres) {
		return nil, nil
	}

	id, err := strconv.ParseInt(genre, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: genre must be %q or a positive id, got %q", ErrInvalidInput, model.AllGenres, genre)
	}
	return &id, nil
}
