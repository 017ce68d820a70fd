package usecase_like

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/humanbelnik/moviematch/internal/pkg/logctx"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput = errors.New("invalid like")
	ErrPersistence  = errors.New("unable to persist like")
)

const defaultHydrationLimit = 8

type Repository interface {
	Save(ctx context.Context, like model.Like) (model.Like, error)
	Liked(ctx context.Context, username string) ([]model.Like, error)
}

type MovieProvider interface {
	Movie(ctx context.Context, id model.MovieID) (model.MovieDetail, error)
}

// Notifier is told about every stored reaction.
type Notifier interface {
	LikeSaved(ctx context.Context, like model.Like)
}

type Usecase struct {
	repository Repository
	movies     MovieProvider
	notifier   Notifier

	hydrationLimit int
	logger         *slog.Logger
}

type UsecaseOption func(*Usecase)

func WithLogger(logger *slog.Logger) UsecaseOption {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func WithNotifier(n Notifier) UsecaseOption {
	return func(u *Usecase) {
		u.notifier = n
	}
}

func WithHydrationLimit(n int) UsecaseOption {
	return func(u *Usecase) {
		if n > 0 {
			u.hydrationLimit = n
		}
	}
}

func New(
	r Repository,
	m MovieProvider,
	opts ...UsecaseOption,
) *Usecase {
	u := &Usecase{
		repository:     r,
		movies:         m,
		hydrationLimit: defaultHydrationLimit,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Save upserts the reaction of username to the movie. The movie id is not
// checked against the catalog.
func (u *Usecase) Save(ctx context.Context, tmdbID model.MovieID, username string, liked model.Reaction) (model.Like, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return model.Like{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if tmdbID <= model.EmptyMovieID {
		return model.Like{}, fmt.Errorf("%w: tmdbId must be positive", ErrInvalidInput)
	}

	stored, err := u.repository.Save(ctx, model.Like{
		TmdbID:   tmdbID,
		Username: username,
		Liked:    liked,
	})
	if err != nil {
		return model.Like{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if u.notifier != nil {
		u.notifier.LikeSaved(ctx, stored)
	}
	return stored, nil
}

func (u *Usecase) Liked(ctx context.Context, username string) ([]model.Like, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	likes, err := u.repository.Liked(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return likes, nil
}

// Matches returns details of every movie the user liked, in store order.
// Movies the catalog cannot resolve are left out.
func (u *Usecase) Matches(ctx context.Context, username string) ([]model.MovieDetail, error) {
	likes, err := u.Liked(ctx, username)
	if err != nil {
		return nil, err
	}

	logger := logctx.FromOr(ctx, u.logger)
	details := make([]*model.MovieDetail, len(likes))
	var g errgroup.Group
	g.SetLimit(u.hydrationLimit)
	for i, like := range likes {
		g.Go(func() error {
			movie, err := u.movies.Movie(ctx, like.TmdbID)
			if err != nil {
				logger.Warn("dropping unresolved match",
					slog.Int64("tmdb_id", like.TmdbID),
					slog.String("username", like.Username),
					slog.String("error", err.Error()),
				)
				return nil
			}
			details[i] = &movie
			return nil
		})
	}
	_ = g.Wait()

	matches := make([]model.MovieDetail, 0, len(details))
	for _, d := range details {
		if d != nil {
			matches = append(matches, *d)
		}
	}
	return matches, nil
}
