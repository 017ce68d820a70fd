package deck

import (
	"context"
	"errors"
	"sync"

	"github.com/humanbelnik/moviematch/internal/model"
)

var ErrNoDetail = errors.New("no movie open")

// DetailSource loads full movie details.
type DetailSource interface {
	Movie(ctx context.Context, id model.MovieID) (model.MovieDetail, error)
}

// Detail is the single-movie view. Opening a movie cancels the previous
// fetch; reacting from here leaves the deck alone.
type Detail struct {
	source   DetailSource
	recorder Recorder
	username string

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	movie  *model.MovieDetail
}

func NewDetail(username string, source DetailSource, recorder Recorder) *Detail {
	return &Detail{
		source:   source,
		recorder: recorder,
		username: username,
	}
}

func (v *Detail) Open(ctx context.Context, id model.MovieID) (model.MovieDetail, error) {
	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	v.seq++
	seq := v.seq
	fetchCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.movie = nil
	v.mu.Unlock()

	movie, err := v.source.Movie(fetchCtx, id)

	v.mu.Lock()
	defer v.mu.Unlock()
	if seq != v.seq {
		cancel()
		return model.MovieDetail{}, context.Canceled
	}
	v.cancel = nil
	cancel()
	if err != nil {
		return model.MovieDetail{}, err
	}
	v.movie = &movie
	return movie, nil
}

// Current returns the open movie, if any.
func (v *Detail) Current() (model.MovieDetail, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.movie == nil {
		return model.MovieDetail{}, false
	}
	return *v.movie, true
}

func (v *Detail) Like(ctx context.Context) error {
	return v.react(ctx, model.LikeReaction)
}

func (v *Detail) Dislike(ctx context.Context) error {
	return v.react(ctx, model.DislikeReaction)
}

// Close drops the open movie and cancels a pending fetch.
func (v *Detail) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.seq++
	v.movie = nil
}

func (v *Detail) react(ctx context.Context, liked model.Reaction) error {
	movie, ok := v.Current()
	if !ok {
		return ErrNoDetail
	}

	_, err := v.recorder.Like(ctx, movie.ID, v.username, liked)
	v.Close()
	return err
}
