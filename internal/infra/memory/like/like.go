package infra_memory_like

import (
	"context"
	"sync"

	"github.com/humanbelnik/moviematch/internal/model"
)

type key struct {
	tmdbID   model.MovieID
	username string
}

// Driver keeps likes in process memory; records are lost on restart.
type Driver struct {
	mu     sync.Mutex
	lastID int64
	likes  map[key]*model.Like
	order  []key
}

func New() *Driver {
	return &Driver{
		likes: make(map[key]*model.Like),
	}
}

func (d *Driver) Save(ctx context.Context, like model.Like) (model.Like, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	k := key{tmdbID: like.TmdbID, username: like.Username}
	if stored, ok := d.likes[k]; ok {
		stored.Liked = like.Liked
		return *stored, nil
	}

	d.lastID++
	like.ID = d.lastID
	d.likes[k] = &like
	d.order = append(d.order, k)
	return like, nil
}

// Liked returns the user's liked records in insertion order.
func (d *Driver) Liked(ctx context.Context, username string) ([]model.Like, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]model.Like, 0)
	for _, k := range d.order {
		if k.username != username {
			continue
		}
		if l := d.likes[k]; l.Liked {
			out = append(out, *l)
		}
	}
	return out, nil
}
