package infra_sqldb_like

import (
	"context"
	"fmt"

	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/jmoiron/sqlx"
)

// Driver stores likes in Postgres or SQLite. Queries are written with "?"
// placeholders and rebound to the connection's dialect.
type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type likeDTO struct {
	ID       int64  `db:"id"`
	TmdbID   int64  `db:"tmdb_id"`
	Username string `db:"username"`
	Liked    bool   `db:"liked"`
}

func (l likeDTO) toModel() model.Like {
	return model.Like{
		ID:       l.ID,
		TmdbID:   l.TmdbID,
		Username: l.Username,
		Liked:    l.Liked,
	}
}

const upsertQuery = `
	INSERT INTO user_likes (tmdb_id, username, liked)
	VALUES (?, ?, ?)
	ON CONFLICT (tmdb_id, username)
	DO UPDATE SET liked = excluded.liked
	RETURNING id, tmdb_id, username, liked
`

const likedQuery = `
	SELECT id, tmdb_id, username, liked
	FROM user_likes
	WHERE username = ? AND liked
	ORDER BY id
`

func (d *Driver) Save(ctx context.Context, like model.Like) (model.Like, error) {
	var stored likeDTO

	err := d.db.GetContext(ctx, &stored, d.db.Rebind(upsertQuery), like.TmdbID, like.Username, like.Liked)
	if err != nil {
		return model.Like{}, fmt.Errorf("upsert like: %w", err)
	}

	return stored.toModel(), nil
}

func (d *Driver) Liked(ctx context.Context, username string) ([]model.Like, error) {
	var rows []likeDTO

	err := d.db.SelectContext(ctx, &rows, d.db.Rebind(likedQuery), username)
	if err != nil {
		return nil, fmt.Errorf("select liked: %w", err)
	}

	likes := make([]model.Like, 0, len(rows))
	for _, r := range rows {
		likes = append(likes, r.toModel())
	}
	return likes, nil
}
