package model

type Reaction = bool

const (
	LikeReaction    Reaction = true
	DislikeReaction Reaction = false
)

// Like is the persisted (user, movie) reaction. One per (TmdbID, Username).
type Like struct {
	ID       int64
	TmdbID   MovieID
	Username string
	Liked    Reaction
}
