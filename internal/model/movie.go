package model

type MovieID = int64

const EmptyMovieID MovieID = 0

// AllGenres is the genre filter value meaning "no filter".
const AllGenres = "all"

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MovieSummary is the list form returned by discover.
type MovieSummary struct {
	ID           MovieID `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	GenreIDs     []int64 `json:"genre_ids,omitempty"`
}

func (m MovieSummary) HasGenre(genreID int64) bool {
	for _, id := range m.GenreIDs {
		if id == genreID {
			return true
		}
	}
	return false
}

type CastMember struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
}

type CrewMember struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// MovieDetail is the single-movie form with genres, runtime and credits.
type MovieDetail struct {
	MovieSummary

	Genres  []Genre  `json:"genres"`
	Runtime *int     `json:"runtime"`
	Adult   bool     `json:"adult"`
	Credits *Credits `json:"credits,omitempty"`
}

// Director returns the first crew member with job Director.
func (d MovieDetail) Director() (CrewMember, bool) {
	if d.Credits == nil {
		return CrewMember{}, false
	}
	for _, c := range d.Credits.Crew {
		if c.Job == "Director" {
			return c, true
		}
	}
	return CrewMember{}, false
}

type DiscoverPage struct {
	Page         int            `json:"page"`
	Results      []MovieSummary `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}
