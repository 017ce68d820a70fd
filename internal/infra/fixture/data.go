package infra_fixture

import (
	"fmt"

	"github.com/humanbelnik/moviematch/internal/model"
)

func DefaultGenres() []model.Genre {
	return []model.Genre{
		{ID: 28, Name: "Action"},
		{ID: 12, Name: "Adventure"},
		{ID: 16, Name: "Animation"},
		{ID: 35, Name: "Comedy"},
		{ID: 80, Name: "Crime"},
		{ID: 18, Name: "Drama"},
		{ID: 10751, Name: "Family"},
		{ID: 14, Name: "Fantasy"},
		{ID: 36, Name: "History"},
		{ID: 27, Name: "Horror"},
		{ID: 10402, Name: "Music"},
		{ID: 9648, Name: "Mystery"},
		{ID: 10749, Name: "Romance"},
		{ID: 878, Name: "Science Fiction"},
		{ID: 10770, Name: "TV Movie"},
		{ID: 53, Name: "Thriller"},
		{ID: 10752, Name: "War"},
		{ID: 37, Name: "Western"},
	}
}

func movie(id model.MovieID, title, overview, released string, rating float64, genres ...int64) model.MovieSummary {
	poster := fmt.Sprintf("/poster%d.jpg", id)
	backdrop := fmt.Sprintf("/backdrop%d.jpg", id)
	return model.MovieSummary{
		ID:           id,
		Title:        title,
		Overview:     overview,
		PosterPath:   &poster,
		BackdropPath: &backdrop,
		ReleaseDate:  released,
		VoteAverage:  rating,
		GenreIDs:     genres,
	}
}

func DefaultMovies() []model.MovieSummary {
	return []model.MovieSummary{
		movie(1, "The Adventure Begins",
			"A thrilling journey through unknown lands where heroes are made and legends are born.",
			"2025-01-15", 8.7, 28, 12, 14),
		movie(2, "City of Shadows",
			"In a metropolis plagued by crime, one detective risks everything to uncover the truth.",
			"2024-11-05", 7.9, 80, 53, 9648),
		movie(3, "Love in Paris",
			"Two strangers meet in the city of love and find their lives forever changed.",
			"2025-02-14", 8.2, 10749, 18),
		movie(4, "Galactic Odyssey",
			"The fate of humanity rests in the hands of explorers venturing to the edge of the universe.",
			"2024-09-21", 9.1, 878, 12, 28),
		movie(5, "Laugh Factory",
			"A struggling comedian gets the opportunity of a lifetime, but success comes at a price.",
			"2024-08-03", 7.6, 35, 18),
		movie(6, "Historical Heroes",
			"Based on true events, a group of unlikely allies changes the course of history.",
			"2024-12-12", 8.4, 36, 18, 10752),
		movie(7, "Enchanted Forest",
			"A family adventure into a magical world where nothing is quite as it seems.",
			"2025-03-20", 7.8, 10751, 14, 12),
		movie(8, "Midnight Terror",
			"What started as a simple house party becomes a fight for survival as night falls.",
			"2024-10-31", 6.9, 27, 53),
		movie(9, "The Final Heist",
			"A master thief assembles a team for one last job that will set them up for life.",
			"2025-01-05", 8.0, 80, 28, 53),
		movie(10, "Rhythms of Life",
			"A musical journey following a talented but unknown band as they rise to stardom.",
			"2024-07-15", 7.5, 10402, 18),
		movie(11, "Western Frontiers",
			"In the untamed wilderness of the Old West, a sheriff fights to protect a town from outlaws.",
			"2024-08-25", 7.7, 37, 28),
		movie(12, "Animated Dreams",
			"In a world where drawings come to life, an artist discovers the power of imagination.",
			"2025-04-10", 8.6, 16, 10751, 14),
	}
}

func profile(n int) *string {
	p := fmt.Sprintf("/actor%d.jpg", n)
	return &p
}

func fixtureCredits() *model.Credits {
	return &model.Credits{
		Cast: []model.CastMember{
			{ID: 101, Name: "John Actor", Character: "Main Character", ProfilePath: profile(1)},
			{ID: 102, Name: "Jane Star", Character: "Supporting Role", ProfilePath: profile(2)},
			{ID: 103, Name: "Bob Famous", Character: "Villain", ProfilePath: profile(3)},
			{ID: 104, Name: "Alice Talented", Character: "Friend", ProfilePath: profile(4)},
			{ID: 105, Name: "Tom Performer", Character: "Mentor", ProfilePath: profile(5)},
		},
		Crew: []model.CrewMember{
			{ID: 201, Name: "Famous Director", Job: "Director", Department: "Directing"},
			{ID: 202, Name: "Talented Writer", Job: "Screenplay", Department: "Writing"},
			{ID: 203, Name: "Music Composer", Job: "Original Music Composer", Department: "Sound"},
		},
	}
}
