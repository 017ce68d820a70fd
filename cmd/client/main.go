package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	client_api "github.com/humanbelnik/moviematch/internal/client/api"
	"github.com/humanbelnik/moviematch/internal/config"
	"github.com/humanbelnik/moviematch/internal/deck"
	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/sethvargo/go-retry"
)

type UI struct {
	api      *client_api.Client
	username string
	session  *deck.Session
	detail   *deck.Detail
	scanner  *bufio.Scanner
	genres   map[int64]string
}

func NewUI(cfg *config.Client, scanner *bufio.Scanner) *UI {
	api := client_api.New(cfg.APIBaseURL)

	d := deck.New(cfg.Username, api,
		deck.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))),
		deck.WithOverlayHook(func(o deck.Overlay) {
			if !o.Visible {
				return
			}
			if o.Like {
				fmt.Println("  >>> LIKE")
			} else {
				fmt.Println("  <<< NOPE")
			}
		}),
		deck.WithErrorHook(func(id model.MovieID, err error) {
			fmt.Printf("\n! could not save reaction to movie #%d: %v\n", id, err)
		}),
		deck.WithRetry(func() retry.Backoff {
			return retry.WithMaxRetries(2, retry.NewExponential(200*time.Millisecond))
		}),
	)

	return &UI{
		api:      api,
		username: cfg.Username,
		session:  deck.NewSession(d, api),
		detail:   deck.NewDetail(cfg.Username, api, api),
		scanner:  scanner,
		genres:   map[int64]string{},
	}
}

func (ui *UI) prompt(label string) (string, bool) {
	fmt.Print(label)
	if !ui.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(ui.scanner.Text()), true
}

func (ui *UI) loadGenres(ctx context.Context) []model.Genre {
	genres, err := ui.api.Genres(ctx)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return nil
	}
	for _, g := range genres {
		ui.genres[g.ID] = g.Name
	}
	return genres
}

func (ui *UI) showTop() {
	d := ui.session.Deck()
	switch d.State() {
	case deck.StateLoading:
		fmt.Println("\n(loading... press r to retry)")
		return
	case deck.StateExhausted:
		fmt.Println("\n(no movies here, pick another genre)")
		return
	}

	cards := d.Cards()
	top := cards[0].Movie
	fmt.Printf("\n[%s | page %d] %s", ui.session.Genre(), ui.session.Page(), top.Title)
	if len(top.ReleaseDate) >= 4 {
		fmt.Printf(" (%s)", top.ReleaseDate[:4])
	}
	fmt.Printf("  rating %.1f\n", top.VoteAverage)
	if names := ui.genreNames(top.GenreIDs); names != "" {
		fmt.Printf("  %s\n", names)
	}
	fmt.Printf("  %s\n", top.Overview)
	if len(cards) > 1 {
		fmt.Printf("  next: %s", cards[1].Movie.Title)
		if len(cards) > 2 {
			fmt.Printf(" (+%d more)", len(cards)-2)
		}
		fmt.Println()
	}
}

func (ui *UI) genreNames(ids []int64) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if n, ok := ui.genres[id]; ok {
			names = append(names, n)
		}
	}
	return strings.Join(names, ", ")
}

func (ui *UI) swipe(ctx context.Context, dir deck.Direction) {
	err := ui.session.Swipe(ctx, dir)
	switch {
	case errors.Is(err, deck.ErrDirectionRejected):
		fmt.Println("Only left (a) or right (d) swipes count.")
	case errors.Is(err, deck.ErrNotReady):
		fmt.Println("Deck is not ready yet.")
	case err != nil:
		fmt.Printf("Error: %v\n", err)
	}
}

func (ui *UI) chooseGenre(ctx context.Context) {
	genres := ui.loadGenres(ctx)
	fmt.Println("\n0. All")
	for i, g := range genres {
		fmt.Printf("%d. %s\n", i+1, g.Name)
	}
	in, ok := ui.prompt("Genre: ")
	if !ok {
		return
	}
	n, err := strconv.Atoi(in)
	if err != nil || n < 0 || n > len(genres) {
		fmt.Println("Invalid choice")
		return
	}

	genre := model.AllGenres
	if n > 0 {
		genre = strconv.FormatInt(genres[n-1].ID, 10)
	}
	if err := ui.session.SelectGenre(ctx, genre); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}

func (ui *UI) openDetail(ctx context.Context, id model.MovieID) {
	fetchCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	movie, err := ui.detail.Open(fetchCtx, id)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("\n=== %s ===\n", movie.Title)
	if movie.Runtime != nil {
		fmt.Printf("Runtime: %d min\n", *movie.Runtime)
	}
	names := make([]string, 0, len(movie.Genres))
	for _, g := range movie.Genres {
		names = append(names, g.Name)
	}
	fmt.Printf("Genres: %s\n", strings.Join(names, ", "))
	if director, ok := movie.Director(); ok {
		fmt.Printf("Director: %s\n", director.Name)
	}
	if movie.Credits != nil {
		for i, c := range movie.Credits.Cast {
			if i == 5 {
				break
			}
			fmt.Printf("  %s as %s\n", c.Name, c.Character)
		}
	}
	fmt.Printf("%s\n", movie.Overview)

	in, _ := ui.prompt("l - like, d - dislike, Enter - close: ")
	switch in {
	case "l":
		err = ui.detail.Like(ctx)
	case "d":
		err = ui.detail.Dislike(ctx)
	default:
		ui.detail.Close()
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}

func (ui *UI) showMatches(ctx context.Context) {
	matches, err := ui.api.Matches(ctx, ui.username)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(matches) == 0 {
		fmt.Println("\nNo matches yet. Keep swiping!")
		return
	}

	fmt.Printf("\n=== %s's matches ===\n", ui.username)
	for i, m := range matches {
		fmt.Printf("%d. %s  rating %.1f\n", i+1, m.Title, m.VoteAverage)
	}
	in, ok := ui.prompt("Number for details, Enter to go back: ")
	if !ok || in == "" {
		return
	}
	n, err := strconv.Atoi(in)
	if err != nil || n < 1 || n > len(matches) {
		fmt.Println("Invalid choice")
		return
	}
	ui.openDetail(ctx, matches[n-1].ID)
}

func (ui *UI) watchLikes(ctx context.Context) {
	for {
		err := ui.api.WatchLikes(ctx, ui.username, func(l model.Like) {
			if l.Liked {
				fmt.Printf("\n* movie #%d added to your matches\n", l.TmdbID)
			}
		})
		if ctx.Err() != nil {
			return
		}
		slog.Debug("like stream closed", slog.Any("error", err))

		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
}

func main() {
	cfg := config.LoadClient()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	scanner := bufio.NewScanner(os.Stdin)
	ui := NewUI(cfg, scanner)
	defer ui.session.Deck().Wait()

	go ui.watchLikes(ctx)

	fmt.Printf("=== MovieMatch, swiping as %s ===\n", cfg.Username)
	ui.loadGenres(ctx)
	if err := ui.session.Start(ctx); err != nil {
		fmt.Printf("Error: %v\n", err)
	}

	for ctx.Err() == nil {
		ui.showTop()
		in, ok := ui.prompt("a - nope, d - like, i - info, g - genre, m - matches, r - reload, q - quit: ")
		if !ok {
			return
		}

		switch in {
		case "a", "left":
			ui.swipe(ctx, deck.Left)
		case "d", "right":
			ui.swipe(ctx, deck.Right)
		case "w", "up":
			ui.swipe(ctx, deck.Up)
		case "s", "down":
			ui.swipe(ctx, deck.Down)
		case "i":
			if top, ok := ui.session.Deck().Top(); ok {
				ui.openDetail(ctx, top.ID)
			}
		case "g":
			ui.chooseGenre(ctx)
		case "m":
			ui.showMatches(ctx)
		case "r":
			if err := ui.session.Start(ctx); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		case "q":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command")
		}
	}
}
