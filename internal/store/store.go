// Package store persists generated games so a season can be published
// somewhere other than a workbook.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/derekprior/clubsched/internal/schedule"
	"github.com/google/uuid"
)

// ErrInvalidGame is returned when a game record is missing required data.
var ErrInvalidGame = errors.New("invalid game")

// Game is a persisted, dated game.
type Game struct {
	ID       string
	LeagueID string
	Week     int
	Field    int
	Label    string
	Home     string
	Away     string
	Date     time.Time
	Time     string
}

// Validate reports whether the game can be stored.
func (g Game) Validate() error {
	switch {
	case strings.TrimSpace(g.ID) == "":
		return fmt.Errorf("%w: id is required", ErrInvalidGame)
	case strings.TrimSpace(g.LeagueID) == "":
		return fmt.Errorf("%w: league id is required", ErrInvalidGame)
	case g.Week < 1:
		return fmt.Errorf("%w: week must be >= 1, got %d", ErrInvalidGame, g.Week)
	case g.Field < 1:
		return fmt.Errorf("%w: field must be >= 1, got %d", ErrInvalidGame, g.Field)
	case g.Home == "" || g.Away == "":
		return fmt.Errorf("%w: home and away teams are required", ErrInvalidGame)
	case g.Home == g.Away:
		return fmt.Errorf("%w: %s cannot play itself", ErrInvalidGame, g.Home)
	}
	return nil
}

// Repository stores games by league.
type Repository interface {
	// ReplaceLeagueGames atomically swaps a league's games for a new set.
	ReplaceLeagueGames(ctx context.Context, leagueID string, games []Game) error
	CreateGames(ctx context.Context, games []Game) error
	DeleteByLeague(ctx context.Context, leagueID string) error
	// ListByLeague returns games ordered by week, keeping insertion order
	// within a week.
	ListByLeague(ctx context.Context, leagueID string) ([]Game, error)
}

// BuildGames turns scheduler output into game records. Dates are joined on
// schedule.GameKey; games without a date keep the zero time. Start times
// always come from the assigned slot.
func BuildGames(leagueID string, assignments []schedule.Assignment, dates map[string]schedule.GameDate) []Game {
	games := make([]Game, 0, len(assignments))
	for _, a := range assignments {
		g := Game{
			ID:       uuid.NewString(),
			LeagueID: leagueID,
			Week:     a.Slot.Week,
			Field:    a.Slot.Field,
			Label:    a.Matchup.Label,
			Home:     a.Matchup.Home,
			Away:     a.Matchup.Away,
			Time:     a.Slot.Time,
		}
		// Keys are ambiguous for hyphenated team names, but every game in a
		// week shares a date, so only the date is taken from the map.
		if gd, ok := dates[schedule.GameKey(a.Matchup.Home, a.Matchup.Away, a.Slot.Week)]; ok {
			g.Date = gd.Date
		}
		games = append(games, g)
	}
	return games
}
