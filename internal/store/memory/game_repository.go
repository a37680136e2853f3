package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/derekprior/clubsched/internal/store"
)

type GameRepository struct {
	mu            sync.RWMutex
	gamesByLeague map[string][]store.Game
}

func NewGameRepository(games []store.Game) *GameRepository {
	gamesByLeague := make(map[string][]store.Game)
	for _, item := range games {
		gamesByLeague[item.LeagueID] = append(gamesByLeague[item.LeagueID], item)
	}

	return &GameRepository{gamesByLeague: gamesByLeague}
}

var _ store.Repository = (*GameRepository)(nil)

func (r *GameRepository) ReplaceLeagueGames(_ context.Context, leagueID string, games []store.Game) error {
	if err := validateAll(leagueID, games); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := checkIDs(r.idsInUse(leagueID), games); err != nil {
		return err
	}
	r.gamesByLeague[leagueID] = append([]store.Game(nil), games...)
	return nil
}

func (r *GameRepository) CreateGames(_ context.Context, games []store.Game) error {
	for _, g := range games {
		if err := g.Validate(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := checkIDs(r.idsInUse(""), games); err != nil {
		return err
	}
	for _, g := range games {
		r.gamesByLeague[g.LeagueID] = append(r.gamesByLeague[g.LeagueID], g)
	}
	return nil
}

func (r *GameRepository) DeleteByLeague(_ context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.gamesByLeague, leagueID)
	return nil
}

func (r *GameRepository) ListByLeague(_ context.Context, leagueID string) ([]store.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.gamesByLeague[leagueID]
	out := make([]store.Game, 0, len(items))
	out = append(out, items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out, nil
}

// validateAll rejects the whole batch if any game is invalid or belongs to a
// different league.
func validateAll(leagueID string, games []store.Game) error {
	for _, g := range games {
		if err := g.Validate(); err != nil {
			return err
		}
		if g.LeagueID != leagueID {
			return fmt.Errorf("%w: game %s belongs to league %q, not %q", store.ErrInvalidGame, g.ID, g.LeagueID, leagueID)
		}
	}
	return nil
}

// idsInUse returns the ids of every stored game outside skipLeague. Callers
// must hold r.mu.
func (r *GameRepository) idsInUse(skipLeague string) map[string]bool {
	ids := make(map[string]bool)
	for league, games := range r.gamesByLeague {
		if league == skipLeague {
			continue
		}
		for _, g := range games {
			ids[g.ID] = true
		}
	}
	return ids
}

// checkIDs rejects games whose id is already taken, either by a stored game
// or earlier in the same batch. Ids are unique across leagues.
func checkIDs(taken map[string]bool, games []store.Game) error {
	for _, g := range games {
		if taken[g.ID] {
			return fmt.Errorf("%w: duplicate game id %s", store.ErrInvalidGame, g.ID)
		}
		taken[g.ID] = true
	}
	return nil
}
