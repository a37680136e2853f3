package schedule

import (
	"fmt"

	"github.com/derekprior/clubsched/internal/config"
	"github.com/derekprior/clubsched/internal/strategy"
)

// jitterScale bounds the random tie-break added to each candidate score.
// Jitter falls in [0, jitterScale), so it only reorders candidates whose
// rest time is equal.
const jitterScale = 1.0

// Rand is the source of tie-break jitter. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Assignment pairs a matchup with the slot it was given.
type Assignment struct {
	Matchup strategy.Matchup
	Slot    Slot
}

// Result is the output of the scheduling process.
type Result struct {
	Assignments []Assignment
	Stats       *Stats
	ByeWeeks    map[string]int // bye weeks counted while distributing
	Warnings    []string
}

// Generate builds a season schedule for the given teams. Fewer than two teams
// or a zero-capacity week produce an empty (or sparse) schedule, never an error.
func Generate(cfg *config.Config, teams []string, rng Rand) *Result {
	strat, err := strategy.Get(cfg.Strategy)
	if err != nil {
		strat = &strategy.RoundRobin{}
	}

	gamesPerWeek := cfg.GamesPerWeek()
	slotsNeeded := cfg.Season.Weeks * gamesPerWeek
	matchups := strat.GenerateMatchups(teams, slotsNeeded)

	d := newDistributor(teams, matchups, rng)
	var assignments []Assignment
	var warnings []string

	if len(teams) > 2*gamesPerWeek && gamesPerWeek > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d teams but only %d can play each week; some teams will have bye weeks",
			len(teams), 2*gamesPerWeek))
	}

	for week := 1; week <= cfg.Season.Weeks; week++ {
		weekMatchups := d.fillWeek(week, gamesPerWeek)
		if len(weekMatchups) < gamesPerWeek && len(weekMatchups) < len(teams)/2 && len(d.pool) > 0 {
			warnings = append(warnings, fmt.Sprintf(
				"week %d has %d of %d games; remaining matchups would double-book a team",
				week, len(weekMatchups), gamesPerWeek))
		}
		assignments = append(assignments, AssignSlots(week, weekMatchups, cfg.GameStartTimes)...)
	}

	return &Result{
		Assignments: assignments,
		Stats:       ComputeStats(assignments, teams, cfg.Season.Weeks),
		ByeWeeks:    d.byes,
		Warnings:    warnings,
	}
}

// distributor hands matchups out week by week, preferring the teams that
// have rested longest.
type distributor struct {
	teams      []string
	pool       []strategy.Matchup
	lastPlayed map[string]int // team -> last week played, 0 if never
	byes       map[string]int // team -> bye weeks so far
	rng        Rand
}

func newDistributor(teams []string, matchups []strategy.Matchup, rng Rand) *distributor {
	pool := make([]strategy.Matchup, len(matchups))
	copy(pool, matchups)

	d := &distributor{
		teams:      teams,
		pool:       pool,
		lastPlayed: make(map[string]int, len(teams)),
		byes:       make(map[string]int, len(teams)),
		rng:        rng,
	}
	for _, team := range teams {
		d.lastPlayed[team] = 0
		d.byes[team] = 0
	}
	return d
}

// fillWeek picks up to gamesPerWeek matchups for the week. A week ends early
// when every remaining matchup involves a team already playing that week.
func (d *distributor) fillWeek(week, gamesPerWeek int) []strategy.Matchup {
	playing := make(map[string]bool)
	var games []strategy.Matchup

	for attempts := 0; len(games) < gamesPerWeek && attempts < 2*len(d.pool); attempts++ {
		best := d.bestCandidate(week, playing)
		if best < 0 {
			break
		}

		m := d.pool[best]
		d.pool = append(d.pool[:best], d.pool[best+1:]...)
		playing[m.Home] = true
		playing[m.Away] = true
		d.lastPlayed[m.Home] = week
		d.lastPlayed[m.Away] = week
		games = append(games, m)
	}

	for _, team := range d.teams {
		if !playing[team] {
			d.byes[team]++
		}
	}
	return games
}

// bestCandidate returns the pool index of the highest scoring matchup whose
// teams are both free this week, or -1.
func (d *distributor) bestCandidate(week int, playing map[string]bool) int {
	best := -1
	bestScore := 0.0
	for i, m := range d.pool {
		if playing[m.Home] || playing[m.Away] {
			continue
		}
		score := float64(week-d.lastPlayed[m.Home]) + float64(week-d.lastPlayed[m.Away])
		if d.rng != nil {
			score += d.rng.Float64() * jitterScale
		}
		if best < 0 || score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best
}
