package validator

import (
	"fmt"
	"sort"

	"github.com/derekprior/clubsched/internal/config"
	"github.com/derekprior/clubsched/internal/excel"
	"github.com/derekprior/clubsched/internal/schedule"
	"github.com/xuri/excelize/v2"
)

const (
	maxByeSpread     = 1
	maxHomeAwayDelta = 2

	dayLayout = "01/02/2006"
)

// Violation represents a problem found in a schedule workbook.
type Violation struct {
	Row     int
	Type    string // "error" or "warning"
	Message string
}

// Validate reads a schedule workbook and checks its master sheet against the
// league config. Errors make the schedule unplayable; warnings flag fairness
// problems worth a second look.
func Validate(cfg *config.Config, path string) ([]Violation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	games, err := excel.ReadMaster(f)
	if err != nil {
		return nil, fmt.Errorf("reading assignments: %w", err)
	}

	return Check(cfg, games), nil
}

// Check runs every rule over games already read from a workbook.
func Check(cfg *config.Config, games []excel.MasterGame) []Violation {
	var violations []Violation

	// Hard constraints
	violations = append(violations, checkTeams(cfg, games)...)
	violations = append(violations, checkSlots(cfg, games)...)
	violations = append(violations, checkOnePerWeek(games)...)
	violations = append(violations, checkGameCompleteness(cfg, games)...)

	// Fairness
	violations = append(violations, checkByeBalance(cfg, games)...)
	violations = append(violations, checkHomeAwayBalance(cfg, games)...)
	violations = append(violations, checkBackToBackRematches(games)...)

	return violations
}

func checkTeams(cfg *config.Config, games []excel.MasterGame) []Violation {
	status := make(map[string]bool) // team -> active
	for _, t := range cfg.Teams {
		status[t.Name] = !t.Inactive
	}

	var violations []Violation
	for _, g := range games {
		for _, team := range []string{g.Home, g.Away} {
			active, known := status[team]
			switch {
			case !known:
				violations = append(violations, Violation{
					Row:     g.Row,
					Type:    "error",
					Message: fmt.Sprintf("unknown team %q in week %d", team, g.Week),
				})
			case !active:
				violations = append(violations, Violation{
					Row:     g.Row,
					Type:    "error",
					Message: fmt.Sprintf("%s is inactive but scheduled in week %d", team, g.Week),
				})
			}
		}
		if g.Home == g.Away {
			violations = append(violations, Violation{
				Row:     g.Row,
				Type:    "error",
				Message: fmt.Sprintf("%s is scheduled against itself in week %d", g.Home, g.Week),
			})
		}
	}
	return violations
}

func checkSlots(cfg *config.Config, games []excel.MasterGame) []Violation {
	times := make(map[string]bool, len(cfg.GameStartTimes))
	for _, t := range cfg.GameStartTimes {
		times[t] = true
	}

	var violations []Violation
	for _, g := range games {
		if g.Week < 1 || g.Week > cfg.Season.Weeks {
			violations = append(violations, Violation{
				Row:     g.Row,
				Type:    "error",
				Message: fmt.Sprintf("week %d is outside the %d-week season", g.Week, cfg.Season.Weeks),
			})
			continue
		}
		if g.Field < 1 || g.Field > cfg.AvailableFields {
			violations = append(violations, Violation{
				Row:     g.Row,
				Type:    "error",
				Message: fmt.Sprintf("field %d does not exist (%d available)", g.Field, cfg.AvailableFields),
			})
		}
		if !times[g.Time] {
			violations = append(violations, Violation{
				Row:     g.Row,
				Type:    "error",
				Message: fmt.Sprintf("%q is not a configured start time", g.Time),
			})
		}
		if want := schedule.WeekDate(cfg, g.Week); g.Date.Format(dayLayout) != want.Format(dayLayout) {
			violations = append(violations, Violation{
				Row:  g.Row,
				Type: "error",
				Message: fmt.Sprintf("week %d is dated %s, expected %s",
					g.Week, g.Date.Format(dayLayout), want.Format(dayLayout)),
			})
		}
	}
	return violations
}

func checkOnePerWeek(games []excel.MasterGame) []Violation {
	type teamWeek struct {
		team string
		week int
	}
	rows := make(map[teamWeek][]int)
	var order []teamWeek
	for _, g := range games {
		for _, team := range []string{g.Home, g.Away} {
			tw := teamWeek{team, g.Week}
			if rows[tw] == nil {
				order = append(order, tw)
			}
			rows[tw] = append(rows[tw], g.Row)
		}
	}

	var violations []Violation
	for _, tw := range order {
		if len(rows[tw]) > 1 {
			violations = append(violations, Violation{
				Row:     rows[tw][1],
				Type:    "error",
				Message: fmt.Sprintf("%s plays %d games in week %d", tw.team, len(rows[tw]), tw.week),
			})
		}
	}
	return violations
}

func checkGameCompleteness(cfg *config.Config, games []excel.MasterGame) []Violation {
	counts := make(map[string]int)
	for _, g := range games {
		counts[g.Home]++
		counts[g.Away]++
	}

	var violations []Violation
	for _, team := range cfg.ActiveTeams() {
		if counts[team] == 0 {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s has no games scheduled", team),
			})
		}
	}
	return violations
}

func checkByeBalance(cfg *config.Config, games []excel.MasterGame) []Violation {
	teams := cfg.ActiveTeams()
	if len(teams) == 0 {
		return nil
	}

	played := make(map[string]map[int]bool, len(teams))
	for _, team := range teams {
		played[team] = make(map[int]bool)
	}
	for _, g := range games {
		if g.Week < 1 || g.Week > cfg.Season.Weeks {
			continue
		}
		for _, team := range []string{g.Home, g.Away} {
			if played[team] != nil {
				played[team][g.Week] = true
			}
		}
	}

	minTeam, maxTeam := teams[0], teams[0]
	byes := func(team string) int { return cfg.Season.Weeks - len(played[team]) }
	for _, team := range teams[1:] {
		if byes(team) < byes(minTeam) {
			minTeam = team
		}
		if byes(team) > byes(maxTeam) {
			maxTeam = team
		}
	}
	if byes(maxTeam)-byes(minTeam) > maxByeSpread {
		return []Violation{{
			Type: "warning",
			Message: fmt.Sprintf("bye week imbalance: %s has %d, %s has %d",
				minTeam, byes(minTeam), maxTeam, byes(maxTeam)),
		}}
	}
	return nil
}

func checkHomeAwayBalance(cfg *config.Config, games []excel.MasterGame) []Violation {
	home := make(map[string]int)
	away := make(map[string]int)
	for _, g := range games {
		home[g.Home]++
		away[g.Away]++
	}

	var violations []Violation
	for _, team := range cfg.ActiveTeams() {
		delta := home[team] - away[team]
		if delta > maxHomeAwayDelta || -delta > maxHomeAwayDelta {
			violations = append(violations, Violation{
				Type:    "warning",
				Message: fmt.Sprintf("%s has %d home and %d away games", team, home[team], away[team]),
			})
		}
	}
	return violations
}

func checkBackToBackRematches(games []excel.MasterGame) []Violation {
	type pairing struct{ a, b string }
	weeks := make(map[pairing][]excel.MasterGame)
	var order []pairing
	for _, g := range games {
		a, b := g.Home, g.Away
		if a > b {
			a, b = b, a
		}
		p := pairing{a, b}
		if weeks[p] == nil {
			order = append(order, p)
		}
		weeks[p] = append(weeks[p], g)
	}

	var violations []Violation
	for _, p := range order {
		played := weeks[p]
		sort.SliceStable(played, func(i, j int) bool { return played[i].Week < played[j].Week })
		for i := 1; i < len(played); i++ {
			if played[i].Week-played[i-1].Week == 1 {
				violations = append(violations, Violation{
					Row:  played[i].Row,
					Type: "warning",
					Message: fmt.Sprintf("%s vs %s rematch in back-to-back weeks %d and %d",
						p.a, p.b, played[i-1].Week, played[i].Week),
				})
			}
		}
	}
	return violations
}
