package strategy

import "fmt"

// Matchup represents a single game between two teams.
type Matchup struct {
	Home  string
	Away  string
	Label string // unique identifier like "Game 1"
}

// Strategy generates the list of matchups needed to fill a season.
type Strategy interface {
	GenerateMatchups(teams []string, slotsNeeded int) []Matchup
}

// Get returns a Strategy by name.
func Get(name string) (Strategy, error) {
	switch name {
	case "round_robin":
		return &RoundRobin{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy: %q", name)
	}
}

// RoundRobin plays every pairing once per round, repeating rounds with
// home/away swapped until the season is full.
type RoundRobin struct{}

func (s *RoundRobin) GenerateMatchups(teams []string, slotsNeeded int) []Matchup {
	matchups := ExtendedMatchups(teams, slotsNeeded)
	for i := range matchups {
		matchups[i].Label = fmt.Sprintf("Game %d", i+1)
	}
	return matchups
}

// RoundRobinMatchups returns one matchup for every unordered pair of teams.
// Home/away alternates with each pairing to keep totals roughly balanced.
// Fewer than two teams yields no matchups.
func RoundRobinMatchups(teams []string) []Matchup {
	if len(teams) < 2 {
		return nil
	}

	matchups := make([]Matchup, 0, len(teams)*(len(teams)-1)/2)
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			home, away := teams[i], teams[j]
			if len(matchups)%2 == 1 {
				home, away = away, home
			}
			matchups = append(matchups, Matchup{Home: home, Away: away})
		}
	}
	return matchups
}

// ExtendedMatchups repeats the round robin until it covers slotsNeeded games.
// Each added round swaps home/away of the round before it. The result is
// truncated to exactly slotsNeeded matchups.
func ExtendedMatchups(teams []string, slotsNeeded int) []Matchup {
	base := RoundRobinMatchups(teams)
	if len(base) == 0 || slotsNeeded <= 0 {
		return nil
	}

	all := make([]Matchup, 0, slotsNeeded+len(base))
	all = append(all, base...)
	prev := base
	for len(all) < slotsNeeded {
		next := make([]Matchup, len(prev))
		for i, m := range prev {
			next[i] = Matchup{Home: m.Away, Away: m.Home}
		}
		all = append(all, next...)
		prev = next
	}

	return all[:slotsNeeded]
}
