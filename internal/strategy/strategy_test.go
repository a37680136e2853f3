package strategy

import (
	"fmt"
	"testing"
)

type pair struct{ a, b string }

func normalize(m Matchup) pair {
	if m.Home > m.Away {
		return pair{m.Away, m.Home}
	}
	return pair{m.Home, m.Away}
}

func teamNames(n int) []string {
	teams := make([]string, n)
	for i := range teams {
		teams[i] = fmt.Sprintf("T%d", i+1)
	}
	return teams
}

func TestRoundRobinMatchups(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5, 8, 11} {
		t.Run(fmt.Sprintf("%d teams", n), func(t *testing.T) {
			teams := teamNames(n)
			matchups := RoundRobinMatchups(teams)

			want := n * (n - 1) / 2
			if len(matchups) != want {
				t.Fatalf("matchups = %d, want %d", len(matchups), want)
			}

			seen := make(map[pair]int)
			for _, m := range matchups {
				if m.Home == m.Away {
					t.Errorf("team %s plays itself", m.Home)
				}
				seen[normalize(m)]++
			}
			for i := 0; i < n; i++ {
				for j := i + 1; j < n; j++ {
					p := normalize(Matchup{Home: teams[i], Away: teams[j]})
					if seen[p] != 1 {
						t.Errorf("%s vs %s appears %d times, want 1", p.a, p.b, seen[p])
					}
				}
			}
		})
	}
}

func TestRoundRobinHomeAwayAlternates(t *testing.T) {
	matchups := RoundRobinMatchups([]string{"A", "B", "C", "D"})

	want := []Matchup{
		{Home: "A", Away: "B"},
		{Home: "C", Away: "A"},
		{Home: "A", Away: "D"},
		{Home: "C", Away: "B"},
		{Home: "B", Away: "D"},
		{Home: "D", Away: "C"},
	}
	if len(matchups) != len(want) {
		t.Fatalf("matchups = %d, want %d", len(matchups), len(want))
	}
	for i := range want {
		if matchups[i] != want[i] {
			t.Errorf("matchup %d = %s vs %s, want %s vs %s",
				i, matchups[i].Home, matchups[i].Away, want[i].Home, want[i].Away)
		}
	}

	home := make(map[string]int)
	away := make(map[string]int)
	for _, m := range matchups {
		home[m.Home]++
		away[m.Away]++
	}
	for _, team := range []string{"A", "B", "C", "D"} {
		if diff := home[team] - away[team]; diff < -2 || diff > 2 {
			t.Errorf("%s home/away imbalance: %d home, %d away", team, home[team], away[team])
		}
	}
}

func TestRoundRobinTooFewTeams(t *testing.T) {
	if got := RoundRobinMatchups(nil); len(got) != 0 {
		t.Errorf("no teams: got %d matchups, want 0", len(got))
	}
	if got := RoundRobinMatchups([]string{"A"}); len(got) != 0 {
		t.Errorf("one team: got %d matchups, want 0", len(got))
	}
	if got := ExtendedMatchups([]string{"A"}, 50); len(got) != 0 {
		t.Errorf("one team extended: got %d matchups, want 0", len(got))
	}
}

func TestExtendedMatchups(t *testing.T) {
	teams := []string{"A", "B", "C", "D"}
	base := RoundRobinMatchups(teams)

	t.Run("exact fit needs no repetition", func(t *testing.T) {
		got := ExtendedMatchups(teams, 6)
		if len(got) != 6 {
			t.Fatalf("matchups = %d, want 6", len(got))
		}
		for i := range base {
			if got[i] != base[i] {
				t.Errorf("matchup %d changed: %v, want %v", i, got[i], base[i])
			}
		}
	})

	t.Run("fewer slots truncates", func(t *testing.T) {
		got := ExtendedMatchups(teams, 4)
		if len(got) != 4 {
			t.Fatalf("matchups = %d, want 4", len(got))
		}
	})

	t.Run("second round swaps home and away", func(t *testing.T) {
		got := ExtendedMatchups(teams, 12)
		if len(got) != 12 {
			t.Fatalf("matchups = %d, want 12", len(got))
		}
		for i, m := range base {
			second := got[len(base)+i]
			if second.Home != m.Away || second.Away != m.Home {
				t.Errorf("round 2 matchup %d = %s vs %s, want %s vs %s",
					i, second.Home, second.Away, m.Away, m.Home)
			}
		}
	})

	t.Run("third round matches first", func(t *testing.T) {
		got := ExtendedMatchups(teams, 15)
		if len(got) != 15 {
			t.Fatalf("matchups = %d, want 15", len(got))
		}
		for i := 0; i < 3; i++ {
			if got[12+i] != base[i] {
				t.Errorf("round 3 matchup %d = %v, want %v", i, got[12+i], base[i])
			}
		}
	})

	t.Run("zero slots", func(t *testing.T) {
		if got := ExtendedMatchups(teams, 0); len(got) != 0 {
			t.Errorf("matchups = %d, want 0", len(got))
		}
	})
}

func TestRoundRobinStrategyLabels(t *testing.T) {
	strat, err := Get("round_robin")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}

	matchups := strat.GenerateMatchups([]string{"A", "B", "C"}, 7)
	if len(matchups) != 7 {
		t.Fatalf("matchups = %d, want 7", len(matchups))
	}
	seen := make(map[string]bool)
	for _, m := range matchups {
		if m.Label == "" {
			t.Error("matchup has empty label")
		}
		if seen[m.Label] {
			t.Errorf("duplicate label: %s", m.Label)
		}
		seen[m.Label] = true
	}
	if matchups[0].Label != "Game 1" {
		t.Errorf("first label = %q, want Game 1", matchups[0].Label)
	}
}

func TestGetUnknownStrategy(t *testing.T) {
	if _, err := Get("division_weighted"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}
