package schedule

// Stats summarizes how a schedule treats each team.
type Stats struct {
	TotalGames       int
	GamesPerTeam     map[string]int
	HomeGamesPerTeam map[string]int
	AwayGamesPerTeam map[string]int
	ByeWeeksPerTeam  map[string]int
	MaxGamesPerTeam  int
	MinGamesPerTeam  int
}

// ComputeStats derives per-team statistics from a finished schedule. Every
// team appears in every map, with zero for teams that never play.
func ComputeStats(assignments []Assignment, teams []string, seasonWeeks int) *Stats {
	s := &Stats{
		TotalGames:       len(assignments),
		GamesPerTeam:     make(map[string]int, len(teams)),
		HomeGamesPerTeam: make(map[string]int, len(teams)),
		AwayGamesPerTeam: make(map[string]int, len(teams)),
		ByeWeeksPerTeam:  make(map[string]int, len(teams)),
	}

	weeksPlaying := make(map[string]map[int]bool, len(teams))
	for _, team := range teams {
		s.GamesPerTeam[team] = 0
		s.HomeGamesPerTeam[team] = 0
		s.AwayGamesPerTeam[team] = 0
		weeksPlaying[team] = make(map[int]bool)
	}

	for _, a := range assignments {
		home, away := a.Matchup.Home, a.Matchup.Away
		s.GamesPerTeam[home]++
		s.GamesPerTeam[away]++
		s.HomeGamesPerTeam[home]++
		s.AwayGamesPerTeam[away]++
		if weeksPlaying[home] != nil {
			weeksPlaying[home][a.Slot.Week] = true
		}
		if weeksPlaying[away] != nil {
			weeksPlaying[away][a.Slot.Week] = true
		}
	}

	for i, team := range teams {
		s.ByeWeeksPerTeam[team] = seasonWeeks - len(weeksPlaying[team])
		games := s.GamesPerTeam[team]
		if i == 0 || games > s.MaxGamesPerTeam {
			s.MaxGamesPerTeam = games
		}
		if i == 0 || games < s.MinGamesPerTeam {
			s.MinGamesPerTeam = games
		}
	}

	return s
}
