package schedule

import (
	"github.com/derekprior/clubsched/internal/config"
	"github.com/derekprior/clubsched/internal/strategy"
)

// Slot represents where a game is played: a week, a field and a start time.
type Slot struct {
	Week  int
	Field int    // 1-based field number
	Time  string // "6:00 PM", "8:30 PM", etc.
}

// WeekSlots returns the slots available in every week, ordered the way games
// are packed into them: all start times on field 1, then field 2, and so on.
func WeekSlots(cfg *config.Config) []Slot {
	var slots []Slot
	for i := 0; i < cfg.GamesPerWeek(); i++ {
		slots = append(slots, slotAt(0, i, cfg.GameStartTimes))
	}
	return slots
}

// AssignSlots places a week's matchups into field/time slots in order.
func AssignSlots(week int, matchups []strategy.Matchup, times []string) []Assignment {
	if len(times) == 0 {
		return nil
	}
	assignments := make([]Assignment, 0, len(matchups))
	for i, m := range matchups {
		assignments = append(assignments, Assignment{
			Matchup: m,
			Slot:    slotAt(week, i, times),
		})
	}
	return assignments
}

func slotAt(week, index int, times []string) Slot {
	return Slot{
		Week:  week,
		Field: index/len(times) + 1,
		Time:  times[index%len(times)],
	}
}
