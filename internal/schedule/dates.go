package schedule

import (
	"fmt"
	"time"

	"github.com/derekprior/clubsched/internal/config"
)

// GameDate is the calendar date and start time of a scheduled game.
type GameDate struct {
	Date time.Time
	Time string
}

// GameKey identifies a scheduled game by its teams and week. Callers joining
// dates back onto their own game records must build keys the same way.
func GameKey(home, away string, week int) string {
	return fmt.Sprintf("%s-%s-%d", home, away, week)
}

// FirstGameDate returns the first date on or after the season start that
// falls on the league's game day.
func FirstGameDate(cfg *config.Config) time.Time {
	start := cfg.Season.StartDate.Time
	offset := (int(cfg.Season.DayOfWeek.Day) - int(start.Weekday()) + 7) % 7
	return start.AddDate(0, 0, offset)
}

// WeekDate returns the calendar date of the given 1-based week.
func WeekDate(cfg *config.Config, week int) time.Time {
	return FirstGameDate(cfg).AddDate(0, 0, (week-1)*7)
}

// CalculateGameDates maps every game to its calendar date. All games in a
// week share that week's date; start times come from the games themselves.
func CalculateGameDates(cfg *config.Config, assignments []Assignment) map[string]GameDate {
	first := FirstGameDate(cfg)
	dates := make(map[string]GameDate, len(assignments))
	for _, a := range assignments {
		key := GameKey(a.Matchup.Home, a.Matchup.Away, a.Slot.Week)
		dates[key] = GameDate{
			Date: first.AddDate(0, 0, (a.Slot.Week-1)*7),
			Time: a.Slot.Time,
		}
	}
	return dates
}
