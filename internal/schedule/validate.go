package schedule

import (
	"fmt"

	"github.com/derekprior/clubsched/internal/config"
)

// ValidateParameters returns human-readable problems that would prevent a
// useful schedule. An empty result means the parameters are valid. The check
// is advisory; Generate tolerates all of these conditions.
func ValidateParameters(cfg *config.Config, teams []string) []string {
	var issues []string
	if len(teams) < 2 {
		issues = append(issues, "At least 2 active teams are required to generate a schedule")
	}
	if cfg.AvailableFields < 1 {
		issues = append(issues, "At least 1 field must be available")
	}
	if len(cfg.GameStartTimes) < 1 {
		issues = append(issues, "At least 1 game start time is required")
	}
	seen := make(map[string]bool, len(cfg.GameStartTimes))
	for _, tm := range cfg.GameStartTimes {
		if seen[tm] {
			issues = append(issues, fmt.Sprintf("Game start time %q is listed more than once", tm))
		}
		seen[tm] = true
	}
	if cfg.Season.Weeks < 1 {
		issues = append(issues, "Season must be at least 1 week long")
	}
	return issues
}
