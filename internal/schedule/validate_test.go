package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateParameters(t *testing.T) {
	tests := []struct {
		name   string
		fields int
		weeks  int
		times  []string
		teams  []string
		want   []string
	}{
		{
			name:   "valid",
			fields: 1, weeks: 6, times: []string{"8:30 PM"},
			teams: []string{"A", "B"},
			want:  nil,
		},
		{
			name:   "one team",
			fields: 1, weeks: 6, times: []string{"8:30 PM"},
			teams: []string{"A"},
			want:  []string{"At least 2 active teams are required to generate a schedule"},
		},
		{
			name:   "no fields",
			fields: 0, weeks: 6, times: []string{"8:30 PM"},
			teams: []string{"A", "B"},
			want:  []string{"At least 1 field must be available"},
		},
		{
			name:   "no start times",
			fields: 1, weeks: 6,
			teams: []string{"A", "B"},
			want:  []string{"At least 1 game start time is required"},
		},
		{
			name:   "no weeks",
			fields: 1, weeks: 0, times: []string{"8:30 PM"},
			teams: []string{"A", "B"},
			want:  []string{"Season must be at least 1 week long"},
		},
		{
			name:   "repeated start time",
			fields: 1, weeks: 1, times: []string{"8:30 PM", "6:00 PM", "8:30 PM"},
			teams: []string{"A", "B", "C", "D"},
			want:  []string{`Game start time "8:30 PM" is listed more than once`},
		},
		{
			name: "everything wrong",
			want: []string{
				"At least 2 active teams are required to generate a schedule",
				"At least 1 field must be available",
				"At least 1 game start time is required",
				"Season must be at least 1 week long",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := schedulerTestConfig(tt.fields, tt.weeks, tt.times...)
			assert.Equal(t, tt.want, ValidateParameters(cfg, tt.teams))
		})
	}
}
