package schedule

import (
	"testing"

	"github.com/derekprior/clubsched/internal/strategy"
)

func TestWeekSlots(t *testing.T) {
	cfg := schedulerTestConfig(3, 6, "6:00 PM", "7:15 PM")
	slots := WeekSlots(cfg)

	if len(slots) != 6 {
		t.Fatalf("slots = %d, want 6", len(slots))
	}

	want := []Slot{
		{Field: 1, Time: "6:00 PM"},
		{Field: 1, Time: "7:15 PM"},
		{Field: 2, Time: "6:00 PM"},
		{Field: 2, Time: "7:15 PM"},
		{Field: 3, Time: "6:00 PM"},
		{Field: 3, Time: "7:15 PM"},
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slot %d = field %d %s, want field %d %s",
				i, slots[i].Field, slots[i].Time, want[i].Field, want[i].Time)
		}
	}
}

func TestAssignSlots(t *testing.T) {
	matchups := []strategy.Matchup{
		{Home: "A", Away: "B"},
		{Home: "C", Away: "D"},
		{Home: "E", Away: "F"},
	}

	t.Run("times fill before the next field", func(t *testing.T) {
		got := AssignSlots(4, matchups, []string{"6:00 PM", "8:30 PM"})
		if len(got) != 3 {
			t.Fatalf("assignments = %d, want 3", len(got))
		}
		want := []Slot{
			{Week: 4, Field: 1, Time: "6:00 PM"},
			{Week: 4, Field: 1, Time: "8:30 PM"},
			{Week: 4, Field: 2, Time: "6:00 PM"},
		}
		for i := range want {
			if got[i].Slot != want[i] {
				t.Errorf("assignment %d slot = %+v, want %+v", i, got[i].Slot, want[i])
			}
			if got[i].Matchup != matchups[i] {
				t.Errorf("assignment %d matchup = %+v, want %+v", i, got[i].Matchup, matchups[i])
			}
		}
	})

	t.Run("single time slot uses one field per game", func(t *testing.T) {
		got := AssignSlots(1, matchups, []string{"8:30 PM"})
		for i, a := range got {
			if a.Slot.Field != i+1 {
				t.Errorf("assignment %d field = %d, want %d", i, a.Slot.Field, i+1)
			}
		}
	})

	t.Run("no times", func(t *testing.T) {
		if got := AssignSlots(1, matchups, nil); len(got) != 0 {
			t.Errorf("assignments = %d, want 0", len(got))
		}
	})
}
