package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	t.Run("Gaps and days", func(t *testing.T) {
		//** Arrange
		schedule := newSchedule(1, Candidate{
			{
				Lecture: section("1", "001", Lecture, meetingOn("MW", 540, 590)),
				Lab:     &[]Section{section("2", "021", Lab, meetingOn("M", 660, 770))}[0],
			},
			{Lecture: section("3", "001", Lecture, meetingOn("WF", 600, 650))},
		})

		//** Act
		stats := schedule.Stats

		//** Assert
		assert.Equal(t, "9:00 AM", stats.Earliest)
		assert.Equal(t, "12:50 PM", stats.Latest)
		// Monday 590 -> 660, Wednesday 590 -> 600
		assert.Equal(t, 80, stats.GapMinutes)
		assert.Equal(t, 3, stats.Days)
	})

	t.Run("Unknown times only", func(t *testing.T) {
		unknown := Meeting{Days: []string{"M"}, Start: UnknownTime, End: UnknownTime}
		schedule := newSchedule(1, Candidate{{Lecture: section("1", "001", Lecture, unknown)}})

		assert.Equal(t, ScheduleStats{Earliest: "TBA", Latest: "TBA"}, schedule.Stats)
	})

	t.Run("Overlap is not a negative gap", func(t *testing.T) {
		stats := ComputeStats(newSchedule(1, Candidate{
			{Lecture: section("1", "001", Lecture, meetingOn("T", 600, 700))},
			{Lecture: section("2", "001", Lecture, meetingOn("T", 650, 720))},
		}))

		assert.Equal(t, 0, stats.GapMinutes)
		assert.Equal(t, 1, stats.Days)
	})
}
