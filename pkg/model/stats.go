package model

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// ScheduleStats summarizes the weekly shape of a schedule. Only meetings with a
// known time take part.
type ScheduleStats struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
	// Idle minutes between consecutive meetings of the same day, summed over the week
	GapMinutes int `json:"gaps"`
	Days       int `json:"days"`
}

func ComputeStats(schedule Schedule) ScheduleStats {
	meetings := lo.FilterMap(lo.FlatMap(schedule.Courses, func(course CourseSchedule, _ int) []SectionSummary {
		return course.Sections()
	}), func(section SectionSummary, _ int) (Meeting, bool) {
		return section.Meeting, section.Meeting.HasTime() && len(section.Meeting.Days) > 0
	})

	if len(meetings) == 0 {
		return ScheduleStats{Earliest: tba, Latest: tba}
	}

	earliest := lo.MinBy(meetings, func(a, b Meeting) bool { return a.Start < b.Start })
	latest := lo.MaxBy(meetings, func(a, b Meeting) bool { return a.End > b.End })

	//** Gaps per day
	byDay := make(map[string][]Meeting)
	for _, meeting := range meetings {
		for _, day := range meeting.Days {
			byDay[day] = append(byDay[day], meeting)
		}
	}

	gaps := 0
	for _, dayMeetings := range byDay {
		slices.SortFunc(dayMeetings, func(a, b Meeting) int { return cmp.Compare(a.Start, b.Start) })
		for i := 1; i < len(dayMeetings); i++ {
			if gap := dayMeetings[i].Start - dayMeetings[i-1].End; gap > 0 {
				gaps += gap
			}
		}
	}

	return ScheduleStats{
		Earliest:   earliest.StartDisplay(),
		Latest:     latest.EndDisplay(),
		GapMinutes: gaps,
		Days:       len(byDay),
	}
}
