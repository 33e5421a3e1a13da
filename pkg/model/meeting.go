package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/limaJavier/schedulease/pkg/registration"
	"github.com/samber/lo"
)

// UnknownTime marks a meeting without a parsable start/end time.
const UnknownTime = -1

const tba = "TBA"

// Meeting is the normalized meeting pattern of a section. Start and End are
// minutes since midnight and are either both known or both UnknownTime.
type Meeting struct {
	Days     []string `json:"days"`
	Start    int      `json:"start_time_minutes"`
	End      int      `json:"end_time_minutes"`
	Schedule string   `json:"schedule"`
	Location string   `json:"location"`
}

// HasTime reports whether the meeting has a known time interval.
func (meeting Meeting) HasTime() bool {
	return meeting.Start != UnknownTime && meeting.End != UnknownTime
}

// StartDisplay and EndDisplay render the interval bounds as "H:MM AM/PM" ("TBA" when unknown).
func (meeting Meeting) StartDisplay() string {
	return displayMinutes(meeting.Start, meeting.HasTime())
}

func (meeting Meeting) EndDisplay() string {
	return displayMinutes(meeting.End, meeting.HasTime())
}

var dayCodes = []lo.Tuple2[string, func(*registration.RawMeetingTime) bool]{
	{A: "M", B: func(time *registration.RawMeetingTime) bool { return time.Monday }},
	{A: "T", B: func(time *registration.RawMeetingTime) bool { return time.Tuesday }},
	{A: "W", B: func(time *registration.RawMeetingTime) bool { return time.Wednesday }},
	{A: "R", B: func(time *registration.RawMeetingTime) bool { return time.Thursday }},
	{A: "F", B: func(time *registration.RawMeetingTime) bool { return time.Friday }},
	{A: "S", B: func(time *registration.RawMeetingTime) bool { return time.Saturday }},
	{A: "U", B: func(time *registration.RawMeetingTime) bool { return time.Sunday }},
}

// NormalizeMeeting builds the meeting descriptor from the first entry carrying
// meeting-time data; later patterns are ignored.
func NormalizeMeeting(meetings []registration.RawMeeting) Meeting {
	meeting := Meeting{
		Days:     []string{},
		Start:    UnknownTime,
		End:      UnknownTime,
		Schedule: tba,
		Location: tba,
	}

	raw, ok := lo.Find(meetings, func(meeting registration.RawMeeting) bool { return meeting.MeetingTime != nil })
	if !ok {
		return meeting
	}
	time := raw.MeetingTime

	//** Days
	for _, day := range dayCodes {
		if day.B(time) {
			meeting.Days = append(meeting.Days, day.A)
		}
	}

	//** Times (both or neither)
	start, startOk := parseMinutes(time.BeginTime)
	end, endOk := parseMinutes(time.EndTime)
	if startOk && endOk {
		meeting.Start, meeting.End = start, end
	}

	//** Display strings
	dayString := tba
	if len(meeting.Days) > 0 {
		dayString = strings.Join(meeting.Days, "")
	}
	timeString := tba
	if meeting.HasTime() {
		timeString = fmt.Sprintf("%v - %v", meeting.StartDisplay(), meeting.EndDisplay())
	}
	if dayString != tba || timeString != tba {
		meeting.Schedule = fmt.Sprintf("%v %v", dayString, timeString)
	}

	building := strings.TrimSpace(time.BuildingDescription)
	if building == "" {
		building = tba
	}
	meeting.Location = strings.TrimSpace(fmt.Sprintf("%v %v", building, strings.TrimSpace(time.Room)))

	return meeting
}

// parseMinutes converts a zero-padded "HHMM" string into minutes since midnight.
func parseMinutes(hhmm string) (int, bool) {
	if len(hhmm) != 4 {
		return UnknownTime, false
	}
	hour, err := strconv.Atoi(hhmm[:2])
	if err != nil || hour < 0 || hour > 23 {
		return UnknownTime, false
	}
	minute, err := strconv.Atoi(hhmm[2:])
	if err != nil || minute < 0 || minute > 59 {
		return UnknownTime, false
	}
	return hour*60 + minute, true
}

// FormatTime renders an "HHMM" string in 12-hour form, "TBA" when malformed.
func FormatTime(hhmm string) string {
	minutes, ok := parseMinutes(hhmm)
	return displayMinutes(minutes, ok)
}

func displayMinutes(minutes int, known bool) string {
	if !known {
		return tba
	}
	hour, minute := minutes/60, minutes%60
	switch {
	case hour == 0:
		return fmt.Sprintf("12:%02d AM", minute)
	case hour < 12:
		return fmt.Sprintf("%d:%02d AM", hour, minute)
	case hour == 12:
		return fmt.Sprintf("12:%02d PM", minute)
	default:
		return fmt.Sprintf("%d:%02d PM", hour-12, minute)
	}
}

// Conflicts reports whether two meetings share a day and overlap in time.
// Intervals are half-open, so back-to-back meetings do not conflict, and
// meetings without a known time never conflict.
func Conflicts(a, b Meeting) bool {
	if !a.HasTime() || !b.HasTime() {
		return false
	}
	if !lo.Some(a.Days, b.Days) {
		return false
	}
	return a.Start < b.End && b.Start < a.End
}
