package registration

import (
	"strings"

	"github.com/samber/lo"
)

// RawSection mirrors one item of the registration system's search results.
type RawSection struct {
	Subject                 string       `json:"subject"`
	CourseNumber            string       `json:"courseNumber"`
	CourseTitle             string       `json:"courseTitle"`
	CourseReferenceNumber   string       `json:"courseReferenceNumber"`
	SequenceNumber          string       `json:"sequenceNumber"`
	ScheduleTypeDescription string       `json:"scheduleTypeDescription"`
	Enrollment              int          `json:"enrollment"`
	MaximumEnrollment       int          `json:"maximumEnrollment"`
	SeatsAvailable          int          `json:"seatsAvailable"`
	WaitCapacity            int          `json:"waitCapacity"`
	WaitCount               int          `json:"waitCount"`
	WaitAvailable           int          `json:"waitAvailable"`
	Faculty                 []RawFaculty `json:"faculty"`
	MeetingsFaculty         []RawMeeting `json:"meetingsFaculty"`
}

type RawFaculty struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"emailAddress"`
	Primary     bool   `json:"primaryIndicator"`
}

type RawMeeting struct {
	MeetingTime *RawMeetingTime `json:"meetingTime"`
}

// RawMeetingTime holds the per-day flags and the HHMM begin/end strings of a meeting pattern.
type RawMeetingTime struct {
	Monday              bool   `json:"monday"`
	Tuesday             bool   `json:"tuesday"`
	Wednesday           bool   `json:"wednesday"`
	Thursday            bool   `json:"thursday"`
	Friday              bool   `json:"friday"`
	Saturday            bool   `json:"saturday"`
	Sunday              bool   `json:"sunday"`
	BeginTime           string `json:"beginTime"`
	EndTime             string `json:"endTime"`
	BuildingDescription string `json:"buildingDescription"`
	Room                string `json:"room"`
}

// CourseCode joins subject and course number (e.g. "CS" + "010C").
func (section RawSection) CourseCode() string {
	return section.Subject + section.CourseNumber
}

// Instructors returns the faculty display names, "TBA" standing in for blank ones.
func (section RawSection) Instructors() []string {
	return lo.Map(section.Faculty, func(faculty RawFaculty, _ int) string {
		name := strings.TrimSpace(faculty.DisplayName)
		if name == "" {
			return "TBA"
		}
		return name
	})
}
