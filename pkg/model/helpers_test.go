package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/limaJavier/schedulease/pkg/registration"
)

// meetingOn builds a timed meeting; days is a string of day codes ("MW").
func meetingOn(days string, start, end int) Meeting {
	return Meeting{
		Days:     strings.Split(days, ""),
		Start:    start,
		End:      end,
		Schedule: days,
		Location: tba,
	}
}

func section(crn, number string, role Role, meeting Meeting) Section {
	return Section{
		CRN:         crn,
		CourseCode:  "CS100",
		Number:      number,
		Role:        role,
		Instructors: []string{"TBA"},
		Meeting:     meeting,
	}
}

// rawSection builds a Banner-shaped section; days like "TR", times like "0900".
func rawSection(subject, number, crn, sequence, scheduleType, days, begin, end string) registration.RawSection {
	meetingTime := &registration.RawMeetingTime{
		Monday:              strings.Contains(days, "M"),
		Tuesday:             strings.Contains(days, "T"),
		Wednesday:           strings.Contains(days, "W"),
		Thursday:            strings.Contains(days, "R"),
		Friday:              strings.Contains(days, "F"),
		BeginTime:           begin,
		EndTime:             end,
		BuildingDescription: "Science Hall",
		Room:                "101",
	}
	return registration.RawSection{
		Subject:                 subject,
		CourseNumber:            number,
		CourseTitle:             fmt.Sprintf("%v %v", subject, number),
		CourseReferenceNumber:   crn,
		SequenceNumber:          sequence,
		ScheduleTypeDescription: scheduleType,
		Faculty:                 []registration.RawFaculty{{DisplayName: "Ada Lovelace"}},
		MeetingsFaculty:         []registration.RawMeeting{{MeetingTime: meetingTime}},
	}
}

type fakeFetcher struct {
	sections map[string][]registration.RawSection
	errors   map[string]error
	calls    map[string]int
	resets   int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		sections: make(map[string][]registration.RawSection),
		errors:   make(map[string]error),
		calls:    make(map[string]int),
	}
}

func (fetcher *fakeFetcher) FetchSections(_ context.Context, courseCode, _ string) ([]registration.RawSection, error) {
	fetcher.calls[courseCode]++
	if err, ok := fetcher.errors[courseCode]; ok {
		return nil, err
	}
	sections, ok := fetcher.sections[courseCode]
	if !ok {
		return nil, registration.ErrNoSections
	}
	return sections, nil
}

func (fetcher *fakeFetcher) Reset() {
	fetcher.resets++
}
