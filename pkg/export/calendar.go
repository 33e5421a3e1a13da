package export

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/limaJavier/schedulease/pkg/model"
	"github.com/samber/lo"
)

const productId = "-//schedulease//schedule export//EN"

const localTimestampFormat = "20060102T150405"

// Offsets of each day code from Monday, with the matching BYDAY value
var weekdays = map[string]lo.Tuple2[int, string]{
	"M": {A: 0, B: "MO"},
	"T": {A: 1, B: "TU"},
	"W": {A: 2, B: "WE"},
	"R": {A: 3, B: "TH"},
	"F": {A: 4, B: "FR"},
	"S": {A: 5, B: "SA"},
	"U": {A: 6, B: "SU"},
}

type CalendarOptions struct {
	// The first week starts on the Monday strictly after Reference
	Reference time.Time
	Weeks     int
	Location  *time.Location
}

type CalendarReport struct {
	Events int
	// CRNs of the sections left out because their meeting time is unknown
	Skipped []string
}

// Calendar renders a schedule as an iCalendar document with one weekly
// recurring event per section and meeting day.
func Calendar(schedule model.Schedule, options CalendarOptions) (string, CalendarReport, error) {
	if options.Weeks <= 0 {
		return "", CalendarReport{}, fmt.Errorf("weeks must be positive: %v", options.Weeks)
	}
	if options.Location == nil {
		options.Location = time.Local
	}

	calendar := ics.NewCalendar()
	calendar.SetMethod(ics.MethodPublish)
	calendar.SetProductId(productId)
	calendar.SetXWRCalName(fmt.Sprintf("Schedule %d", schedule.ID))
	calendar.SetXWRTimezone(options.Location.String())

	monday := firstMonday(options.Reference.In(options.Location))
	stamp := time.Now().UTC()
	report := CalendarReport{Skipped: []string{}}

	for _, course := range schedule.Courses {
		for _, section := range course.Sections() {
			if !section.Meeting.HasTime() || len(section.Meeting.Days) == 0 {
				report.Skipped = append(report.Skipped, section.CRN)
				continue
			}

			for _, day := range section.Meeting.Days {
				weekday, ok := weekdays[day]
				if !ok {
					continue
				}
				date := monday.AddDate(0, 0, weekday.A)
				start := date.Add(time.Duration(section.Meeting.Start) * time.Minute)
				end := date.Add(time.Duration(section.Meeting.End) * time.Minute)

				event := calendar.AddEvent(fmt.Sprintf("%v@schedulease", uuid.NewString()))
				event.SetDtStampTime(stamp)
				event.SetProperty(ics.ComponentPropertyDtStart, start.Format(localTimestampFormat), tzid(options.Location))
				event.SetProperty(ics.ComponentPropertyDtEnd, end.Format(localTimestampFormat), tzid(options.Location))
				event.SetProperty(ics.ComponentPropertyRrule, fmt.Sprintf("FREQ=WEEKLY;COUNT=%d;BYDAY=%v", options.Weeks, weekday.B))
				event.SetSummary(fmt.Sprintf("%v %v (CRN %v)", course.CourseCode, section.Role.Abbreviation(), section.CRN))
				event.SetLocation(section.Location)
				event.SetDescription(fmt.Sprintf("Section %v\n%v\n%v", section.Section, section.Schedule, strings.Join(section.Instructors, ", ")))
				report.Events++
			}
		}
	}

	return calendar.Serialize(), report, nil
}

func firstMonday(reference time.Time) time.Time {
	midnight := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, reference.Location())
	days := (int(time.Monday) - int(midnight.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return midnight.AddDate(0, 0, days)
}

func tzid(location *time.Location) ics.PropertyParameter {
	return &ics.KeyValues{Key: string(ics.ParameterTzid), Value: []string{location.String()}}
}
