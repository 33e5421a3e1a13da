package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/limaJavier/schedulease/pkg/registration"
	"github.com/samber/lo"
)

var ErrNoLectures = errors.New("no lecture sections found")

// Analyzer turns the raw listing of one course into classified, linked combinations.
type Analyzer interface {
	Analyze(courseCode string, rawSections []registration.RawSection) (CourseLinkResult, error)
}

type courseAnalyzer struct {
	classifier Classifier
	linker     Linker
}

func NewAnalyzer(classifier Classifier, linker Linker) Analyzer {
	return &courseAnalyzer{
		classifier: classifier,
		linker:     linker,
	}
}

func (analyzer *courseAnalyzer) Analyze(courseCode string, rawSections []registration.RawSection) (CourseLinkResult, error) {
	if len(rawSections) == 0 {
		return CourseLinkResult{}, registration.ErrNoSections
	}

	sections := lo.Map(rawSections, func(raw registration.RawSection, _ int) Section {
		return analyzer.section(raw)
	})
	grouped := lo.GroupBy(sections, func(section Section) Role { return section.Role })
	lectures, labs, discussions := grouped[Lecture], grouped[Lab], grouped[Discussion]

	if len(lectures) == 0 {
		return CourseLinkResult{}, ErrNoLectures
	}

	combinations, strategy := analyzer.linker.Link(lectures, labs, discussions)

	diagnostics, err := DiagnoseLinks(combinations, lectures, labs, discussions)
	if err != nil {
		return CourseLinkResult{}, fmt.Errorf("cannot diagnose links: %w", err)
	}

	return CourseLinkResult{
		CourseCode:   courseCode,
		Combinations: combinations,
		Lectures:     lectures,
		Labs:         lo.Ternary(labs == nil, []Section{}, labs),
		Discussions:  lo.Ternary(discussions == nil, []Section{}, discussions),
		Strategy:     strategy,
		Diagnostics:  diagnostics,
	}, nil
}

func (analyzer *courseAnalyzer) section(raw registration.RawSection) Section {
	scheduleType := strings.TrimSpace(raw.ScheduleTypeDescription)
	if scheduleType == "" {
		scheduleType = "Unknown"
	}

	return Section{
		CRN:          raw.CourseReferenceNumber,
		CourseCode:   raw.CourseCode(),
		CourseTitle:  raw.CourseTitle,
		Number:       raw.SequenceNumber,
		ScheduleType: scheduleType,
		Role:         analyzer.classifier.Classify(raw.SequenceNumber, raw.ScheduleTypeDescription),
		Enrollment: Enrollment{
			Current:   raw.Enrollment,
			Maximum:   raw.MaximumEnrollment,
			Available: raw.SeatsAvailable,
		},
		Waitlist: Waitlist{
			Capacity:  raw.WaitCapacity,
			Count:     raw.WaitCount,
			Available: raw.WaitAvailable,
		},
		Instructors: raw.Instructors(),
		Meeting:     NormalizeMeeting(raw.MeetingsFaculty),
	}
}
