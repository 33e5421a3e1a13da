package model

import (
	"strconv"
	"strings"
)

type Role string

const (
	Lecture    Role = "lecture"
	Lab        Role = "lab"
	Discussion Role = "discussion"
)

// Abbreviation is the short tag used in calendars and exports.
func (role Role) Abbreviation() string {
	switch role {
	case Lab:
		return "LAB"
	case Discussion:
		return "DIS"
	default:
		return "LEC"
	}
}

type Enrollment struct {
	Current   int `json:"current"`
	Maximum   int `json:"maximum"`
	Available int `json:"available"`
}

type Waitlist struct {
	Capacity  int `json:"capacity"`
	Count     int `json:"count"`
	Available int `json:"available"`
}

// Section is a classified, normalized section. It is never mutated once built.
type Section struct {
	CRN          string     `json:"crn"`
	CourseCode   string     `json:"course_code"`
	CourseTitle  string     `json:"course_title"`
	Number       string     `json:"section"`
	ScheduleType string     `json:"schedule_type"`
	Role         Role       `json:"categorized_type"`
	Enrollment   Enrollment `json:"enrollment"`
	Waitlist     Waitlist   `json:"waitlist"`
	Instructors  []string   `json:"instructors"`
	Meeting      Meeting    `json:"meeting"`
}

// NumericNumber interprets the section number as an integer; non-numeric numbers are 0.
func (section Section) NumericNumber() int {
	return sectionNumberValue(section.Number)
}

func sectionNumberValue(number string) int {
	value, err := strconv.Atoi(strings.TrimSpace(number))
	if err != nil {
		return 0
	}
	return value
}

// Combination is one selectable unit of a course: a lecture plus an optional lab and discussion.
type Combination struct {
	Lecture    Section  `json:"lecture"`
	Lab        *Section `json:"lab,omitempty"`
	Discussion *Section `json:"discussion,omitempty"`
}

// Sections flattens the combination as lecture, lab, discussion (absent parts skipped).
func (combination Combination) Sections() []Section {
	sections := []Section{combination.Lecture}
	if combination.Lab != nil {
		sections = append(sections, *combination.Lab)
	}
	if combination.Discussion != nil {
		sections = append(sections, *combination.Discussion)
	}
	return sections
}

type CourseLinkResult struct {
	CourseCode   string          `json:"course_code"`
	Combinations []Combination   `json:"combinations"`
	Lectures     []Section       `json:"lectures"`
	Labs         []Section       `json:"labs"`
	Discussions  []Section       `json:"discussions"`
	Strategy     LinkStrategy    `json:"strategy"`
	Diagnostics  LinkDiagnostics `json:"diagnostics"`
}
