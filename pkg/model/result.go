package model

// EnumerationResult is the report of one multi-course request.
type EnumerationResult struct {
	Success                      bool           `json:"success"`
	CoursesAnalyzed              []string       `json:"courses_analyzed"`
	Term                         string         `json:"term"`
	TotalPossibleCombinations    uint64         `json:"total_possible_combinations"`
	ValidSchedulesCount          int            `json:"valid_schedules_count"`
	ConflictingCombinationsCount uint64         `json:"conflicting_combinations_count"`
	ValidSchedules               []Schedule     `json:"valid_schedules"`
	FailedCourses                []FailedCourse `json:"failed_courses,omitempty"`
	Error                        string         `json:"error,omitempty"`
}

type FailedCourse struct {
	Course string `json:"course"`
	Error  string `json:"error"`
}

type Schedule struct {
	ID      int              `json:"schedule_id"`
	Courses []CourseSchedule `json:"courses"`
	Stats   ScheduleStats    `json:"stats"`
}

type CourseSchedule struct {
	CourseCode string          `json:"course_code"`
	Lecture    SectionSummary  `json:"lecture"`
	Lab        *SectionSummary `json:"lab,omitempty"`
	Discussion *SectionSummary `json:"discussion,omitempty"`
}

// Sections returns the scheduled sections of the course with their roles, lecture first.
func (course CourseSchedule) Sections() []SectionSummary {
	sections := []SectionSummary{course.Lecture}
	if course.Lab != nil {
		sections = append(sections, *course.Lab)
	}
	if course.Discussion != nil {
		sections = append(sections, *course.Discussion)
	}
	return sections
}

type SectionSummary struct {
	CRN         string   `json:"crn"`
	Section     string   `json:"section"`
	Role        Role     `json:"role"`
	Schedule    string   `json:"schedule"`
	Location    string   `json:"location"`
	Instructors []string `json:"instructors"`
	// Structured meeting, kept for exports
	Meeting Meeting `json:"meeting"`
}

func summarize(section Section) SectionSummary {
	return SectionSummary{
		CRN:         section.CRN,
		Section:     section.Number,
		Role:        section.Role,
		Schedule:    section.Meeting.Schedule,
		Location:    section.Meeting.Location,
		Instructors: section.Instructors,
		Meeting:     section.Meeting,
	}
}

func newSchedule(id int, candidate Candidate) Schedule {
	courses := make([]CourseSchedule, 0, len(candidate))
	for _, combination := range candidate {
		course := CourseSchedule{
			CourseCode: combination.Lecture.CourseCode,
			Lecture:    summarize(combination.Lecture),
		}
		if combination.Lab != nil {
			lab := summarize(*combination.Lab)
			course.Lab = &lab
		}
		if combination.Discussion != nil {
			discussion := summarize(*combination.Discussion)
			course.Discussion = &discussion
		}
		courses = append(courses, course)
	}

	schedule := Schedule{ID: id, Courses: courses}
	schedule.Stats = ComputeStats(schedule)
	return schedule
}

func failure(courseCodes []string, term, message string, failed []FailedCourse) EnumerationResult {
	return EnumerationResult{
		Success:         false,
		CoursesAnalyzed: courseCodes,
		Term:            term,
		ValidSchedules:  []Schedule{},
		FailedCourses:   failed,
		Error:           message,
	}
}
