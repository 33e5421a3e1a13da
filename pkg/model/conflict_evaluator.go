package model

import "strings"

// conflictEvaluator answers pairwise meeting-conflict queries over the sections of one request
type conflictEvaluator interface {
	// Checks whether any two sections of the candidate meet at overlapping times
	Conflicting(candidate Candidate) bool
}

// sectionKey identifies a section by everything the conflict check reads,
// so sections sharing a blank or repeated CRN still get distinct ids.
type sectionKey struct {
	courseCode string
	crn        string
	number     string
	role       Role
	days       string
	start      int
	end        int
}

type matrixConflictEvaluator struct {
	ids       map[sectionKey]int
	conflicts [][]bool // Conflict matrix indexed by section id
}

func newConflictEvaluator(courses []CourseLinkResult) conflictEvaluator {
	evaluator := matrixConflictEvaluator{
		ids: make(map[sectionKey]int),
	}

	// Give every distinct section an id
	meetings := []Meeting{}
	for _, course := range courses {
		for _, combination := range course.Combinations {
			for _, section := range combination.Sections() {
				key := keyOf(section)
				if _, ok := evaluator.ids[key]; ok {
					continue
				}
				evaluator.ids[key] = len(meetings)
				meetings = append(meetings, section.Meeting)
			}
		}
	}

	evaluator.conflicts = make([][]bool, len(meetings))
	for i := range meetings {
		evaluator.conflicts[i] = make([]bool, len(meetings))
	}
	for i := range meetings {
		// A timed section picked twice (e.g. returned for two requested codes) clashes with itself
		evaluator.conflicts[i][i] = Conflicts(meetings[i], meetings[i])
		for j := i + 1; j < len(meetings); j++ {
			conflict := Conflicts(meetings[i], meetings[j])
			evaluator.conflicts[i][j], evaluator.conflicts[j][i] = conflict, conflict
		}
	}

	return &evaluator
}

func (evaluator *matrixConflictEvaluator) Conflicting(candidate Candidate) bool {
	sections := make([]Section, 0, len(candidate)*3)
	for _, combination := range candidate {
		sections = append(sections, combination.Sections()...)
	}

	for i := range sections {
		for j := i + 1; j < len(sections); j++ {
			if evaluator.conflict(sections[i], sections[j]) {
				return true
			}
		}
	}
	return false
}

func (evaluator *matrixConflictEvaluator) conflict(a, b Section) bool {
	idA, okA := evaluator.ids[keyOf(a)]
	idB, okB := evaluator.ids[keyOf(b)]
	if !okA || !okB {
		return Conflicts(a.Meeting, b.Meeting)
	}
	return evaluator.conflicts[idA][idB]
}

func keyOf(section Section) sectionKey {
	return sectionKey{
		courseCode: section.CourseCode,
		crn:        section.CRN,
		number:     section.Number,
		role:       section.Role,
		days:       strings.Join(section.Meeting.Days, ""),
		start:      section.Meeting.Start,
		end:        section.Meeting.End,
	}
}
