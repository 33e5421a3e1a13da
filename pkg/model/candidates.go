package model

import "iter"

// Candidate picks one combination per requested course, in request order.
type Candidate []Combination

// Candidates lazily walks the cross product of the courses' combinations.
// The returned total is the size of the cross product before any filtering.
func Candidates(courses []CourseLinkResult) (iter.Seq[Candidate], uint64, error) {
	radices := make([]int, len(courses))
	for i, course := range courses {
		radices[i] = len(course.Combinations)
	}

	indexer, err := newCandidateIndexer(radices)
	if err != nil {
		return nil, 0, err
	}

	sequence := func(yield func(Candidate) bool) {
		for index := range indexer.Total() {
			choices := indexer.Choices(index)
			candidate := make(Candidate, len(courses))
			for course, choice := range choices {
				candidate[course] = courses[course].Combinations[choice]
			}
			if !yield(candidate) {
				return
			}
		}
	}

	return sequence, indexer.Total(), nil
}
