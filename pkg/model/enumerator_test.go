package model

import (
	"context"
	"errors"
	"testing"

	"github.com/limaJavier/schedulease/pkg/registration"
	"github.com/stretchr/testify/assert"
)

func TestEnumerator(t *testing.T) {
	t.Run("Scenario: single lecture course", func(t *testing.T) {
		//** Arrange
		fetcher := newFakeFetcher()
		fetcher.sections["CS100"] = []registration.RawSection{
			rawSection("CS", "100", "10001", "001", "Lecture", "MW", "1000", "1050"),
		}
		enumerator := NewEnumerator(fetcher, DefaultEnumeratorConfig())

		//** Act
		result := enumerator.Enumerate(context.Background(), []string{"CS100"}, "202540")

		//** Assert
		assert.True(t, result.Success)
		assert.Equal(t, []string{"CS100"}, result.CoursesAnalyzed)
		assert.Equal(t, "202540", result.Term)
		assert.Equal(t, uint64(1), result.TotalPossibleCombinations)
		assert.Equal(t, 1, result.ValidSchedulesCount)
		assert.Equal(t, uint64(0), result.ConflictingCombinationsCount)

		schedule := result.ValidSchedules[0]
		assert.Equal(t, 1, schedule.ID)
		assert.Equal(t, "CS100", schedule.Courses[0].CourseCode)
		assert.Equal(t, "10001", schedule.Courses[0].Lecture.CRN)
		assert.Equal(t, "MW 10:00 AM - 10:50 AM", schedule.Courses[0].Lecture.Schedule)
		assert.Equal(t, "Science Hall 101", schedule.Courses[0].Lecture.Location)
		assert.Equal(t, []string{"Ada Lovelace"}, schedule.Courses[0].Lecture.Instructors)
		assert.Nil(t, schedule.Courses[0].Lab)
		assert.Nil(t, schedule.Courses[0].Discussion)
	})

	t.Run("Scenario: two lectures split four labs", func(t *testing.T) {
		fetcher := newFakeFetcher()
		fetcher.sections["CS200"] = []registration.RawSection{
			rawSection("CS", "200", "1", "001", "Lecture", "TR", "0900", "0950"),
			rawSection("CS", "200", "2", "002", "Lecture", "TR", "1100", "1150"),
			rawSection("CS", "200", "3", "021", "Laboratory", "F", "0900", "1050"),
			rawSection("CS", "200", "4", "022", "Laboratory", "F", "1100", "1250"),
			rawSection("CS", "200", "5", "023", "Laboratory", "M", "0900", "1050"),
			rawSection("CS", "200", "6", "024", "Laboratory", "M", "1100", "1250"),
		}
		enumerator := NewEnumerator(fetcher, DefaultEnumeratorConfig())

		result := enumerator.Enumerate(context.Background(), []string{"CS200"}, "202540")

		assert.True(t, result.Success)
		assert.Equal(t, uint64(4), result.TotalPossibleCombinations)
		assert.Equal(t, 4, result.ValidSchedulesCount)
		for _, schedule := range result.ValidSchedules {
			course := schedule.Courses[0]
			if course.Lecture.Section == "001" {
				assert.Contains(t, []string{"021", "022"}, course.Lab.Section)
			} else {
				assert.Contains(t, []string{"023", "024"}, course.Lab.Section)
			}
		}
	})

	t.Run("Scenario: labs overlap their lectures", func(t *testing.T) {
		fetcher := newFakeFetcher()
		fetcher.sections["CS200"] = []registration.RawSection{
			rawSection("CS", "200", "1", "001", "Lecture", "TR", "0900", "0950"),
			rawSection("CS", "200", "2", "002", "Lecture", "TR", "1100", "1150"),
			rawSection("CS", "200", "3", "021", "Laboratory", "T", "0930", "1020"),
			rawSection("CS", "200", "4", "022", "Laboratory", "R", "0900", "0950"),
			rawSection("CS", "200", "5", "023", "Laboratory", "T", "1100", "1150"),
			rawSection("CS", "200", "6", "024", "Laboratory", "R", "1130", "1220"),
		}
		enumerator := NewEnumerator(fetcher, DefaultEnumeratorConfig())

		result := enumerator.Enumerate(context.Background(), []string{"CS200"}, "202540")

		assert.True(t, result.Success)
		assert.Equal(t, uint64(4), result.TotalPossibleCombinations)
		assert.Equal(t, 0, result.ValidSchedulesCount)
		assert.Equal(t, uint64(4), result.ConflictingCombinationsCount)
		assert.Empty(t, result.ValidSchedules)
	})

	t.Run("Scenario: two courses on different days", func(t *testing.T) {
		fetcher := newFakeFetcher()
		fetcher.sections["CS100"] = []registration.RawSection{rawSection("CS", "100", "1", "001", "Lecture", "MW", "1000", "1050")}
		fetcher.sections["MATH200"] = []registration.RawSection{rawSection("MATH", "200", "2", "001", "Lecture", "TR", "1000", "1050")}
		enumerator := NewEnumerator(fetcher, DefaultEnumeratorConfig())

		result := enumerator.Enumerate(context.Background(), []string{"CS100", "MATH200"}, "202540")

		assert.True(t, result.Success)
		assert.Equal(t, uint64(1), result.TotalPossibleCombinations)
		assert.Equal(t, 1, result.ValidSchedulesCount)
		assert.Equal(t, "CS100", result.ValidSchedules[0].Courses[0].CourseCode)
		assert.Equal(t, "MATH200", result.ValidSchedules[0].Courses[1].CourseCode)
	})

	t.Run("Scenario: two courses overlapping on Monday", func(t *testing.T) {
		fetcher := newFakeFetcher()
		fetcher.sections["CS100"] = []registration.RawSection{rawSection("CS", "100", "1", "001", "Lecture", "M", "1000", "1050")}
		fetcher.sections["MATH200"] = []registration.RawSection{rawSection("MATH", "200", "2", "001", "Lecture", "M", "1030", "1120")}
		enumerator := NewEnumerator(fetcher, DefaultEnumeratorConfig())

		result := enumerator.Enumerate(context.Background(), []string{"CS100", "MATH200"}, "202540")

		assert.True(t, result.Success)
		assert.Equal(t, uint64(1), result.TotalPossibleCombinations)
		assert.Equal(t, 0, result.ValidSchedulesCount)
		assert.Equal(t, uint64(1), result.ConflictingCombinationsCount)
	})
}

func TestEnumeratorSectionIdentity(t *testing.T) {
	t.Run("Blank CRNs still conflict", func(t *testing.T) {
		//** Arrange
		fetcher := newFakeFetcher()
		fetcher.sections["CS100"] = []registration.RawSection{
			rawSection("CS", "100", "", "001", "Lecture", "M", "1000", "1050"),
			rawSection("CS", "100", "", "021", "Laboratory", "M", "1000", "1150"),
		}
		enumerator := NewEnumerator(fetcher, DefaultEnumeratorConfig())

		//** Act
		result := enumerator.Enumerate(context.Background(), []string{"CS100"}, "202540")

		//** Assert
		assert.True(t, result.Success)
		assert.Equal(t, 0, result.ValidSchedulesCount)
		assert.Equal(t, uint64(1), result.ConflictingCombinationsCount)
	})

	t.Run("Section returned for two requested codes", func(t *testing.T) {
		//** Arrange
		fetcher := newFakeFetcher()
		shared := []registration.RawSection{rawSection("CS", "100", "1", "001", "Lecture", "M", "1000", "1050")}
		fetcher.sections["CS10"] = shared
		fetcher.sections["CS100"] = shared
		enumerator := NewEnumerator(fetcher, DefaultEnumeratorConfig())

		//** Act
		result := enumerator.Enumerate(context.Background(), []string{"CS10", "CS100"}, "202540")

		//** Assert
		assert.True(t, result.Success)
		assert.Equal(t, 0, result.ValidSchedulesCount)
		assert.Equal(t, uint64(1), result.ConflictingCombinationsCount)
	})
}

func TestEnumeratorCountInvariant(t *testing.T) {
	//** Arrange
	fetcher := newFakeFetcher()
	fetcher.sections["CS100"] = []registration.RawSection{
		rawSection("CS", "100", "1", "001", "Lecture", "MWF", "0900", "0950"),
		rawSection("CS", "100", "2", "021", "Laboratory", "T", "0900", "1050"),
		rawSection("CS", "100", "3", "022", "Laboratory", "R", "1300", "1450"),
		rawSection("CS", "100", "4", "031", "Discussion", "F", "1000", "1050"),
	}
	fetcher.sections["MATH200"] = []registration.RawSection{
		rawSection("MATH", "200", "5", "001", "Lecture", "TR", "0930", "1045"),
		rawSection("MATH", "200", "6", "002", "Lecture", "MWF", "1000", "1050"),
	}
	enumerator := NewEnumerator(fetcher, DefaultEnumeratorConfig())

	//** Act
	result := enumerator.Enumerate(context.Background(), []string{"CS100", "MATH200"}, "202540")

	//** Assert
	assert.True(t, result.Success)
	// CS100: 1 x 2 labs x 1 discussion; MATH200: positional split gives 2
	assert.Equal(t, uint64(4), result.TotalPossibleCombinations)
	assert.Equal(t, result.TotalPossibleCombinations, uint64(result.ValidSchedulesCount)+result.ConflictingCombinationsCount)
	// Only lab 022 with MATH200 001 survives; lab 021 overlaps 001 and the discussion overlaps 002
	assert.Equal(t, 1, result.ValidSchedulesCount)
	assert.Equal(t, "022", result.ValidSchedules[0].Courses[0].Lab.Section)
	assert.Equal(t, "001", result.ValidSchedules[0].Courses[1].Lecture.Section)
	for i, schedule := range result.ValidSchedules {
		assert.Equal(t, i+1, schedule.ID)
	}
}

func TestEnumeratorFailures(t *testing.T) {
	t.Run("Malformed code is rejected before any fetch", func(t *testing.T) {
		fetcher := newFakeFetcher()
		enumerator := NewEnumerator(fetcher, DefaultEnumeratorConfig())

		result := enumerator.Enumerate(context.Background(), []string{"CS100", "cs-1"}, "202540")

		assert.False(t, result.Success)
		assert.Equal(t, []FailedCourse{{Course: "cs-1", Error: `invalid course code format: "cs-1"`}}, result.FailedCourses)
		assert.Empty(t, fetcher.calls)
	})

	t.Run("Fetch failure aborts the request", func(t *testing.T) {
		fetcher := newFakeFetcher()
		fetcher.sections["CS100"] = []registration.RawSection{rawSection("CS", "100", "1", "001", "Lecture", "M", "1000", "1050")}
		fetcher.errors["MATH200"] = errors.New("searchCourse failed with status code: 500")
		enumerator := NewEnumerator(fetcher, DefaultEnumeratorConfig())

		result := enumerator.Enumerate(context.Background(), []string{"CS100", "MATH200", "BIO300"}, "202540")

		assert.False(t, result.Success)
		assert.Equal(t, "failed to analyze courses: MATH200, BIO300", result.Error)
		assert.Equal(t, []FailedCourse{
			{Course: "MATH200", Error: "searchCourse failed with status code: 500"},
			{Course: "BIO300", Error: "no sections found for BIO300"},
		}, result.FailedCourses)
		assert.Empty(t, result.ValidSchedules)
	})

	t.Run("Course without lectures", func(t *testing.T) {
		fetcher := newFakeFetcher()
		fetcher.sections["CS100"] = []registration.RawSection{rawSection("CS", "100", "1", "021", "Laboratory", "M", "1000", "1050")}
		enumerator := NewEnumerator(fetcher, DefaultEnumeratorConfig())

		result := enumerator.Enumerate(context.Background(), []string{"CS100"}, "202540")

		assert.False(t, result.Success)
		assert.Equal(t, []FailedCourse{{Course: "CS100", Error: "no lecture sections found"}}, result.FailedCourses)
	})

	t.Run("Combination bound", func(t *testing.T) {
		fetcher := newFakeFetcher()
		fetcher.sections["CS100"] = []registration.RawSection{
			rawSection("CS", "100", "1", "001", "Lecture", "M", "1000", "1050"),
			rawSection("CS", "100", "2", "021", "Laboratory", "T", "1000", "1050"),
			rawSection("CS", "100", "3", "022", "Laboratory", "W", "1000", "1050"),
		}
		config := DefaultEnumeratorConfig()
		config.MaxCombinations = 1
		enumerator := NewEnumerator(fetcher, config)

		result := enumerator.Enumerate(context.Background(), []string{"CS100"}, "202540")

		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "too many combinations")
	})

	t.Run("Cancelled context", func(t *testing.T) {
		fetcher := newFakeFetcher()
		fetcher.sections["CS100"] = []registration.RawSection{rawSection("CS", "100", "1", "001", "Lecture", "M", "1000", "1050")}
		enumerator := NewEnumerator(fetcher, DefaultEnumeratorConfig())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result := enumerator.Enumerate(ctx, []string{"CS100"}, "202540")

		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "cancelled")
	})

	t.Run("Empty request", func(t *testing.T) {
		result := NewEnumerator(newFakeFetcher(), DefaultEnumeratorConfig()).Enumerate(context.Background(), nil, "202540")

		assert.False(t, result.Success)
		assert.Equal(t, "no courses provided", result.Error)
	})
}

func TestEnumeratorFetchesOncePerCourse(t *testing.T) {
	//** Arrange
	fetcher := newFakeFetcher()
	fetcher.sections["CS100"] = []registration.RawSection{rawSection("CS", "100", "1", "001", "Lecture", "M", "1000", "1050")}
	fetcher.sections["MATH200"] = []registration.RawSection{rawSection("MATH", "200", "2", "001", "Lecture", "T", "1000", "1050")}
	enumerator := NewEnumerator(fetcher, DefaultEnumeratorConfig())

	//** Act
	result := enumerator.Enumerate(context.Background(), []string{"CS100", "MATH200", "CS100"}, "202540")

	//** Assert
	assert.True(t, result.Success)
	assert.Equal(t, []string{"CS100", "MATH200"}, result.CoursesAnalyzed)
	assert.Equal(t, 1, fetcher.calls["CS100"])
	assert.Equal(t, 1, fetcher.calls["MATH200"])
	assert.Equal(t, 1, fetcher.resets)
}

func TestAnalyzeCourse(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.sections["CS100"] = []registration.RawSection{
		rawSection("CS", "100", "1", "001", "Lecture", "M", "1000", "1050"),
		rawSection("CS", "100", "2", "021", "Laboratory", "T", "1000", "1050"),
	}
	enumerator := NewEnumerator(fetcher, DefaultEnumeratorConfig())

	t.Run("Linked course", func(t *testing.T) {
		course, err := enumerator.AnalyzeCourse(context.Background(), "CS100", "202540")

		assert.Nil(t, err)
		assert.Equal(t, SingleLecture, course.Strategy)
		assert.Len(t, course.Lectures, 1)
		assert.Len(t, course.Labs, 1)
		assert.Empty(t, course.Discussions)
		assert.Equal(t, 1, course.Diagnostics.DedicatedPairs)
	})

	t.Run("Unknown course", func(t *testing.T) {
		_, err := enumerator.AnalyzeCourse(context.Background(), "BIO300", "202540")

		assert.ErrorIs(t, err, registration.ErrNoSections)
		assert.ErrorAs(t, err, &CourseError{})
	})
}
