package model

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/limaJavier/schedulease/pkg/registration"
	"github.com/samber/lo"
)

const DefaultMaxCombinations = 1_000_000

// Enumerator produces every conflict-free schedule for a set of courses.
type Enumerator interface {
	// Enumerate never fails with an error; every failure is reported inside the result
	Enumerate(ctx context.Context, courseCodes []string, term string) EnumerationResult
	// AnalyzeCourse fetches and links a single course
	AnalyzeCourse(ctx context.Context, courseCode, term string) (CourseLinkResult, error)
}

type EnumeratorConfig struct {
	Classifier Classifier
	Policy     LinkingPolicy
	// Upper bound on the cross-product size (0 disables it)
	MaxCombinations uint64
}

func DefaultEnumeratorConfig() EnumeratorConfig {
	return EnumeratorConfig{
		Classifier:      NewClassifier(DefaultClassifierConfig()),
		Policy:          NewNumericLinkingPolicy(DefaultNumericLinkingConfig()),
		MaxCombinations: DefaultMaxCombinations,
	}
}

type scheduleEnumerator struct {
	fetcher         registration.Fetcher
	analyzer        Analyzer
	maxCombinations uint64
}

func NewEnumerator(fetcher registration.Fetcher, config EnumeratorConfig) Enumerator {
	defaults := DefaultEnumeratorConfig()
	if config.Classifier == nil {
		config.Classifier = defaults.Classifier
	}
	if config.Policy == nil {
		config.Policy = defaults.Policy
	}

	return &scheduleEnumerator{
		fetcher:         fetcher,
		analyzer:        NewAnalyzer(config.Classifier, NewLinker(config.Policy)),
		maxCombinations: config.MaxCombinations,
	}
}

func (enumerator *scheduleEnumerator) AnalyzeCourse(ctx context.Context, courseCode, term string) (CourseLinkResult, error) {
	if err := ValidateCourseCode(courseCode); err != nil {
		return CourseLinkResult{}, err
	}
	if resetter, ok := enumerator.fetcher.(registration.Resetter); ok {
		resetter.Reset()
	}
	course, err := enumerator.analyze(ctx, courseCode, term)
	if err != nil {
		return CourseLinkResult{}, CourseError{CourseCode: courseCode, Err: err}
	}
	return course, nil
}

func (enumerator *scheduleEnumerator) Enumerate(ctx context.Context, courseCodes []string, term string) EnumerationResult {
	if len(courseCodes) == 0 {
		return failure(courseCodes, term, "no courses provided", nil)
	}

	//** Validate every code before any fetch
	invalid := []FailedCourse{}
	for _, courseCode := range courseCodes {
		if err := ValidateCourseCode(courseCode); err != nil {
			invalid = append(invalid, FailedCourse{Course: courseCode, Error: err.Error()})
		}
	}
	if len(invalid) > 0 {
		return failure(courseCodes, term, "invalid course codes provided", invalid)
	}

	//** Fetch and link each distinct course once
	courseCodes = lo.Uniq(courseCodes)
	if resetter, ok := enumerator.fetcher.(registration.Resetter); ok {
		resetter.Reset()
	}

	analyzed := make(map[string]CourseLinkResult)
	failed := []FailedCourse{}
	for _, courseCode := range courseCodes {
		if err := ctx.Err(); err != nil {
			return failure(courseCodes, term, fmt.Sprintf("enumeration cancelled: %v", err), nil)
		}

		course, err := enumerator.analyze(ctx, courseCode, term)
		if err != nil {
			failed = append(failed, FailedCourse{Course: courseCode, Error: err.Error()})
			continue
		}
		analyzed[courseCode] = course
	}
	if len(failed) > 0 {
		names := lo.Map(failed, func(course FailedCourse, _ int) string { return course.Course })
		return failure(courseCodes, term, fmt.Sprintf("failed to analyze courses: %v", strings.Join(names, ", ")), failed)
	}

	courses := lo.Map(courseCodes, func(courseCode string, _ int) CourseLinkResult { return analyzed[courseCode] })

	//** Enumerate and filter
	candidates, total, err := Candidates(courses)
	if err != nil {
		return failure(courseCodes, term, err.Error(), nil)
	}
	if enumerator.maxCombinations > 0 && total > enumerator.maxCombinations {
		return failure(courseCodes, term, fmt.Sprintf("%v: %d exceeds the limit of %d", ErrTooManyCombinations, total, enumerator.maxCombinations), nil)
	}

	evaluator := newConflictEvaluator(courses)
	schedules := []Schedule{}
	for candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return failure(courseCodes, term, fmt.Sprintf("enumeration cancelled: %v", err), nil)
		}
		if evaluator.Conflicting(candidate) {
			continue
		}
		schedules = append(schedules, newSchedule(len(schedules)+1, candidate))
	}

	return EnumerationResult{
		Success:                      true,
		CoursesAnalyzed:              courseCodes,
		Term:                         term,
		TotalPossibleCombinations:    total,
		ValidSchedulesCount:          len(schedules),
		ConflictingCombinationsCount: total - uint64(len(schedules)),
		ValidSchedules:               schedules,
	}
}

func (enumerator *scheduleEnumerator) analyze(ctx context.Context, courseCode, term string) (CourseLinkResult, error) {
	rawSections, err := enumerator.fetcher.FetchSections(ctx, courseCode, term)
	if errors.Is(err, registration.ErrNoSections) {
		return CourseLinkResult{}, fmt.Errorf("%w for %v", registration.ErrNoSections, courseCode)
	}
	if err != nil {
		return CourseLinkResult{}, err
	}
	return enumerator.analyzer.Analyze(courseCode, rawSections)
}
