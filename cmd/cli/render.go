package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/limaJavier/schedulease/pkg/model"
	"github.com/limaJavier/schedulease/pkg/registration"
)

func printResult(out io.Writer, result model.EnumerationResult, limit int) {
	if !result.Success {
		fmt.Fprintf(out, "%s %s\n", boldRed("✗"), result.Error)
		for _, failed := range result.FailedCourses {
			fmt.Fprintf(out, "  %s  %s\n", boldYellow(failed.Course), failed.Error)
		}
		return
	}

	fmt.Fprintf(out, "%s %s for %s (term %s)\n",
		boldGreen("✓"),
		bold(fmt.Sprintf("%d valid schedules", result.ValidSchedulesCount)),
		strings.Join(result.CoursesAnalyzed, ", "),
		result.Term,
	)
	fmt.Fprintf(out, "  %s possible combinations, %s with conflicts\n",
		bold(result.TotalPossibleCombinations),
		red(result.ConflictingCombinationsCount),
	)

	for i, schedule := range result.ValidSchedules {
		if limit > 0 && i == limit {
			fmt.Fprintf(out, "%s\n", dim(fmt.Sprintf("... %d more (raise --limit or use --json)", len(result.ValidSchedules)-limit)))
			break
		}
		printSchedule(out, schedule)
	}
}

func printSchedule(out io.Writer, schedule model.Schedule) {
	fmt.Fprintf(out, "\n%s  %s\n", boldCyan(fmt.Sprintf("Schedule %d", schedule.ID)), dim(fmt.Sprintf(
		"%v-%v, %d days, %d idle minutes", schedule.Stats.Earliest, schedule.Stats.Latest, schedule.Stats.Days, schedule.Stats.GapMinutes,
	)))
	for _, course := range schedule.Courses {
		fmt.Fprintf(out, "  %s\n", bold(course.CourseCode))
		for _, section := range course.Sections() {
			fmt.Fprintf(out, "    %-4s %s  %-8s %-28s %s  %s\n",
				section.Role.Abbreviation(),
				cyan(section.CRN),
				section.Section,
				section.Schedule,
				section.Location,
				dim(strings.Join(section.Instructors, ", ")),
			)
		}
	}
}

func printCourse(out io.Writer, course model.CourseLinkResult) {
	fmt.Fprintf(out, "%s  %s\n", boldCyan(course.CourseCode), dim(string(course.Strategy)))
	fmt.Fprintf(out, "  %d lectures, %d labs, %d discussions -> %s combinations\n",
		len(course.Lectures), len(course.Labs), len(course.Discussions), bold(len(course.Combinations)))

	diagnostics := course.Diagnostics
	fmt.Fprintf(out, "  linked lectures %d, dedicated pairs %d, shared components %d\n",
		diagnostics.LinkedLectures, diagnostics.DedicatedPairs, diagnostics.SharedComponents)
	if diagnostics.UnlinkedLabs+diagnostics.UnlinkedDiscussions > 0 {
		fmt.Fprintf(out, "  %s\n", yellow(fmt.Sprintf("%d labs and %d discussions were not linked to any lecture",
			diagnostics.UnlinkedLabs, diagnostics.UnlinkedDiscussions)))
	}

	for _, combination := range course.Combinations {
		parts := []string{}
		for _, section := range combination.Sections() {
			parts = append(parts, fmt.Sprintf("%v %v (%v)", section.Role.Abbreviation(), section.Number, section.Meeting.Schedule))
		}
		fmt.Fprintf(out, "    %s\n", strings.Join(parts, " + "))
	}
}

func printSuggestions(out io.Writer, suggestions []registration.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintf(out, "%s\n", yellow("No matching courses"))
		return
	}
	for _, suggestion := range suggestions {
		fmt.Fprintf(out, "  %-10s %s\n", bold(suggestion.Code), suggestion.Description)
	}
}
