package model

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var courseCodePattern = regexp.MustCompile(`^[A-Z]+[0-9]+[A-Z]*$`)

// ValidateCourseCode checks the subject letters, catalog digits, optional suffix shape.
func ValidateCourseCode(courseCode string) error {
	if !courseCodePattern.MatchString(courseCode) {
		return InputError{CourseCode: courseCode}
	}
	return nil
}

// NormalizeCourseCode removes whitespace and upper-cases ("cs 2500" -> "CS2500").
func NormalizeCourseCode(courseCode string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, courseCode))
}

type InputError struct {
	CourseCode string
}

func (err InputError) Error() string {
	return fmt.Sprintf("invalid course code format: %q", err.CourseCode)
}

// CourseError reports why a single course could not be analyzed.
type CourseError struct {
	CourseCode string
	Err        error
}

func (err CourseError) Error() string {
	return fmt.Sprintf("%v: %v", err.CourseCode, err.Err)
}

func (err CourseError) Unwrap() error {
	return err.Err
}
