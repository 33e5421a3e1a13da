package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier(t *testing.T) {
	classifier := NewClassifier(DefaultClassifierConfig())

	t.Run("Description rules", func(t *testing.T) {
		assert.Equal(t, Lecture, classifier.Classify("21", "Lecture"))
		assert.Equal(t, Lab, classifier.Classify("001", "Lecture/Lab"))
		assert.Equal(t, Lab, classifier.Classify("001", "Laboratory"))
		assert.Equal(t, Discussion, classifier.Classify("001", "Discussion"))
		assert.Equal(t, Discussion, classifier.Classify("001", "Disc Section"))
	})

	t.Run("Numeric fallback", func(t *testing.T) {
		cases := map[string]Role{
			"001": Lecture,
			"9":   Lecture,
			"010": Lecture,
			"15":  Lecture,
			"16":  Discussion,
			"19":  Discussion,
			"20":  Lab,
			"024": Lab,
			"25":  Discussion,
			"29":  Discussion,
			"30":  Discussion,
			"101": Discussion,
			"0":   Lecture,
			"-3":  Lecture,
			"A1":  Lecture,
			"":    Lecture,
		}
		for number, expected := range cases {
			assert.Equal(t, expected, classifier.Classify(number, "Other"), number)
		}
	})

	t.Run("Total and deterministic", func(t *testing.T) {
		roles := []Role{Lecture, Lab, Discussion}
		numbers := []string{"", "0", "1", "12", "17", "22", "27", "99", "x", " 21 "}
		descriptions := []string{"", "Lecture", "LAB", "discussion", "Seminar", "Independent Study"}
		for _, number := range numbers {
			for _, description := range descriptions {
				role := classifier.Classify(number, description)
				assert.Contains(t, roles, role)
				assert.Equal(t, role, classifier.Classify(number, description))
			}
		}
	})

	t.Run("Custom bands", func(t *testing.T) {
		custom := NewClassifier(ClassifierConfig{
			Bands:   []Band{{From: 1, To: 5, Role: Lecture}, {From: 50, To: 59, Role: Lab}},
			Default: Discussion,
		})

		assert.Equal(t, Lecture, custom.Classify("3", ""))
		assert.Equal(t, Lab, custom.Classify("55", ""))
		assert.Equal(t, Discussion, custom.Classify("20", ""))
	})
}

func TestSectionNumericNumber(t *testing.T) {
	assert.Equal(t, 21, Section{Number: "021"}.NumericNumber())
	assert.Equal(t, 3, Section{Number: " 3 "}.NumericNumber())
	assert.Equal(t, 0, Section{Number: "H01"}.NumericNumber())
}
