package model

import (
	"strings"

	"github.com/samber/lo"
)

// Classifier assigns a role to a section from its number and schedule-type description.
type Classifier interface {
	Classify(sectionNumber, scheduleType string) Role
}

// Band maps an inclusive range of numeric section numbers to a role.
type Band struct {
	From int  `mapstructure:"from" json:"from"`
	To   int  `mapstructure:"to" json:"to"`
	Role Role `mapstructure:"role" json:"role"`
}

type ClassifierConfig struct {
	Bands []Band `mapstructure:"bands" json:"bands"`
	// Role for positive numbers outside every band
	Default Role `mapstructure:"default" json:"default"`
}

func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		Bands: []Band{
			{From: 1, To: 9, Role: Lecture},
			{From: 10, To: 15, Role: Lecture},
			{From: 16, To: 19, Role: Discussion},
			{From: 20, To: 24, Role: Lab},
			{From: 25, To: 29, Role: Discussion},
		},
		Default: Discussion,
	}
}

type bandClassifier struct {
	config ClassifierConfig
}

func NewClassifier(config ClassifierConfig) Classifier {
	if config.Default == "" {
		config.Default = Discussion
	}
	return &bandClassifier{config: config}
}

func (classifier *bandClassifier) Classify(sectionNumber, scheduleType string) Role {
	description := strings.ToLower(scheduleType)

	//** Description rules
	switch {
	case strings.Contains(description, "lecture") && !strings.Contains(description, "lab"):
		return Lecture
	case strings.Contains(description, "lab"):
		return Lab
	case strings.Contains(description, "discussion") || strings.Contains(description, "disc"):
		return Discussion
	}

	//** Numeric fallback
	value := sectionNumberValue(sectionNumber)
	if value <= 0 {
		return Lecture
	}
	band, ok := lo.Find(classifier.config.Bands, func(band Band) bool {
		return band.From <= value && value <= band.To
	})
	if ok {
		return band.Role
	}
	return classifier.config.Default
}
