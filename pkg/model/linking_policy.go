package model

import "github.com/samber/lo"

// LinkingPolicy decides whether a lab or discussion belongs to a lecture.
type LinkingPolicy interface {
	Linked(lecture, candidate Section) bool
}

type NumericLinkingConfig struct {
	// Section numbers at most MaxDistance apart are linked
	MaxDistance int `mapstructure:"max_distance" json:"max_distance"`
	// Exact distances that link regardless of MaxDistance
	Offsets []int `mapstructure:"offsets" json:"offsets"`
	// Numbers in the same group of this width are linked (0 disables)
	GroupWidth int `mapstructure:"group_width" json:"group_width"`
}

func DefaultNumericLinkingConfig() NumericLinkingConfig {
	return NumericLinkingConfig{
		MaxDistance: 3,
		Offsets:     []int{10, 20, 30, 100, 200},
		GroupWidth:  10,
	}
}

type numericLinkingPolicy struct {
	config NumericLinkingConfig
}

func NewNumericLinkingPolicy(config NumericLinkingConfig) LinkingPolicy {
	return &numericLinkingPolicy{config: config}
}

func (policy *numericLinkingPolicy) Linked(lecture, candidate Section) bool {
	lectureNumber, candidateNumber := lecture.NumericNumber(), candidate.NumericNumber()
	if lectureNumber == 0 || candidateNumber == 0 {
		return false
	}

	distance := candidateNumber - lectureNumber
	if distance < 0 {
		distance = -distance
	}

	switch {
	case distance <= policy.config.MaxDistance:
		return true
	case lo.Contains(policy.config.Offsets, distance):
		return true
	case policy.config.GroupWidth > 0 && lectureNumber/policy.config.GroupWidth == candidateNumber/policy.config.GroupWidth:
		return true
	}
	return false
}
