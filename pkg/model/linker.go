package model

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// LinkStrategy tags the rule a Linker used to pair components with lectures.
type LinkStrategy string

const (
	NoLecture       LinkStrategy = "no_lecture"
	SingleLecture   LinkStrategy = "single_lecture"
	PositionalSplit LinkStrategy = "positional_split"
	NumericPattern  LinkStrategy = "numeric_pattern"
	EvenSplit       LinkStrategy = "even_split"
)

// Linker infers which labs and discussions belong to which lecture and emits
// the resulting combinations.
type Linker interface {
	Link(lectures, labs, discussions []Section) ([]Combination, LinkStrategy)
}

type sectionLinker struct {
	policy LinkingPolicy
}

func NewLinker(policy LinkingPolicy) Linker {
	return &sectionLinker{policy: policy}
}

func (linker *sectionLinker) Link(lectures, labs, discussions []Section) ([]Combination, LinkStrategy) {
	switch len(lectures) {
	case 0:
		return []Combination{}, NoLecture
	case 1:
		return crossProduct(lectures[0], labs, discussions), SingleLecture
	case 2:
		return linker.positionalSplit(lectures, labs, discussions), PositionalSplit
	}

	if combinations, ok := linker.numericPattern(lectures, labs, discussions); ok {
		return combinations, NumericPattern
	}
	return evenSplit(lectures, labs, discussions), EvenSplit
}

// positionalSplit gives the lower-numbered lecture the first half (rounded down)
// of the sorted labs and discussions and the other lecture the rest.
func (linker *sectionLinker) positionalSplit(lectures, labs, discussions []Section) []Combination {
	lectures, labs, discussions = sortedByNumber(lectures), sortedByNumber(labs), sortedByNumber(discussions)
	halfLabs, halfDiscussions := len(labs)/2, len(discussions)/2

	combinations := crossProduct(lectures[0], labs[:halfLabs], discussions[:halfDiscussions])
	return append(combinations, crossProduct(lectures[1], labs[halfLabs:], discussions[halfDiscussions:])...)
}

// numericPattern links by policy. It fails when components exist but no
// lecture got any of them.
func (linker *sectionLinker) numericPattern(lectures, labs, discussions []Section) ([]Combination, bool) {
	lectures, labs, discussions = sortedByNumber(lectures), sortedByNumber(labs), sortedByNumber(discussions)

	combinations := []Combination{}
	links := 0
	for _, lecture := range lectures {
		linked := func(candidate Section, _ int) bool { return linker.policy.Linked(lecture, candidate) }
		linkedLabs := lo.Filter(labs, linked)
		linkedDiscussions := lo.Filter(discussions, linked)
		links += len(linkedLabs) + len(linkedDiscussions)

		combinations = append(combinations, crossProduct(lecture, linkedLabs, linkedDiscussions)...)
	}

	if links == 0 && len(labs)+len(discussions) > 0 {
		return nil, false
	}
	return combinations, true
}

// evenSplit hands out contiguous slices of the components in their original order.
func evenSplit(lectures, labs, discussions []Section) []Combination {
	labQuota := quota(len(labs), len(lectures))
	discussionQuota := quota(len(discussions), len(lectures))

	combinations := []Combination{}
	for i, lecture := range lectures {
		combinations = append(combinations, crossProduct(
			lecture,
			window(labs, i*labQuota, labQuota),
			window(discussions, i*discussionQuota, discussionQuota),
		)...)
	}
	return combinations
}

func quota(components, lectures int) int {
	if components == 0 {
		return 0
	}
	return max(1, components/lectures)
}

func window(sections []Section, start, size int) []Section {
	if start >= len(sections) {
		return nil
	}
	return sections[start:min(start+size, len(sections))]
}

// crossProduct pairs the lecture with every lab (or none) and every discussion (or none).
func crossProduct(lecture Section, labs, discussions []Section) []Combination {
	labOptions := optional(labs)
	discussionOptions := optional(discussions)

	combinations := make([]Combination, 0, len(labOptions)*len(discussionOptions))
	for _, lab := range labOptions {
		for _, discussion := range discussionOptions {
			combinations = append(combinations, Combination{Lecture: lecture, Lab: lab, Discussion: discussion})
		}
	}
	return combinations
}

func optional(sections []Section) []*Section {
	if len(sections) == 0 {
		return []*Section{nil}
	}
	return lo.Map(sections, func(section Section, i int) *Section { return &sections[i] })
}

func sortedByNumber(sections []Section) []Section {
	sorted := slices.Clone(sections)
	slices.SortStableFunc(sorted, func(a, b Section) int { return cmp.Compare(a.NumericNumber(), b.NumericNumber()) })
	return sorted
}
