package model

import (
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// LinkDiagnostics summarizes how well the linked combinations cover a course's sections.
type LinkDiagnostics struct {
	LinkedLectures      int `json:"linked_lectures"`
	UnlinkedLabs        int `json:"unlinked_labs"`
	UnlinkedDiscussions int `json:"unlinked_discussions"`
	// Components (labs or discussions) paired with more than one lecture
	SharedComponents int `json:"shared_components"`
	// Size of the largest matching giving lectures pairwise distinct components
	DedicatedPairs int `json:"dedicated_pairs"`
}

// DiagnoseLinks inspects the combinations produced for the given sections.
func DiagnoseLinks(combinations []Combination, lectures, labs, discussions []Section) (LinkDiagnostics, error) {
	components := append(append([]Section{}, labs...), discussions...)
	lectureIndex := indexByCRN(lectures)
	componentIndex := indexByCRN(components)

	// Build lecture-component relationships out of the combinations
	relationships := make(map[[2]int]bool)
	for _, combination := range combinations {
		lecture, ok := lectureIndex[combination.Lecture.CRN]
		if !ok {
			continue
		}
		for _, component := range combination.Sections()[1:] {
			if index, ok := componentIndex[component.CRN]; ok {
				relationships[[2]int{lecture, index}] = true
			}
		}
	}

	diagnostics := LinkDiagnostics{}

	linkedLectures := make(map[int]bool)
	lecturesPerComponent := make(map[int]int)
	for pair := range relationships {
		linkedLectures[pair[0]] = true
		lecturesPerComponent[pair[1]]++
	}
	diagnostics.LinkedLectures = len(linkedLectures)
	diagnostics.SharedComponents = len(lo.PickBy(lecturesPerComponent, func(_ int, count int) bool { return count > 1 }))
	for index := range components {
		if lecturesPerComponent[index] > 0 {
			continue
		}
		if index < len(labs) {
			diagnostics.UnlinkedLabs++
		} else {
			diagnostics.UnlinkedDiscussions++
		}
	}

	if len(lectures) == 0 || len(components) == 0 {
		return diagnostics, nil
	}

	neighbors := func(lectureAny any, componentAny any) (bool, error) {
		return relationships[[2]int{lectureAny.(int), componentAny.(int)}], nil
	}

	lecturesAny := lo.Times(len(lectures), func(i int) any { return i })
	componentsAny := lo.Times(len(components), func(i int) any { return i })

	graph, err := bipartitegraph.NewBipartiteGraph(lecturesAny, componentsAny, neighbors)
	if err != nil {
		return diagnostics, err
	}
	diagnostics.DedicatedPairs = len(graph.LargestMatching())

	return diagnostics, nil
}

func indexByCRN(sections []Section) map[string]int {
	index := make(map[string]int, len(sections))
	for i, section := range sections {
		index[section.CRN] = i
	}
	return index
}
