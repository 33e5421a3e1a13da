package model

import (
	"errors"
	"math/bits"
)

var ErrTooManyCombinations = errors.New("too many combinations")

// candidateIndexer gives a unique index to a choice of one combination per course and vice versa
type candidateIndexer interface {
	// Returns the number of distinct choices
	Total() uint64
	// Returns a unique index to a choice (choices[i] is the combination picked for course i)
	Index(choices []int) uint64
	// Returns the choice identified by index
	Choices(index uint64) []int
}

// newCandidateIndexer builds a mixed-radix indexer whose first course varies slowest,
// so increasing indices follow the nested-loop order of the courses.
func newCandidateIndexer(radices []int) (candidateIndexer, error) {
	total := uint64(1)
	for _, radix := range radices {
		high, low := bits.Mul64(total, uint64(radix))
		if high != 0 {
			return nil, ErrTooManyCombinations
		}
		total = low
	}
	if len(radices) == 0 {
		total = 0
	}

	return &mixedRadixIndexer{
		radices: radices,
		total:   total,
	}, nil
}

type mixedRadixIndexer struct {
	radices []int
	total   uint64
}

func (indexer *mixedRadixIndexer) Total() uint64 {
	return indexer.total
}

func (indexer *mixedRadixIndexer) Index(choices []int) uint64 {
	index := uint64(0)
	for i, choice := range choices {
		index = index*uint64(indexer.radices[i]) + uint64(choice)
	}
	return index
}

func (indexer *mixedRadixIndexer) Choices(index uint64) []int {
	choices := make([]int, len(indexer.radices))
	for i := len(indexer.radices) - 1; i >= 0; i-- {
		radix := uint64(indexer.radices[i])
		choices[i] = int(index % radix)
		index = index / radix
	}
	return choices
}
