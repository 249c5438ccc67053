// Package algorithm holds the sorting routines the benchmark can measure.
// Every routine sorts a []int64 in place into non-decreasing order.
package algorithm

import (
	"errors"
	"fmt"
)

// ErrUnknownAlgorithm is returned by Parse for unrecognised names.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Kind identifies one of the supported sorting routines.
type Kind int

const (
	Bubble Kind = iota
	Selection
	Insertion
	Merge
	Quick
	Heap
)

var names = [...]string{
	Bubble:    "bubble",
	Selection: "selection",
	Insertion: "insertion",
	Merge:     "merge",
	Quick:     "quick",
	Heap:      "heap",
}

var routines = [...]func([]int64){
	Bubble:    bubbleSort,
	Selection: selectionSort,
	Insertion: insertionSort,
	Merge:     mergeSort,
	Quick:     quickSort,
	Heap:      heapSort,
}

// Names returns the recognised algorithm names in registry order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names[:])

	return out
}

// Parse resolves an algorithm name.
func Parse(name string) (Kind, error) {
	for k, n := range names {
		if n == name {
			return Kind(k), nil
		}
	}

	return 0, fmt.Errorf("%w %q", ErrUnknownAlgorithm, name)
}

func (k Kind) valid() bool {
	return k >= 0 && int(k) < len(names)
}

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return names[k]
}

// Quadratic reports whether the routine has no sub-quadratic shortcut on
// arbitrary input. The benchmark skips large fixtures for these.
func (k Kind) Quadratic() bool {
	switch k {
	case Bubble, Selection, Insertion:
		return true
	default:
		return false
	}
}

// Sort sorts v in place using the routine identified by k.
func (k Kind) Sort(v []int64) {
	if !k.valid() {
		panic(fmt.Sprintf("algorithm: invalid kind %d", int(k)))
	}

	routines[k](v)
}
