// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// PageRange is an inclusive, 1-based slice of a document's pages.
type PageRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Valid reports whether the range lies within a document of total pages:
// 1 <= Start <= End <= total.
func (r PageRange) Valid(total int) bool {
	return r.Start >= 1 && r.Start <= r.End && r.End <= total
}

// Len returns the number of pages covered by a valid range.
func (r PageRange) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// Pages expands the range into its page numbers in ascending order.
func (r PageRange) Pages() []int {
	pages := make([]int, 0, r.Len())
	for p := r.Start; p <= r.End; p++ {
		pages = append(pages, p)
	}
	return pages
}

func (r PageRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}
