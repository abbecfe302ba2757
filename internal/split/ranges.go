// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package split

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/pdftask/pkg/types"
)

// ParseRange parses "start-end" or a single page "n" (meaning n-n).
// Bounds are not checked against any document; SplitFile does that.
func ParseRange(s string) (types.PageRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return types.PageRange{}, fmt.Errorf("empty page range")
	}

	startText, endText, isPair := strings.Cut(s, "-")
	start, err := strconv.Atoi(strings.TrimSpace(startText))
	if err != nil {
		return types.PageRange{}, fmt.Errorf("invalid page range %q: bad start page", s)
	}
	if !isPair {
		return types.PageRange{Start: start, End: start}, nil
	}
	end, err := strconv.Atoi(strings.TrimSpace(endText))
	if err != nil {
		return types.PageRange{}, fmt.Errorf("invalid page range %q: bad end page", s)
	}
	return types.PageRange{Start: start, End: end}, nil
}

// ParseRanges parses a comma-separated list such as "1-3,5,7-9".
func ParseRanges(s string) ([]types.PageRange, error) {
	var ranges []types.PageRange
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		r, err := ParseRange(part)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}
