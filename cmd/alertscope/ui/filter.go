package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// errBadFilterInput is returned when filter input is not "field expression".
var errBadFilterInput = errors.New(`filter input must be "field expression", e.g. "nAlerts 1000-"`)

// RangeFilter restricts a numeric column to an inclusive range. Either bound
// may be open.
type RangeFilter struct {
	Min *float64
	Max *float64
}

// Match reports whether v falls inside the range.
func (f RangeFilter) Match(v float64) bool {
	if f.Min != nil && v < *f.Min {
		return false
	}
	if f.Max != nil && v > *f.Max {
		return false
	}
	return true
}

// ParseRangeFilter parses a filter expression:
//
//	"10-20"  between 10 and 20
//	"10-"    at least 10
//	"-20"    at most 20
//	"15"     exactly 15
//
// Negative bounds are not supported; the dash is the range separator.
func ParseRangeFilter(expr string) (RangeFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return RangeFilter{}, fmt.Errorf("empty filter expression")
	}

	dash := strings.Index(expr, "-")
	if dash < 0 {
		v, err := strconv.ParseFloat(expr, 64)
		if err != nil {
			return RangeFilter{}, fmt.Errorf("invalid filter %q: %w", expr, err)
		}
		return RangeFilter{Min: &v, Max: &v}, nil
	}

	var f RangeFilter
	if lo := strings.TrimSpace(expr[:dash]); lo != "" {
		v, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return RangeFilter{}, fmt.Errorf("invalid lower bound in %q: %w", expr, err)
		}
		f.Min = &v
	}
	if hi := strings.TrimSpace(expr[dash+1:]); hi != "" {
		v, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			return RangeFilter{}, fmt.Errorf("invalid upper bound in %q: %w", expr, err)
		}
		f.Max = &v
	}
	if f.Min == nil && f.Max == nil {
		return RangeFilter{}, fmt.Errorf("filter %q has no bounds", expr)
	}
	if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
		return RangeFilter{}, fmt.Errorf("filter %q: lower bound above upper", expr)
	}
	return f, nil
}
