package myglob

import (
	"fmt"
	"regexp"
)

// SegmentKind tags the variant held by a Segment
type SegmentKind int

const (
	// SegmentConstant is a literal path component
	SegmentConstant SegmentKind = iota
	// SegmentRecurse matches zero or more directory levels
	SegmentRecurse
	// SegmentFilter matches a single entry name against a compiled pattern
	SegmentFilter
)

// String returns the name of the segment kind
func (k SegmentKind) String() string {
	switch k {
	case SegmentConstant:
		return "Constant"
	case SegmentRecurse:
		return "Recurse"
	case SegmentFilter:
		return "Filter"
	default:
		return "Unknown"
	}
}

// Segment is one compiled path component.
// Name is set for constants, Pattern for filters.
type Segment struct {
	Kind    SegmentKind
	Name    string
	Pattern *regexp.Regexp
}

// matchEverything is the regular expression behind a trailing filter
const matchEverything = `(?i)^.*$`

func constantSegment(name string) Segment {
	return Segment{Kind: SegmentConstant, Name: name}
}

func recurseSegment() Segment {
	return Segment{Kind: SegmentRecurse}
}

func filterSegment(re *regexp.Regexp) Segment {
	return Segment{Kind: SegmentFilter, Pattern: re}
}

func matchEverythingSegment() Segment {
	return filterSegment(regexp.MustCompile(matchEverything))
}

// Matches reports whether a filter segment accepts name.
// Constant segments compare exactly; Recurse accepts nothing.
func (s Segment) Matches(name string) bool {
	switch s.Kind {
	case SegmentFilter:
		return s.Pattern.MatchString(name)
	case SegmentConstant:
		return s.Name == name
	default:
		return false
	}
}

// Equal reports structural equality; filters compare by source expression
func (s Segment) Equal(other Segment) bool {
	if s.Kind != other.Kind {
		return false
	}
	switch s.Kind {
	case SegmentConstant:
		return s.Name == other.Name
	case SegmentFilter:
		return s.Pattern.String() == other.Pattern.String()
	default:
		return true
	}
}

func (s Segment) String() string {
	switch s.Kind {
	case SegmentConstant:
		return fmt.Sprintf("Constant(%s)", s.Name)
	case SegmentRecurse:
		return "Recurse"
	case SegmentFilter:
		return fmt.Sprintf("Filter(%s)", s.Pattern.String())
	default:
		return "Unknown"
	}
}
