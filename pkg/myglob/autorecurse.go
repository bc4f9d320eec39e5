package myglob

import "github.com/FrenchBear/myglob/pkg/filesystem"

// applyAutorecurse rewrites segments so that a bare directory or a trailing
// filter without explicit `**` searches recursively. Lists that already
// recurse are returned unchanged.
func applyAutorecurse(fsys filesystem.FS, root string, segments []Segment) []Segment {
	if len(segments) == 0 {
		if filesystem.IsDir(fsys, root) {
			return []Segment{recurseSegment(), matchEverythingSegment()}
		}
		return segments
	}

	for _, seg := range segments {
		if seg.Kind == SegmentRecurse {
			return segments
		}
	}

	last := len(segments) - 1
	if segments[last].Kind != SegmentFilter {
		return segments
	}

	out := make([]Segment, 0, len(segments)+1)
	out = append(out, segments[:last]...)
	out = append(out, recurseSegment(), segments[last])
	return out
}
