package myglob

import (
	"io/fs"
	"path/filepath"

	"github.com/FrenchBear/myglob/pkg/errors"
)

// MatchKind tags the variant held by a Match
type MatchKind int

const (
	// MatchFile is a matching file
	MatchFile MatchKind = iota
	// MatchDir is a matching directory
	MatchDir
	// MatchError is a directory that could not be read
	MatchError
)

// String returns the name of the match kind
func (k MatchKind) String() string {
	switch k {
	case MatchFile:
		return "file"
	case MatchDir:
		return "dir"
	case MatchError:
		return "error"
	default:
		return "unknown"
	}
}

// Match is one result of a traversal. Err is set only for MatchError and
// wraps the underlying *fs.PathError; Path then names the unreadable
// directory.
type Match struct {
	Kind MatchKind
	Path string
	Err  error
}

type itemKind int

const (
	pendingFile itemKind = iota
	pendingDir
	pendingExpand
	pendingError
)

// workItem is one unit of deferred traversal state
type workItem struct {
	kind    itemKind
	path    string
	depth   int
	recurse bool
	err     error
}

// Explorer walks the filesystem for one Search. Each call to Next pops work
// items until one of them is a finished result. An Explorer must not be
// used from several goroutines at once.
type Explorer struct {
	search *Search
	stack  []workItem
}

// Explore starts a new traversal. Constant patterns are resolved here with
// a single Stat; every other pattern starts from the root directory.
func (s *Search) Explore() *Explorer {
	e := &Explorer{search: s}
	if s.IsConstant() {
		if info, err := s.fs.Stat(s.root); err == nil {
			if info.IsDir() {
				e.push(workItem{kind: pendingDir, path: s.root})
			} else {
				e.push(workItem{kind: pendingFile, path: s.root})
			}
		}
		return e
	}
	e.push(workItem{kind: pendingExpand, path: s.root})
	return e
}

// Next returns the next match, or false once the traversal is exhausted
func (e *Explorer) Next() (Match, bool) {
	for len(e.stack) > 0 {
		item := e.pop()
		switch item.kind {
		case pendingFile:
			return Match{Kind: MatchFile, Path: item.path}, true
		case pendingDir:
			return Match{Kind: MatchDir, Path: item.path}, true
		case pendingError:
			return Match{Kind: MatchError, Path: item.path, Err: item.err}, true
		case pendingExpand:
			e.expand(item)
		}
	}
	// release the backing array
	e.stack = nil
	return Match{}, false
}

func (e *Explorer) push(item workItem) {
	e.stack = append(e.stack, item)
}

func (e *Explorer) pop() workItem {
	n := len(e.stack) - 1
	item := e.stack[n]
	e.stack[n] = workItem{}
	e.stack = e.stack[:n]
	return item
}

func (e *Explorer) expand(item workItem) {
	s := e.search
	seg := s.segments[item.depth]
	last := item.depth == len(s.segments)-1

	s.logger.Trace().
		Str("path", item.path).
		Int("depth", item.depth).
		Bool("recurse", item.recurse).
		Stringer("segment", seg).
		Msg("Expanding")

	switch seg.Kind {
	case SegmentConstant:
		e.expandConstant(item, seg, last)
	case SegmentRecurse:
		e.push(workItem{kind: pendingExpand, path: item.path, depth: item.depth + 1, recurse: true})
	case SegmentFilter:
		e.expandFilter(item, seg, last)
	}
}

func (e *Explorer) expandConstant(item workItem, seg Segment, last bool) {
	s := e.search
	child := filepath.Join(item.path, seg.Name)
	if info, err := s.fs.Stat(child); err == nil {
		switch {
		case last && info.IsDir():
			e.push(workItem{kind: pendingDir, path: child})
		case last:
			e.push(workItem{kind: pendingFile, path: child})
		case info.IsDir():
			e.push(workItem{kind: pendingExpand, path: child, depth: item.depth + 1})
		}
	}

	if !item.recurse {
		return
	}
	entries, ok := e.readDir(item.path)
	if !ok {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() || s.isIgnored(entry.Name()) {
			continue
		}
		e.push(workItem{
			kind:    pendingExpand,
			path:    filepath.Join(item.path, entry.Name()),
			depth:   item.depth,
			recurse: true,
		})
	}
}

func (e *Explorer) expandFilter(item workItem, seg Segment, last bool) {
	s := e.search
	entries, ok := e.readDir(item.path)
	if !ok {
		return
	}

	var subdirs []string
	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(item.path, name)

		isDir, isLink := e.classify(full, entry)
		if !isDir {
			if last && seg.Pattern.MatchString(name) {
				e.push(workItem{kind: pendingFile, path: full})
			}
			continue
		}

		if s.isIgnored(name) {
			continue
		}
		if seg.Pattern.MatchString(name) {
			if last {
				e.push(workItem{kind: pendingDir, path: full})
			} else {
				e.push(workItem{kind: pendingExpand, path: full, depth: item.depth + 1})
			}
		}
		if item.recurse && !isLink {
			subdirs = append(subdirs, full)
		}
	}

	if !item.recurse {
		return
	}
	for _, dir := range subdirs {
		e.push(workItem{kind: pendingExpand, path: dir, depth: item.depth, recurse: true})
	}
}

// readDir lists path, turning a failure into a pending error item
func (e *Explorer) readDir(path string) ([]fs.DirEntry, bool) {
	entries, err := e.search.fs.ReadDir(path)
	if err != nil {
		e.search.logger.Debug().Err(err).Str("path", path).Msg("Cannot read directory")
		e.push(workItem{
			kind: pendingError,
			path: path,
			err: errors.Wrapf(err, errors.ErrDirRead, "cannot read directory %s", path).
				WithDetail("path", path),
		})
		return nil, false
	}
	return entries, true
}

// classify reports whether entry is a directory, following symbolic links.
// Linked directories match like directories but are not recursed into, so
// a link cycle cannot make a `**` walk endless. A dangling link is a file.
func (e *Explorer) classify(full string, entry fs.DirEntry) (isDir, isLink bool) {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir(), false
	}
	info, err := e.search.fs.Stat(full)
	if err != nil {
		return false, true
	}
	return info.IsDir(), true
}
