package myglob

import (
	"context"
	"fmt"
	"iter"
	"sort"
	"strings"

	"github.com/FrenchBear/myglob/pkg/filesystem"
	"github.com/rs/zerolog"
)

// DefaultIgnoreDirs are never descended into unless the caller clears them
var DefaultIgnoreDirs = []string{"$recycle.bin", "system volume information", ".git"}

// Builder collects compilation options for a pattern
type Builder struct {
	pattern     string
	ignoreDirs  []string
	autorecurse bool
	fs          filesystem.FS
	logger      *zerolog.Logger
}

// New starts a builder for pattern with the default ignore list
func New(pattern string) *Builder {
	return &Builder{
		pattern:    pattern,
		ignoreDirs: append([]string(nil), DefaultIgnoreDirs...),
	}
}

// Build compiles pattern with default options and no autorecurse
func Build(pattern string) (*Search, error) {
	return New(pattern).Compile()
}

// AddIgnoreDir adds a directory name to skip; comparison ignores case
func (b *Builder) AddIgnoreDir(name string) *Builder {
	b.ignoreDirs = append(b.ignoreDirs, name)
	return b
}

// ClearIgnoreDirs drops every ignored name, defaults included
func (b *Builder) ClearIgnoreDirs() *Builder {
	b.ignoreDirs = nil
	return b
}

// Autorecurse enables the implicit recursion rewrite
func (b *Builder) Autorecurse(on bool) *Builder {
	b.autorecurse = on
	return b
}

// WithFS sets the filesystem searched; the OS filesystem is the default
func (b *Builder) WithFS(fsys filesystem.FS) *Builder {
	b.fs = fsys
	return b
}

// WithLogger sets the logger compile and traversal events go to. Without
// it the engine logs nothing.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = &logger
	return b
}

// Compile validates the pattern and freezes the options into a Search
func (b *Builder) Compile() (*Search, error) {
	logger := zerolog.Nop()
	if b.logger != nil {
		logger = *b.logger
	}
	fsys := b.fs
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	if err := checkPattern(b.pattern); err != nil {
		logger.Debug().Err(err).Str("pattern", b.pattern).Msg("Rejected glob pattern")
		return nil, err
	}

	root, rest := splitRoot(b.pattern)
	root = hostRoot(root)
	var segments []Segment
	if rest != "" {
		var err error
		segments, err = compileSegments(b.pattern, rest)
		if err != nil {
			logger.Debug().Err(err).Str("pattern", b.pattern).Msg("Glob compilation failed")
			return nil, err
		}
	}

	if b.autorecurse {
		segments = applyAutorecurse(fsys, root, segments)
	}

	ignore := make(map[string]struct{}, len(b.ignoreDirs))
	for _, name := range b.ignoreDirs {
		ignore[strings.ToLower(name)] = struct{}{}
	}

	s := &Search{
		root:       root,
		segments:   segments,
		ignoreDirs: ignore,
		fs:         fsys,
		logger:     logger,
	}
	logger.Debug().
		Str("pattern", b.pattern).
		Bool("autorecurse", b.autorecurse).
		Stringer("search", s).
		Msg("Glob compiled")
	return s, nil
}

// Search is a compiled pattern. It is read-only once built and may be
// shared between goroutines, each driving its own Explorer.
type Search struct {
	root       string
	segments   []Segment
	ignoreDirs map[string]struct{}
	fs         filesystem.FS
	logger     zerolog.Logger
}

// Root returns the wildcard-free directory the walk starts from
func (s *Search) Root() string {
	return s.root
}

// Segments returns a copy of the compiled segments
func (s *Search) Segments() []Segment {
	return append([]Segment(nil), s.segments...)
}

// IgnoreDirs returns the lowercase ignored names, sorted
func (s *Search) IgnoreDirs() []string {
	names := make([]string, 0, len(s.ignoreDirs))
	for name := range s.ignoreDirs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsConstant reports whether the pattern had no wildcard at all
func (s *Search) IsConstant() bool {
	return len(s.segments) == 0
}

func (s *Search) isIgnored(name string) bool {
	_, ok := s.ignoreDirs[strings.ToLower(name)]
	return ok
}

// All returns the matches of a fresh traversal as an iterator
func (s *Search) All() iter.Seq[Match] {
	return func(yield func(Match) bool) {
		e := s.Explore()
		for {
			m, ok := e.Next()
			if !ok || !yield(m) {
				return
			}
		}
	}
}

// Collect drains a fresh traversal, checking ctx between steps
func (s *Search) Collect(ctx context.Context) ([]Match, error) {
	var matches []Match
	e := s.Explore()
	for {
		if err := ctx.Err(); err != nil {
			return matches, err
		}
		m, ok := e.Next()
		if !ok {
			return matches, nil
		}
		matches = append(matches, m)
	}
}

func (s *Search) String() string {
	parts := make([]string, len(s.segments))
	for i, seg := range s.segments {
		parts[i] = seg.String()
	}
	return fmt.Sprintf("root=%q segments=[%s] ignore=[%s]",
		s.root, strings.Join(parts, ", "), strings.Join(s.IgnoreDirs(), ", "))
}
