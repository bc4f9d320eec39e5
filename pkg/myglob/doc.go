// Package myglob compiles glob patterns and walks directory trees with them.
//
// A pattern is compiled once into a Search: a constant root directory plus an
// ordered list of segments, one per path component after the root. A Search
// is immutable and can start any number of independent traversals.
//
// # Pattern Syntax
//
//   - `*` matches zero or more characters, `?` exactly one
//   - `{a,b,c}` matches any of the alternatives; braces nest
//   - `[abc]`, `[a-z]`, `[!abc]` match one character of a class; a `]`
//     right after `[` or `[!` is a literal
//   - `**` alone between separators descends into every subdirectory
//   - Both `/` and `\` separate path components
//
// Matching is case-insensitive. Components without wildcards are resolved
// by asking the filesystem whether the joined path exists.
//
// # Traversal
//
// Explore returns an Explorer that yields one Match per call to Next. The
// walk is driven by an explicit stack, so arbitrarily deep trees never grow
// the call stack, and a directory that cannot be read produces a MatchError
// item instead of stopping the walk:
//
//	s, err := myglob.New(`src/**/*.go`).AddIgnoreDir("vendor").Compile()
//	if err != nil {
//	    return err
//	}
//	for m := range s.All() {
//	    switch m.Kind {
//	    case myglob.MatchFile:
//	        fmt.Println(m.Path)
//	    case myglob.MatchError:
//	        fmt.Fprintln(os.Stderr, m.Err)
//	    }
//	}
//
// Results come in no particular order.
package myglob
