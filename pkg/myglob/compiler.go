package myglob

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/FrenchBear/myglob/pkg/errors"
)

// sentinel closes the last component so it is handled like the others
const sentinel = '/'

func isSeparator(c rune) bool {
	return c == '/' || c == '\\'
}

func isGlobMeta(c rune) bool {
	switch c {
	case '*', '?', '[', '{':
		return true
	}
	return false
}

// checkPattern rejects patterns that can never be compiled
func checkPattern(pattern string) error {
	if pattern == "" {
		return errors.New(errors.ErrEmptyPattern, "glob pattern can't be empty")
	}
	last := rune(pattern[len(pattern)-1])
	if isSeparator(last) && !isBareRoot(pattern) {
		return errors.New(errors.ErrTrailingSeparator, "glob pattern can't end with a path separator").
			WithDetail("pattern", pattern)
	}
	return nil
}

// isBareRoot accepts "/", "\" and drive roots such as "C:\"
func isBareRoot(pattern string) bool {
	if strings.TrimLeft(pattern, `/\`) == "" {
		return true
	}
	return len(pattern) == 3 && pattern[1] == ':' && isSeparator(rune(pattern[2])) &&
		unicode.IsLetter(rune(pattern[0]))
}

// splitRoot separates the wildcard-free prefix from the rest of the pattern.
// rest is empty when the pattern contains no wildcard at all.
func splitRoot(pattern string) (root, rest string) {
	meta := strings.IndexFunc(pattern, isGlobMeta)
	if meta < 0 {
		return pattern, ""
	}

	sep := strings.LastIndexFunc(pattern[:meta], isSeparator)
	switch {
	case sep < 0:
		return ".", pattern
	case sep == 0:
		return pattern[:1], pattern[1:]
	case pattern[sep-1] == ':':
		// keep the separator of a drive root
		return pattern[:sep+1], pattern[sep+1:]
	default:
		return pattern[:sep], pattern[sep+1:]
	}
}

// hostRoot rewrites both separator styles of a root into the host's, so a
// root reaches Stat and ReadDir in the form components are split on
func hostRoot(root string) string {
	return filepath.FromSlash(strings.ReplaceAll(root, `\`, "/"))
}

// compiler holds the state of one left-to-right pass over a pattern
type compiler struct {
	pattern string
	offset  int // runes of the root prefix, for error positions
	runes   []rune
	pos     int

	segments []Segment

	expr       strings.Builder // regular expression of the current component
	raw        strings.Builder // literal text of the current component
	hasMeta    bool
	doubleStar bool
	braceDepth int
}

// compileSegments turns the part of a pattern after its root into segments
func compileSegments(pattern, rest string) ([]Segment, error) {
	c := &compiler{
		pattern: pattern,
		offset:  len([]rune(pattern)) - len([]rune(rest)),
		runes:   append([]rune(rest), sentinel),
	}
	if err := c.run(); err != nil {
		return nil, err
	}

	if n := len(c.segments); n > 0 && c.segments[n-1].Kind == SegmentRecurse {
		c.segments = append(c.segments, matchEverythingSegment())
	}
	return c.segments, nil
}

func (c *compiler) run() error {
	for c.pos = 0; c.pos < len(c.runes); c.pos++ {
		r := c.runes[c.pos]
		switch {
		case isSeparator(r):
			if err := c.endComponent(); err != nil {
				return err
			}

		case r == '*':
			if c.raw.Len() > 0 && strings.HasSuffix(c.raw.String(), "*") {
				c.doubleStar = true
			}
			c.raw.WriteRune(r)
			c.expr.WriteString(".*")
			c.hasMeta = true

		case r == '?':
			c.raw.WriteRune(r)
			c.expr.WriteString(".")
			c.hasMeta = true

		case r == '{':
			c.braceDepth++
			c.raw.WriteRune(r)
			c.expr.WriteString("(")
			c.hasMeta = true

		case r == '}':
			if c.braceDepth == 0 {
				return c.syntaxError("Extra closing brace")
			}
			c.braceDepth--
			c.raw.WriteRune(r)
			c.expr.WriteString(")")

		case r == ',' && c.braceDepth > 0:
			c.raw.WriteRune(r)
			c.expr.WriteString("|")

		case r == '[':
			if err := c.bracket(); err != nil {
				return err
			}

		default:
			c.raw.WriteRune(r)
			c.expr.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return nil
}

// bracket copies a bracket expression into the regular expression
func (c *compiler) bracket() error {
	start := c.pos
	last := len(c.runes) - 1
	j := c.pos + 1

	c.hasMeta = true
	c.expr.WriteString("[")
	if j < last && c.runes[j] == '!' {
		c.expr.WriteString("^")
		j++
	}
	if j < last && c.runes[j] == ']' {
		c.expr.WriteString(`\]`)
		j++
	}

	for ; j < last; j++ {
		r := c.runes[j]
		switch {
		case r == ']':
			c.expr.WriteString("]")
			c.raw.WriteString(string(c.runes[start : j+1]))
			c.pos = j
			return nil

		case r == '\\':
			if j+1 >= last {
				return c.syntaxErrorAt("Unclosed bracket", start)
			}
			j++
			c.expr.WriteString(escapeClassRune(c.runes[j]))

		case r == '/':
			return c.syntaxErrorAt("Unclosed bracket", start)

		case r == '[' && j+1 < last && c.runes[j+1] == ':':
			end := indexFrom(c.runes, j+2, ":]")
			if end < 0 || end >= last {
				c.expr.WriteString(`\[`)
				continue
			}
			c.expr.WriteString(string(c.runes[j : end+2]))
			j = end + 1

		case r == '[':
			c.expr.WriteString(`\[`)

		default:
			c.expr.WriteRune(r)
		}
	}
	return c.syntaxErrorAt("Unclosed bracket", start)
}

// endComponent turns the buffered component into a segment
func (c *compiler) endComponent() error {
	if c.braceDepth > 0 {
		if c.pos == len(c.runes)-1 {
			return c.syntaxError("Unclosed brace")
		}
		return c.syntaxError("Invalid separator between braces")
	}

	raw := c.raw.String()
	expr := c.expr.String()
	hasMeta := c.hasMeta
	doubleStar := c.doubleStar
	c.raw.Reset()
	c.expr.Reset()
	c.hasMeta = false
	c.doubleStar = false

	switch {
	case raw == "":
		// consecutive separators
		return nil
	case raw == "**":
		c.segments = append(c.segments, recurseSegment())
	case doubleStar:
		return c.syntaxError("** must be alone between separators").WithDetail("component", raw)
	case !hasMeta:
		c.segments = append(c.segments, constantSegment(raw))
	default:
		re, err := regexp.Compile("(?i)^" + expr + "$")
		if err != nil {
			return errors.Wrapf(err, errors.ErrPatternCompile, "invalid pattern for component %q", raw).
				WithDetail("pattern", c.pattern).
				WithDetail("component", raw)
		}
		c.segments = append(c.segments, filterSegment(re))
	}
	return nil
}

func (c *compiler) syntaxError(msg string) *errors.GlobError {
	return c.syntaxErrorAt(msg, c.pos)
}

func (c *compiler) syntaxErrorAt(msg string, pos int) *errors.GlobError {
	return errors.New(errors.ErrGlobSyntax, msg).
		WithDetail("pattern", c.pattern).
		WithDetail("position", c.offset+pos)
}

// escapeClassRune makes r literal inside a character class
func escapeClassRune(r rune) string {
	if r < unicode.MaxASCII && !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
		return `\` + string(r)
	}
	return string(r)
}

// indexFrom returns the index of needle in runes at or after from, or -1
func indexFrom(runes []rune, from int, needle string) int {
	n := []rune(needle)
	for i := from; i+len(n) <= len(runes); i++ {
		if string(runes[i:i+len(n)]) == needle {
			return i
		}
	}
	return -1
}
