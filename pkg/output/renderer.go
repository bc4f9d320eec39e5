package output

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/FrenchBear/myglob/pkg/errors"
	"github.com/FrenchBear/myglob/pkg/myglob"
	"github.com/FrenchBear/myglob/pkg/output/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Summary counts what a run printed
type Summary struct {
	Patterns int
	Files    int
	Dirs     int
	Errors   int
	Elapsed  time.Duration
}

// Add counts m in the summary
func (s *Summary) Add(m myglob.Match) {
	switch m.Kind {
	case myglob.MatchFile:
		s.Files++
	case myglob.MatchDir:
		s.Dirs++
	case myglob.MatchError:
		s.Errors++
	}
}

// Renderer writes matches in one output format
type Renderer interface {
	RenderMatch(m myglob.Match) error
	RenderCompileError(pattern string, err error) error
	RenderSummary(s Summary) error
}

// NewRenderer returns the renderer for format. FormatAuto must be resolved
// by the caller; it falls back to text here.
func NewRenderer(w io.Writer, format Format) Renderer {
	switch format {
	case FormatTerminal:
		return newTerminalRenderer(w)
	case FormatJSON:
		return &jsonRenderer{enc: json.NewEncoder(w)}
	default:
		return &textRenderer{w: w}
	}
}

// cause returns the message of the innermost path error, which is what a
// user wants to see next to the path itself
func cause(err error) string {
	var pathErr *fs.PathError
	if stderrors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}

func dirPath(path string) string {
	if len(path) > 0 && os.IsPathSeparator(path[len(path)-1]) {
		return path
	}
	return path + string(os.PathSeparator)
}

// textRenderer prints bare paths, directories with a trailing separator
type textRenderer struct {
	w io.Writer
}

func (r *textRenderer) RenderMatch(m myglob.Match) error {
	var err error
	switch m.Kind {
	case myglob.MatchFile:
		_, err = fmt.Fprintln(r.w, m.Path)
	case myglob.MatchDir:
		_, err = fmt.Fprintln(r.w, dirPath(m.Path))
	case myglob.MatchError:
		_, err = fmt.Fprintf(r.w, "%s: error: %s\n", m.Path, cause(m.Err))
	}
	return err
}

func (r *textRenderer) RenderCompileError(pattern string, err error) error {
	_, werr := fmt.Fprintf(r.w, "%s: %s: %v\n", pattern, compileLabel(err), err)
	return werr
}

// compileLabel separates glob mistakes from translations the regexp engine
// refused
func compileLabel(err error) string {
	var globErr *errors.GlobError
	if stderrors.As(err, &globErr) && !globErr.IsSyntax() {
		return "unsupported pattern"
	}
	return "invalid pattern"
}

func (r *textRenderer) RenderSummary(Summary) error {
	return nil
}

// terminalRenderer styles paths with lipgloss and prefixes with pterm
type terminalRenderer struct {
	w      io.Writer
	styles map[string]lipgloss.Style
}

func newTerminalRenderer(w io.Writer) *terminalRenderer {
	lr := lipgloss.NewRenderer(w)
	// an explicit term format keeps colors when piped
	if lr.ColorProfile() == termenv.Ascii {
		lr.SetColorProfile(termenv.ANSI256)
	}

	r := &terminalRenderer{w: w, styles: make(map[string]lipgloss.Style)}
	for _, name := range []string{"File", "Dir", "ErrorPath", "ErrorText", "Pattern", "Summary", "Count"} {
		r.styles[name] = styles.GetStyle(name).Renderer(lr)
	}
	return r
}

func (r *terminalRenderer) RenderMatch(m myglob.Match) error {
	var line string
	switch m.Kind {
	case myglob.MatchFile:
		line = r.styles["File"].Render(m.Path)
	case myglob.MatchDir:
		line = r.styles["Dir"].Render(dirPath(m.Path))
	case myglob.MatchError:
		line = fmt.Sprintf("%s %s %s",
			prefix(pterm.Error),
			r.styles["ErrorPath"].Render(m.Path),
			r.styles["ErrorText"].Render(cause(m.Err)))
	}
	_, err := fmt.Fprintln(r.w, line)
	return err
}

func (r *terminalRenderer) RenderCompileError(pattern string, err error) error {
	msg := err.Error()
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		msg = fmt.Sprintf("%s (%s)", messageOf(err), code)
	}
	_, werr := fmt.Fprintf(r.w, "%s %s %s: %s\n",
		prefix(pterm.Error),
		r.styles["Pattern"].Render(pattern),
		compileLabel(err),
		pterm.Error.MessageStyle.Sprint(msg))
	return werr
}

func (r *terminalRenderer) RenderSummary(s Summary) error {
	count := r.styles["Count"]
	text := fmt.Sprintf("%s files, %s dirs, %s errors in %s",
		count.Render(fmt.Sprint(s.Files)),
		count.Render(fmt.Sprint(s.Dirs)),
		count.Render(fmt.Sprint(s.Errors)),
		s.Elapsed.Round(time.Millisecond))
	_, err := fmt.Fprintf(r.w, "%s %s\n", prefix(pterm.Info), r.styles["Summary"].Render(text))
	return err
}

func prefix(p pterm.PrefixPrinter) string {
	return p.Prefix.Style.Sprint(p.Prefix.Text)
}

func messageOf(err error) string {
	var globErr *errors.GlobError
	if stderrors.As(err, &globErr) {
		return globErr.Message
	}
	return err.Error()
}

// jsonRecord is one line of JSON output
type jsonRecord struct {
	Kind    string `json:"kind"`
	Path    string `json:"path,omitempty"`
	Pattern string `json:"pattern,omitempty"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error,omitempty"`
}

type jsonRenderer struct {
	enc *json.Encoder
}

func (r *jsonRenderer) RenderMatch(m myglob.Match) error {
	rec := jsonRecord{Kind: m.Kind.String(), Path: m.Path}
	if m.Err != nil {
		rec.Code = string(errors.GetErrorCode(m.Err))
		rec.Error = cause(m.Err)
	}
	return r.enc.Encode(rec)
}

func (r *jsonRenderer) RenderCompileError(pattern string, err error) error {
	return r.enc.Encode(jsonRecord{
		Kind:    "invalid_pattern",
		Pattern: pattern,
		Code:    string(errors.GetErrorCode(err)),
		Error:   messageOf(err),
	})
}

func (r *jsonRenderer) RenderSummary(Summary) error {
	return nil
}
