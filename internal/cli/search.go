package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/FrenchBear/myglob/pkg/config"
	"github.com/FrenchBear/myglob/pkg/errors"
	"github.com/FrenchBear/myglob/pkg/logging"
	"github.com/FrenchBear/myglob/pkg/myglob"
	"github.com/FrenchBear/myglob/pkg/output"
	"github.com/FrenchBear/myglob/pkg/output/styles"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
)

// searchFlags are the root command flags
type searchFlags struct {
	global *globalFlags

	autorecurse     bool
	ignore          []string
	noDefaultIgnore bool
	format          string
	sort            bool
	filesOnly       bool
	dirsOnly        bool
	exclude         []string
}

func (f *searchFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.BoolVarP(&f.autorecurse, "autorecurse", "a", false, MsgFlagAutorecurse)
	fl.StringArrayVarP(&f.ignore, "ignore", "i", nil, MsgFlagIgnore)
	fl.BoolVar(&f.noDefaultIgnore, "no-default-ignore", false, MsgFlagNoDefaultIgnore)
	fl.StringVarP(&f.format, "format", "f", config.FormatAuto, MsgFlagFormat)
	fl.BoolVar(&f.sort, "sort", false, MsgFlagSort)
	fl.BoolVar(&f.filesOnly, "files-only", false, MsgFlagFilesOnly)
	fl.BoolVar(&f.dirsOnly, "dirs-only", false, MsgFlagDirsOnly)
	fl.StringArrayVarP(&f.exclude, "exclude", "x", nil, MsgFlagExclude)
	cmd.MarkFlagsMutuallyExclusive("files-only", "dirs-only")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{config.FormatAuto, config.FormatTerm, config.FormatText, config.FormatJSON}, cobra.ShellCompDirectiveNoFileComp
	})
}

// overrides maps the flags the user actually set onto config keys
func (f *searchFlags) overrides(cmd *cobra.Command) map[string]interface{} {
	o := make(map[string]interface{})
	fl := cmd.Flags()
	if fl.Changed("autorecurse") {
		o["search.autorecurse"] = f.autorecurse
	}
	if fl.Changed("format") {
		o["output.format"] = f.format
	}
	if fl.Changed("sort") {
		o["output.sort"] = f.sort
	}
	return o
}

// loadConfig reads the layered configuration with the flags applied
func (f *searchFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	opts := f.global.configOptions()
	opts.Overrides = f.overrides(cmd)
	cfg, err := config.Load(opts)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	if f.noDefaultIgnore {
		cfg.Search.IgnoreDirs = nil
	}
	cfg.Search.ExtraIgnoreDirs = append(cfg.Search.ExtraIgnoreDirs, f.ignore...)
	return cfg, nil
}

// keep reports whether a match survives the kind and exclusion filters
func (f *searchFlags) keep(m myglob.Match) bool {
	switch m.Kind {
	case myglob.MatchFile:
		if f.dirsOnly {
			return false
		}
	case myglob.MatchDir:
		if f.filesOnly {
			return false
		}
	case myglob.MatchError:
		return true
	}

	slashed := filepath.ToSlash(m.Path)
	for _, pattern := range f.exclude {
		if doublestar.MatchUnvalidated(pattern, slashed) {
			return false
		}
	}
	return true
}

func (f *searchFlags) validateExcludes() error {
	for _, pattern := range f.exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Newf(errors.ErrInvalidInput, MsgErrBadExclude, pattern).
				WithDetail("pattern", pattern)
		}
	}
	return nil
}

// resolveFormat turns auto into term or text depending on the writer
func resolveFormat(cmd *cobra.Command, name string) (output.Format, error) {
	format, err := output.ParseFormat(name)
	if err != nil {
		return format, err
	}
	if file, ok := cmd.OutOrStdout().(*os.File); ok {
		return format.Resolve(file), nil
	}
	if format == output.FormatAuto {
		return output.FormatText, nil
	}
	return format, nil
}

// runSearch compiles every pattern first, so a typo aborts before any
// output, then streams or sorts the matches of each pattern in turn
func runSearch(cmd *cobra.Command, patterns []string, f *searchFlags) error {
	logger := logging.GetLogger("cli.search")
	defer logging.LogOperationStart(logger, "search")()

	if err := f.validateExcludes(); err != nil {
		return err
	}
	cfg, err := f.loadConfig(cmd)
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, cfg.Output.Format)
	if err != nil {
		return err
	}
	if cfg.Output.Styles != "" {
		if err := styles.LoadStylesFile(cfg.Output.Styles); err != nil {
			return err
		}
	}
	renderer := output.NewRenderer(cmd.OutOrStdout(), format)

	ignoreDirs := cfg.EffectiveIgnoreDirs()
	logger.Debug().
		Strs("patterns", patterns).
		Bool("autorecurse", cfg.Search.Autorecurse).
		Strs("ignore", ignoreDirs).
		Str("format", format.String()).
		Msg("Search configured")

	searches := make([]*myglob.Search, 0, len(patterns))
	invalid := 0
	for _, pattern := range patterns {
		b := myglob.New(pattern).
			ClearIgnoreDirs().
			Autorecurse(cfg.Search.Autorecurse).
			WithLogger(logging.WithFields(map[string]interface{}{
				"component": "myglob",
				"pattern":   pattern,
			}))
		for _, name := range ignoreDirs {
			b.AddIgnoreDir(name)
		}
		s, err := b.Compile()
		if err != nil {
			invalid++
			if rerr := renderer.RenderCompileError(pattern, err); rerr != nil {
				return rerr
			}
			continue
		}
		searches = append(searches, s)
	}
	if invalid > 0 {
		return &ExitError{Code: ExitInvalidPattern, Err: fmt.Errorf(MsgErrInvalidPatts, invalid)}
	}

	ctx := cmd.Context()
	start := time.Now()
	summary := output.Summary{Patterns: len(searches)}
	emit := func(m myglob.Match) error {
		if !f.keep(m) {
			return nil
		}
		summary.Add(m)
		if m.Kind == myglob.MatchError && !cfg.Output.ShowErrors {
			return nil
		}
		return renderer.RenderMatch(m)
	}

	for _, s := range searches {
		if cfg.Output.Sort {
			matches, err := s.Collect(ctx)
			if err != nil {
				return err
			}
			slices.SortFunc(matches, func(a, b myglob.Match) int {
				return strings.Compare(a.Path, b.Path)
			})
			for _, m := range matches {
				if err := emit(m); err != nil {
					return err
				}
			}
			continue
		}

		for m := range s.All() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := emit(m); err != nil {
				return err
			}
		}
	}
	summary.Elapsed = time.Since(start)

	logger.Info().
		Int("files", summary.Files).
		Int("dirs", summary.Dirs).
		Int("errors", summary.Errors).
		Dur("elapsed", summary.Elapsed).
		Msg("Search finished")

	if err := renderer.RenderSummary(summary); err != nil {
		return err
	}
	if summary.Errors > 0 {
		return &ExitError{Code: ExitTraversalError, Err: fmt.Errorf(MsgErrTraversal, summary.Errors)}
	}
	return nil
}
