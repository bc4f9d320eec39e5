package cli

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/FrenchBear/myglob/internal/version"
	"github.com/FrenchBear/myglob/pkg/cobrax/topics"
	"github.com/FrenchBear/myglob/pkg/config"
	"github.com/FrenchBear/myglob/pkg/logging"
	"github.com/FrenchBear/myglob/pkg/myglob"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed help/*.md
var helpFS embed.FS

// globalFlags are shared by every command
type globalFlags struct {
	verbosity  int
	configPath string
}

func (g *globalFlags) configOptions() config.Options {
	return config.Options{UserConfigPath: g.configPath}
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	global := &globalFlags{}
	flags := &searchFlags{global: global}

	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "myglob [flags] PATTERN...",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(global.verbosity)
			log.Debug().Str("command", cmd.Name()).Strs("args", args).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runSearch(cmd, args, flags)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.PersistentFlags().CountVarP(&global.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&global.configPath, "config", "", MsgFlagConfig)
	flags.register(rootCmd)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(global))
	rootCmd.AddCommand(newManCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Topics without logging, which is not set up yet
	sub, err := fs.Sub(helpFS, "help")
	if err != nil {
		panic(fmt.Sprintf("embedded help topics: %v", err))
	}
	tm, err := topics.InitializeWithOptions(rootCmd, sub, topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	})
	if err != nil {
		panic(fmt.Sprintf("embedded help topics: %v", err))
	}
	tm.AddTopic("syntax", "syntax.md", myglob.SyntaxHelp())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
