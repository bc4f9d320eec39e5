package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "List files and directories matching glob patterns"
	MsgVersionShort    = "Print version information"
	MsgConfigShort     = "Show or write the effective configuration"
	MsgManShort        = "Generate man pages"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgConfigWritten = "Configuration written to %s\n"
	MsgManWritten    = "Man pages written to %s\n"

	// Error messages
	MsgErrLoadConfig   = "failed to load configuration: %w"
	MsgErrBadExclude   = "invalid exclude pattern %q"
	MsgErrWriteConfig  = "failed to write %s: %w"
	MsgErrInvalidPatts = "%d invalid pattern(s)"
	MsgErrTraversal    = "%d director(y/ies) could not be read"

	// Flag descriptions
	MsgFlagVerbose         = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig          = "User config file (default $XDG_CONFIG_HOME/myglob/config.toml)"
	MsgFlagAutorecurse     = "Search subdirectories implicitly (see 'help autorecurse')"
	MsgFlagIgnore          = "Directory name to skip, repeatable"
	MsgFlagNoDefaultIgnore = "Do not skip the built-in ignored directories"
	MsgFlagFormat          = "Output format: auto, term, text or json"
	MsgFlagSort            = "Sort results by path"
	MsgFlagFilesOnly       = "Print files only"
	MsgFlagDirsOnly        = "Print directories only"
	MsgFlagExclude         = "Hide results matching this doublestar glob, repeatable"
	MsgFlagWrite           = "Write the configuration to .myglob.toml"
	MsgFlagDefaults        = "Print the commented built-in defaults"
	MsgFlagManDir          = "Directory the man pages are written to"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
