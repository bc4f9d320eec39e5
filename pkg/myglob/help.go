package myglob

import (
	_ "embed"
	"strings"
)

const (
	libName    = "myglob"
	libVersion = "1.4.0"
)

//go:embed syntax.md
var syntaxHelp string

// Version returns the library name and version
func Version() string {
	return libName + ": " + libVersion
}

// SyntaxHelp returns the glob syntax reference as markdown
func SyntaxHelp() string {
	return strings.TrimSpace(syntaxHelp) + "\n"
}
