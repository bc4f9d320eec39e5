// Package output prints glob matches.
//
// Three renderers share the Renderer interface: a styled terminal renderer
// (lipgloss styles from the styles package, pterm prefixes for errors and
// the summary line), a plain text renderer that prints one path per line,
// and a JSON renderer that prints one object per line. DetectFormat picks
// between terminal and text when the format is "auto".
package output
