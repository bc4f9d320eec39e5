package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"testing"

	"github.com/FrenchBear/myglob/pkg/output/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps logs and configuration away from the user's home
func isolate(t *testing.T) string {
	t.Helper()
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)
	t.Setenv("NO_COLOR", "1")
	return filepath.Join(state, "no-such-config.toml")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath := isolate(t)

	var out bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// tree creates a small directory tree and returns its root
func tree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, rel := range []string{"a.txt", "sub/b.txt", "sub/c.go", ".git/x.txt", "vendor/d.txt"} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(rel), 0644))
	}
	return root
}

func TestSearch_Text(t *testing.T) {
	root := tree(t)
	sep := string(os.PathSeparator)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "recursive",
			args: []string{"--sort", filepath.Join(root, "**", "*.txt")},
			want: []string{"a.txt", filepath.Join("sub", "b.txt"), filepath.Join("vendor", "d.txt")},
		},
		{
			name: "autorecurse",
			args: []string{"--sort", "-a", filepath.Join(root, "*.txt")},
			want: []string{"a.txt", filepath.Join("sub", "b.txt"), filepath.Join("vendor", "d.txt")},
		},
		{
			name: "extra_ignore",
			args: []string{"--sort", "-i", "VENDOR", filepath.Join(root, "**", "*.txt")},
			want: []string{"a.txt", filepath.Join("sub", "b.txt")},
		},
		{
			name: "no_default_ignore",
			args: []string{"--sort", "--no-default-ignore", filepath.Join(root, "**", "x.txt")},
			want: []string{filepath.Join(".git", "x.txt")},
		},
		{
			name: "exclude",
			args: []string{"--sort", "-x", "**/vendor/**", "-x", "**/a.*", filepath.Join(root, "**", "*.txt")},
			want: []string{filepath.Join("sub", "b.txt")},
		},
		{
			name: "dirs_only",
			args: []string{"--sort", "--dirs-only", filepath.Join(root, "*")},
			want: []string{"sub" + sep, "vendor" + sep},
		},
		{
			name: "files_only",
			args: []string{"--files-only", filepath.Join(root, "*")},
			want: []string{"a.txt"},
		},
		{
			name: "several_patterns",
			args: []string{"--sort", filepath.Join(root, "*.txt"), filepath.Join(root, "sub", "*.go")},
			want: []string{"a.txt", filepath.Join("sub", "c.go")},
		},
		{
			name: "constant",
			args: []string{filepath.Join(root, "sub", "c.go")},
			want: []string{filepath.Join("sub", "c.go")},
		},
		{
			name: "nothing",
			args: []string{filepath.Join(root, "*.zip")},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)

			var want []string
			for _, rel := range tt.want {
				want = append(want, filepath.Join(root, rel)+trailing(rel))
			}
			assert.Equal(t, want, lines(out))
		})
	}
}

// trailing keeps the separator filepath.Join strips from directory results
func trailing(rel string) string {
	if strings.HasSuffix(rel, string(os.PathSeparator)) {
		return string(os.PathSeparator)
	}
	return ""
}

func TestSearch_StylesFile(t *testing.T) {
	root := tree(t)
	t.Cleanup(func() { require.NoError(t, styles.Reset()) })

	dir := t.TempDir()
	stylesPath := filepath.Join(dir, "styles.yaml")
	require.NoError(t, os.WriteFile(stylesPath, []byte("styles:\n  File:\n    italic: true\n"), 0644))
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configPath,
		[]byte(fmt.Sprintf("[output]\nstyles = %q\n", filepath.ToSlash(stylesPath))), 0644))

	out, err := run(t, "--config", configPath, "-f", "term", filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Contains(t, out, "a.txt")
	assert.True(t, styles.GetStyle("File").GetItalic())

	missing := filepath.Join(dir, "missing.toml")
	require.NoError(t, os.WriteFile(missing,
		[]byte(fmt.Sprintf("[output]\nstyles = %q\n", filepath.ToSlash(filepath.Join(dir, "nope.yaml")))), 0644))
	_, err = run(t, "--config", missing, filepath.Join(root, "a.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "styles file")
}

func TestSearch_JSON(t *testing.T) {
	root := tree(t)
	out, err := run(t, "-f", "json", filepath.Join(root, "sub", "*.go"))
	require.NoError(t, err)

	var rec map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "file", rec["kind"])
	assert.Equal(t, filepath.Join(root, "sub", "c.go"), rec["path"])
}

func TestSearch_InvalidPattern(t *testing.T) {
	root := tree(t)
	out, err := run(t, filepath.Join(root, "*.txt"), "a{b", "")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidPattern, ExitCode(err))

	got := lines(out)
	require.Len(t, got, 2, "only the compile errors are printed: %q", out)
	assert.Contains(t, got[0], "a{b: invalid pattern")
	assert.Contains(t, got[1], "invalid pattern")
}

func TestSearch_InvalidFlags(t *testing.T) {
	root := tree(t)

	_, err := run(t, "-x", "[", filepath.Join(root, "*"))
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))

	_, err = run(t, "-f", "xml", filepath.Join(root, "*"))
	require.Error(t, err)

	_, err = run(t, "--files-only", "--dirs-only", filepath.Join(root, "*"))
	require.Error(t, err)
}

func TestSearch_UnreadableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	root := tree(t)
	locked := filepath.Join(root, "sub")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	out, err := run(t, "--sort", filepath.Join(root, "**", "*.txt"))
	require.Error(t, err)
	assert.Equal(t, ExitTraversalError, ExitCode(err))
	assert.Contains(t, out, filepath.Join(root, "a.txt"))
	assert.Contains(t, out, locked+": error: ")

	t.Setenv("MYGLOB_OUTPUT_SHOW_ERRORS", "false")
	out, err = run(t, filepath.Join(root, "**", "*.txt"))
	assert.Equal(t, ExitTraversalError, ExitCode(err))
	assert.NotContains(t, out, "error")
}

func TestNoArgsShowsHelp(t *testing.T) {
	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "USAGE")
	assert.Contains(t, out, "myglob [flags] PATTERN...")
	assert.Contains(t, out, "help topics")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "myglob version "))
}

func TestConfigCommand(t *testing.T) {
	t.Run("effective", func(t *testing.T) {
		out, err := run(t, "config")
		require.NoError(t, err)
		assert.Contains(t, out, "[search]")
		assert.Contains(t, out, "autorecurse = false")
		assert.Contains(t, out, "[output]")
	})

	t.Run("defaults", func(t *testing.T) {
		out, err := run(t, "config", "--defaults")
		require.NoError(t, err)
		assert.Contains(t, out, "# autorecurse = false")
	})

	t.Run("user file", func(t *testing.T) {
		isolate(t)
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[output]\nsort = true\n"), 0644))

		var out bytes.Buffer
		rootCmd := NewRootCmd()
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"--config", path, "config"})
		require.NoError(t, rootCmd.Execute())
		assert.Contains(t, out.String(), "sort = true")
	})
}

func TestManCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "man")
	_, err := run(t, "man", "--dir", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "myglob.1"))
	assert.FileExists(t, filepath.Join(dir, "myglob-config.1"))
}

func TestCompletionCommand(t *testing.T) {
	out, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "myglob")

	_, err = run(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestHelpTopics(t *testing.T) {
	out, err := run(t, "help", "topics")
	require.NoError(t, err)
	for _, topic := range []string{"syntax", "ignore", "config", "--autorecurse", "--exclude"} {
		assert.Contains(t, out, topic)
	}

	out, err = run(t, "help", "syntax")
	require.NoError(t, err)
	assert.Contains(t, out, "Glob syntax")

	out, err = run(t, "help", "autorecurse")
	require.NoError(t, err)
	assert.Contains(t, out, "Autorecurse")
}

func TestExecute(t *testing.T) {
	configPath := isolate(t)
	root := tree(t)

	var stderr bytes.Buffer
	code := Execute(context.Background(), []string{"--config", configPath, "-x", "[", root}, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "invalid exclude pattern")

	stderr.Reset()
	code = Execute(context.Background(), []string{"--config", configPath, "version"}, &stderr)
	assert.Equal(t, ExitOK, code)
	assert.Empty(t, stderr.String())
}

func TestSignalContext(t *testing.T) {
	assert.Contains(t, ShutdownSignals, os.Interrupt)
	assert.Contains(t, ShutdownSignals, syscall.SIGTERM)

	ctx, stop := SignalContext(context.Background())
	require.NoError(t, ctx.Err())
	stop()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(assert.AnError))
	assert.Equal(t, ExitTraversalError, ExitCode(&ExitError{Code: ExitTraversalError, Err: assert.AnError}))
}
