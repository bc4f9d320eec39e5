package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
)

// ShutdownSignals cancel a running search
var ShutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// SignalContext returns a context cancelled by the first of
// ShutdownSignals
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, ShutdownSignals...)
}

// Exit codes
const (
	ExitOK             = 0
	ExitInvalidPattern = 1
	ExitTraversalError = 2
)

// ExitError carries the process exit status of a run whose problems were
// already reported to the user
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d: %v", e.Code, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by the root command to a process status
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// Execute runs the root command and reports errors not already shown.
// It returns the process exit status.
func Execute(ctx context.Context, args []string, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)

	var exitErr *ExitError
	if err != nil && !stderrors.As(err, &exitErr) {
		pterm.Error.WithWriter(stderr).Println(err)
	}
	return ExitCode(err)
}
