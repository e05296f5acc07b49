// Package verifier adapts the external proving-system toolchain's
// contribution-verification command behind the ceremony.Verifier interface.
// The command is a black box: three positional file paths in, exit code out.
package verifier

import (
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Func adapts a plain function to the ceremony.Verifier interface. Used by
// the pipeline's own tests to substitute canned results for the real,
// multi-minute external command.
type Func func(baselinePath, paramsPath, currentPath string) error

// Verify calls f.
func (f Func) Verify(baselinePath, paramsPath, currentPath string) error {
	return f(baselinePath, paramsPath, currentPath)
}

// Exec invokes the external verification executable once per call, passing
// (baseline, params, current) as positional arguments after the configured
// argv prefix. The child inherits the configured streams so its diagnostic
// output is visible to the operator in real time. No retries: the external
// verifier is deterministic and expensive, one invocation is authoritative.
type Exec struct {
	Argv []string // command plus fixed leading arguments, e.g. snarkjs zkey verify

	// Child process streams. Stdout defaults to os.Stdout, Stderr to
	// os.Stderr, Stdin to os.Stdin. Under `serve`, stdout must be
	// redirected away from the MCP transport.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExec returns an Exec running argv with inherited terminal streams.
func NewExec(argv []string) *Exec {
	return &Exec{Argv: argv}
}

// Verify runs the external command and blocks until it exits. A non-zero
// exit status or a spawn failure is returned as an error carrying the
// command's diagnostic text where available.
func (e *Exec) Verify(baselinePath, paramsPath, currentPath string) error {
	if len(e.Argv) == 0 {
		return fmt.Errorf("verifier command not configured")
	}

	args := append(append([]string{}, e.Argv[1:]...), baselinePath, paramsPath, currentPath)
	cmd := exec.Command(e.Argv[0], args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", e.Argv[0], err)
	}
	return nil
}
