package scaffold

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

type (
	Command struct {
		Name string
		Dir  string
		Args []string
	}

	CommandResult struct {
		Output   []byte
		ExitCode int
	}

	// Runner runs external programs. A non-zero exit is reported through CommandResult.ExitCode,
	// a returned error means the program could not be run at all.
	Runner interface {
		Run(context.Context, Command) (CommandResult, error)
	}

	ExecRunner struct{}
)

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

func (ExecRunner) Run(ctx context.Context, c Command) (CommandResult, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir

	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return CommandResult{Output: out, ExitCode: exitErr.ExitCode()}, nil
	} else if err != nil {
		return CommandResult{Output: out, ExitCode: -1}, fmt.Errorf("failed to run %q: %w", c, err)
	}

	return CommandResult{Output: out}, nil
}

// runChecked runs c and turns a non-zero exit into an error.
// Non-nil returned error wraps [ErrCommandFailed].
func runChecked(ctx context.Context, runner Runner, c Command) (CommandResult, error) {
	res, err := runner.Run(ctx, c)
	if err != nil {
		return res, fmt.Errorf("%w: %s", ErrCommandFailed, err.Error())
	}

	if res.ExitCode != 0 {
		return res, fmt.Errorf("%w: %q exited with status %d: %s", ErrCommandFailed, c, res.ExitCode, strings.TrimSpace(string(res.Output)))
	}

	return res, nil
}
