package scaffold

import (
	"context"
	"fmt"
	"strings"

	"github.com/viniciuscsouza/create-mcp-server/validate"
)

// CheckRuntime makes sure the Node.js runtime the generated project needs is recent enough.
// Non-nil returned error wraps [ErrUnsupportedRuntime].
func CheckRuntime(ctx context.Context, runner Runner) (version string, err error) {
	res, err := runChecked(ctx, runner, Command{Name: "node", Args: []string{"--version"}})
	if err != nil {
		return "", fmt.Errorf("%w: could not determine the Node.js version: %s", ErrUnsupportedRuntime, err.Error())
	}

	version = strings.TrimSpace(string(res.Output))

	if !validate.VersionSatisfies(version, validate.MinimumNodeVersion) {
		return version, fmt.Errorf("%w: Node.js %s found, please use Node.js >= %s", ErrUnsupportedRuntime, version, validate.MinimumNodeVersion)
	}

	return version, nil
}
