package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/viniciuscsouza/create-mcp-server/cli"
	"github.com/viniciuscsouza/create-mcp-server/version"
)

func main() {
	exitCode := 0

	defer func() { os.Exit(exitCode) }()

	info := version.New("create-mcp-server", "Scaffold a TypeScript Model Context Protocol server.")

	var cmd cli.CreateCmd

	parser, err := kong.New(
		&cmd,
		kong.Name(info.Name),
		kong.Description(info.Description),
		kong.Vars{"version": info.Version},
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to build the command line parser: %s\n", err.Error())

		exitCode = 1

		return
	}

	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		parser.Errorf("%s", err.Error())

		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) && parseErr.Context != nil {
			_ = parseErr.Context.PrintUsage(true)
		}

		exitCode = 1

		return
	}

	if err = ctx.Run(info); err != nil {
		parser.Errorf("%s", err.Error())

		exitCode = 1
	}
}
