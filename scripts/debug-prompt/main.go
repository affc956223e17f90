package main

import (
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/viniciuscsouza/create-mcp-server/prompt"
	"github.com/viniciuscsouza/create-mcp-server/scaffold"
)

func main() {
	dump, err := os.OpenFile("messages.log", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		log.Fatal("failed to open log file messages.log")
	}

	defer func() { _ = dump.Close() }()

	p := prompt.New(os.Stdin, os.Stdout)

	partial, err := p.Complete(scaffold.PartialConfig{}, scaffold.DefaultValues())
	spew.Fdump(dump, "==> complete", partial, err)

	overwrite, err := p.ConfirmOverwrite(partial.Name)
	spew.Fdump(dump, "==> overwrite", overwrite, err)
}
