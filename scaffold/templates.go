package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed "all:templates"
var templatesFS embed.FS

// Bundled returns the templates shipped with the binary.
// The root holds the base, stdio, http, shared and examples subtrees.
func Bundled() (fs.FS, error) {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to open bundled templates: %w", err)
	}

	return sub, nil
}
