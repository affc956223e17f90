package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/viniciuscsouza/create-mcp-server/scaffold"
)

// HandleOne adds the template suffix to every file under root that contains a placeholder.
func HandleOne(root string) {
	err1 := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path at %q: %w", path, err)
		}

		if d.IsDir() || strings.HasSuffix(path, scaffold.TmpltExt) {
			return nil
		}

		contents, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return fmt.Errorf("failed to read file %q: %w", path, err)
		}

		if !bytes.Contains(contents, []byte("{{")) {
			return nil
		}

		dest := filepath.Clean(path + scaffold.TmpltExt)

		if err = os.Rename(path, dest); err != nil {
			return fmt.Errorf("failed to rename file %q: %w", path, err)
		}

		log.Printf("marked %q", dest)

		return nil
	})
	if err1 != nil {
		log.Printf("Encountered error while handling %q: %s", root, err1)
	}
}

func main() {
	for _, root := range os.Args[1:] {
		HandleOne(root)
	}
}
