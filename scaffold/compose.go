package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

type (
	NodeKind byte

	// Node is one entry of a template tree. Path is slash separated and relative to the walked root.
	Node struct {
		Path string
		Kind NodeKind
	}

	Composer struct {
		renderer *Renderer
	}
)

const (
	NodeFile NodeKind = iota
	NodeDirectory
)

func (k NodeKind) String() string {
	if k == NodeDirectory {
		return "directory"
	}

	return "file"
}

// Nodes lists the tree under root breadth first. Entries of one directory come in name order,
// and a directory always comes before its contents.
// Non-nil returned error wraps [ErrTemplateNotFound] when root is not a directory of fsys.
func Nodes(fsys fs.FS, root string) ([]Node, error) {
	info, err := fs.Stat(fsys, root)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		return nil, fmt.Errorf("%w: %q is not a directory of template files", ErrTemplateNotFound, root)
	} else if err != nil {
		return nil, fmt.Errorf("failed to open template directory %q: %w", root, err)
	}

	var nodes []Node

	srcDirs := []string{"."}

	for len(srcDirs) > 0 {
		srcDir := srcDirs[0]
		srcDirs = srcDirs[1:]

		items, err := fs.ReadDir(fsys, path.Join(root, srcDir))
		if err != nil {
			return nil, fmt.Errorf("failed to open the relative directory %q in template tree %q: %w", srcDir, root, err)
		}

		for _, item := range items {
			rel := path.Join(srcDir, item.Name())

			if item.IsDir() {
				nodes = append(nodes, Node{Path: rel, Kind: NodeDirectory})
				srcDirs = append(srcDirs, rel)

				continue
			}

			nodes = append(nodes, Node{Path: rel, Kind: NodeFile})
		}
	}

	return nodes, nil
}

func NewComposer(renderer *Renderer) *Composer {
	return &Composer{renderer: renderer}
}

// Compose mirrors the tree under root into destRoot, which must exist.
// Files already present at the same relative path are overwritten.
// It returns the written files relative to destRoot and stops at the first failure without undoing anything.
func (c *Composer) Compose(fsys fs.FS, root, destRoot string) ([]string, error) {
	nodes, err := Nodes(fsys, root)
	if err != nil {
		return nil, err
	}

	written := make([]string, 0, len(nodes))

	for _, node := range nodes {
		dest := filepath.Join(destRoot, filepath.FromSlash(node.Path))

		if node.Kind == NodeDirectory {
			if err = os.MkdirAll(dest, 0750); err != nil {
				return written, fmt.Errorf("failed to create directory %q in destination folder: %w", node.Path, err)
			}

			continue
		}

		out, err := c.renderer.RenderFile(fsys, path.Join(root, node.Path), filepath.Dir(dest))
		if err != nil {
			return written, err
		}

		rel, err := filepath.Rel(destRoot, out)
		if err != nil {
			return written, fmt.Errorf("written file %q is outside of %q: %w", out, destRoot, err)
		}

		written = append(written, filepath.ToSlash(rel))
	}

	return written, nil
}
