// Package validate holds the checks that run before a project is generated.
package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

const MinimumNodeVersion = "18.0.0"

var nameRegex = regexp.MustCompile(`^[a-z0-9~][a-z0-9._~-]*$`)

// IsValidName reports whether name can be used both as a directory and as an npm package name.
func IsValidName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}

	return nameRegex.MatchString(name)
}

// IsDirectoryAvailable reports whether a project can be generated at path.
// A missing path is available, so is a directory holding nothing but hidden entries.
func IsDirectoryAvailable(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}

	if !info.IsDir() {
		return false, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return false, fmt.Errorf("failed to list directory %q: %w", path, err)
	}

	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), ".") {
			return false, nil
		}
	}

	return true, nil
}

func canonical(version string) string {
	version = strings.TrimSpace(version)

	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}

	return version
}

// VersionSatisfies reports whether version is at least minimum.
// Both may omit the leading "v". Invalid versions never satisfy.
func VersionSatisfies(version, minimum string) bool {
	v, m := canonical(version), canonical(minimum)

	if !semver.IsValid(v) || !semver.IsValid(m) {
		return false
	}

	return semver.Compare(v, m) >= 0
}
