// Package manifest reads the crate name of the project in the working
// directory so cratelink can be run without arguments inside a Rust crate.
package manifest

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cratelink/pkg/errors"
)

// CargoFileName is the manifest cargo looks for.
const CargoFileName = "Cargo.toml"

// Cargo is the subset of a Cargo.toml that cratelink reads.
type Cargo struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Workspace *struct {
		Members []string `toml:"members"`
	} `toml:"workspace"`
}

// ParseCargo decodes a Cargo.toml document.
func ParseCargo(data []byte) (*Cargo, error) {
	var cargo Cargo
	if err := toml.Unmarshal(data, &cargo); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", CargoFileName)
	}
	return &cargo, nil
}

// Find returns the path of the nearest Cargo.toml in dir or one of its
// parents, the way cargo itself locates a manifest.
func Find(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeManifestNotFound, err, "resolve %s", dir)
	}
	for {
		candidate := filepath.Join(abs, CargoFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return "", errors.Wrap(errors.ErrCodeManifestNotFound, err, "stat %s", candidate)
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", errors.New(errors.ErrCodeManifestNotFound,
				"no %s found in %s or any parent directory", CargoFileName, dir)
		}
		abs = parent
	}
}

// CrateName returns the package name of the nearest Cargo.toml above dir.
// A workspace root without a [package] table is reported as an invalid
// manifest since it does not name a single crate.
func CrateName(dir string) (string, error) {
	path, err := Find(dir)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidManifest, err, "read %s", path)
	}
	cargo, err := ParseCargo(data)
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(cargo.Package.Name)
	if name == "" {
		if cargo.Workspace != nil {
			return "", errors.New(errors.ErrCodeInvalidManifest,
				"%s is a workspace manifest; pass a crate name", path)
		}
		return "", errors.New(errors.ErrCodeInvalidManifest, "%s has no [package] name", path)
	}
	return name, nil
}
