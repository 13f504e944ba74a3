package detector

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// ReactDependency describes how package.json declares react
type ReactDependency struct {
	PackageFile string
	// Section is dependencies, devDependencies or peerDependencies
	Section string
	Version string
}

var dependencySections = []string{"dependencies", "peerDependencies", "devDependencies"}

// FindReactDependency looks for the nearest package.json at or above dir and
// reports whether it declares react. found is false when there is no
// package.json or it does not list react.
func FindReactDependency(dir string) (dep ReactDependency, found bool, err error) {
	pkgFile, ok := findPackageJSON(dir)
	if !ok {
		return ReactDependency{}, false, nil
	}

	content, err := os.ReadFile(pkgFile)
	if err != nil {
		return ReactDependency{}, false, fmt.Errorf("failed to read %s: %w", pkgFile, err)
	}
	if !gjson.ValidBytes(content) {
		return ReactDependency{}, false, fmt.Errorf("invalid JSON in %s", pkgFile)
	}

	for _, section := range dependencySections {
		if v := gjson.GetBytes(content, section+".react"); v.Exists() {
			return ReactDependency{PackageFile: pkgFile, Section: section, Version: v.String()}, true, nil
		}
	}
	return ReactDependency{PackageFile: pkgFile}, false, nil
}

func findPackageJSON(dir string) (string, bool) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}
	for {
		candidate := filepath.Join(abs, "package.json")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", false
		}
		abs = parent
	}
}
