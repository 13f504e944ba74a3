package detector

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/getlawrence/hooklog/internal/config"
	"github.com/getlawrence/hooklog/internal/jsast"
	"github.com/go-enry/go-enry/v2"
)

// Source is a script file discovered under Root
type Source struct {
	Path string
	// Root is the path given by the user; outputs mirror Path relative to it
	Root string
}

// Rel returns Path relative to Root, or the base name when Root is the file itself
func (s Source) Rel() string {
	if s.Root == s.Path {
		return filepath.Base(s.Path)
	}
	rel, err := filepath.Rel(s.Root, s.Path)
	if err != nil {
		return filepath.Base(s.Path)
	}
	return rel
}

// CollectSources walks each root and returns the script files to transform,
// sorted by path. A root that is a file is returned as-is when its extension is supported.
func CollectSources(roots []string, cfg *config.Config) ([]Source, error) {
	var sources []Source
	seen := make(map[string]bool)

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}

		if !info.IsDir() {
			if IsSourceFile(root, cfg) && !seen[root] {
				seen[root] = true
				sources = append(sources, Source{Path: root, Root: root})
			}
			continue
		}

		err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if shouldSkipFile(root, path, info, cfg) {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.IsDir() && IsSourceFile(path, cfg) && !seen[path] {
				seen[path] = true
				sources = append(sources, Source{Path: path, Root: root})
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })
	return sources, nil
}

// IsSourceFile reports whether path has a configured extension that maps to a
// supported grammar
func IsSourceFile(path string, cfg *config.Config) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !hasExtension(cfg.Files.Extensions, ext) {
		return false
	}
	for _, supported := range jsast.SupportedExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// IsExcludedDir reports whether a directory is excluded by name or pattern
func IsExcludedDir(path string, cfg *config.Config) bool {
	name := filepath.Base(path)
	for _, pattern := range cfg.Files.Exclude {
		if name == pattern {
			return true
		}
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
	}
	return false
}

// shouldSkipFile determines if a file or directory should be skipped during discovery
func shouldSkipFile(rootPath, path string, info os.FileInfo, cfg *config.Config) bool {
	if path == rootPath {
		return false
	}

	// Skip hidden files and directories
	if strings.HasPrefix(info.Name(), ".") {
		return true
	}

	if info.IsDir() {
		return IsExcludedDir(path, cfg)
	}

	relPath, _ := filepath.Rel(rootPath, path)
	// minified bundles and vendored copies are never hand-annotated
	return enry.IsVendor(relPath) || strings.HasSuffix(info.Name(), ".min.js")
}

func hasExtension(exts []string, ext string) bool {
	for _, e := range exts {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
