package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scanner scans for suite files in a directory
type Scanner struct {
	skipDirs   map[string]bool
	extensions []string
}

// NewScanner creates a new Scanner with the directories to skip and the
// file extensions to collect
func NewScanner(skipDirs []string, extensions []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap, extensions: extensions}
}

// Scan finds all suite files in the given root directory. A root that is
// itself a suite file is returned as-is.
func (s *Scanner) Scan(root string) ([]string, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("suite path does not exist: %s", root)
	}
	if !info.IsDir() {
		if !s.isSuiteFile(root) {
			return nil, fmt.Errorf("not a suite file: %s", root)
		}
		return []string{root}, nil
	}

	var suites []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if strings.HasPrefix(name, ".") && name != "." && name != ".." {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if s.isSuiteFile(d.Name()) {
			suites = append(suites, path)
		}
		return nil
	})

	return suites, err
}

func (s *Scanner) isSuiteFile(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range s.extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
