// Copyright © 2025 The lispindent authors

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// expandArgs expands arguments, resolving patterns ending with "/..." to all
// .lisp files found recursively under the given directory.  Non-pattern
// arguments pass through unchanged.  Files matching any exclude glob are
// dropped.
func expandArgs(args, excludes []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if dir, ok := strings.CutSuffix(arg, "/..."); ok {
			if dir == "" {
				dir = "."
			}
			files, err := findLispFiles(dir)
			if err != nil {
				return nil, fmt.Errorf("expanding %s: %w", arg, err)
			}
			out = append(out, files...)
		} else {
			out = append(out, arg)
		}
	}
	if len(excludes) == 0 {
		return out, nil
	}
	var kept []string
	for _, path := range out {
		if excluded, err := matchAny(excludes, path); err != nil {
			return nil, err
		} else if !excluded {
			kept = append(kept, path)
		}
	}
	return kept, nil
}

func matchAny(patterns []string, path string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := filepath.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("bad exclude pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true, nil
		}
	}
	return false, nil
}

func findLispFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".lisp" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
