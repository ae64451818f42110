// Copyright © 2026 The iota authors

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const sourceExt = ".iota"

// input is one source text named on the command line.
type input struct {
	name string
	src  []byte
}

// readInputs reads the files named by args, or standard input when there
// are none.  Patterns ending in "/..." expand to every .iota file below the
// directory, minus any path matching excludes.
func readInputs(cmd *cobra.Command, args []string, excludes []string) ([]input, error) {
	if len(args) == 0 {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []input{{name: "<stdin>", src: src}}, nil
	}
	paths, err := expandArgs(args, excludes)
	if err != nil {
		return nil, err
	}
	inputs := make([]input, 0, len(paths))
	for _, path := range paths {
		src, err := os.ReadFile(path) //nolint:gosec // CLI tool reads user-specified files
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input{name: path, src: src})
	}
	return inputs, nil
}

// sourceReader serves the text of inputs to the diagnostic renderer, so
// that standard input can be quoted too.
func sourceReader(inputs []input) func(string) ([]byte, error) {
	return func(name string) ([]byte, error) {
		for _, in := range inputs {
			if in.name == name {
				return in.src, nil
			}
		}
		return os.ReadFile(name) //nolint:gosec // paths come from diagnostics for user files
	}
}

// expandArgs expands arguments, resolving patterns ending with "/..." to all
// .iota files found recursively under the given directory. Non-pattern
// arguments pass through unchanged.
func expandArgs(args []string, excludes []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if dir, ok := strings.CutSuffix(arg, "/..."); ok {
			if dir == "" {
				dir = "."
			}
			files, err := findSourceFiles(dir)
			if err != nil {
				return nil, fmt.Errorf("expanding %s: %w", arg, err)
			}
			out = append(out, files...)
		} else {
			out = append(out, arg)
		}
	}
	return filterExcludes(out, excludes), nil
}

func findSourceFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Ext(path) == sourceExt {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// filterExcludes drops every path that matches one of the patterns.
func filterExcludes(paths []string, excludes []string) []string {
	if len(excludes) == 0 {
		return paths
	}
	var out []string
	for _, p := range paths {
		if !matchesAny(p, excludes) {
			out = append(out, p)
		}
	}
	return out
}

// matchesAny reports whether a pattern matches the whole path, its base
// name, or any one of its directory components.
func matchesAny(path string, patterns []string) bool {
	components := splitPath(path)
	for _, pat := range patterns {
		if ok, _ := filepath.Match(pat, path); ok {
			return true
		}
		for _, c := range components {
			if ok, _ := filepath.Match(pat, c); ok {
				return true
			}
		}
	}
	return false
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(filepath.ToSlash(filepath.Clean(path)), "/") {
		if p != "" && p != "." {
			parts = append(parts, p)
		}
	}
	return parts
}
