package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// sourceExtensions lists the file suffixes collectSourceFiles treats as TSL
// source when walking a directory argument.
var sourceExtensions = []string{".ts", ".tsx"}

// collectSourceFiles expands a mix of file and directory arguments into a
// sorted, de-duplicated list of source file paths. A bare file argument is
// always kept even if its extension isn't in sourceExtensions: the user
// named it explicitly.
func collectSourceFiles(args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if _, ok := seen[arg]; !ok {
				seen[arg] = struct{}{}
				files = append(files, arg)
			}
			continue
		}
		found, err := listSourceFiles(arg)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if _, ok := seen[f]; !ok {
				seen[f] = struct{}{}
				files = append(files, f)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func hasSourceExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range sourceExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories and common build folders
			if len(name) > 1 && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if name == "node_modules" || name == "dist" || name == "build" {
				return filepath.SkipDir
			}
			return nil
		}
		if hasSourceExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func displayFileList(files []string, baseDir string) []string {
	if len(files) == 0 {
		return files
	}
	normalized := make([]string, 0, len(files))
	seen := make(map[string]struct{}, len(files))

	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
	}

	for _, file := range files {
		if file == "" {
			continue
		}
		path := filepath.Clean(file)
		if base != "" {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
				path = rel
			}
		}
		path = filepath.ToSlash(path)
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		normalized = append(normalized, path)
	}
	sort.Strings(normalized)
	return normalized
}
