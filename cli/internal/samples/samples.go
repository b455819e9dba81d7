// ABOUTME: Built-in sample plans and discovery of plan files on disk
// ABOUTME: Samples are embedded so the CLI works without a source checkout

package samples

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed plans/*.yaml
var planFS embed.FS

// PlanFile represents a discovered plan file
type PlanFile struct {
	Name string // Filename (e.g., "edge-2027.yaml")
	Path string // Full path to the file
}

// planExtensions lists the file types a plan may use
var planExtensions = map[string]bool{".yaml": true, ".yml": true, ".json": true}

// IsPlanFile reports whether name has a plan file extension
func IsPlanFile(name string) bool {
	return planExtensions[strings.ToLower(filepath.Ext(name))]
}

// Discover finds all plan files in the given directory, sorted by name
func Discover(dir string) ([]PlanFile, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []PlanFile{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := []PlanFile{}
	for _, entry := range entries {
		if entry.IsDir() || !IsPlanFile(entry.Name()) {
			continue
		}
		files = append(files, PlanFile{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// ExpandPaths replaces every directory argument with the plan files it contains
func ExpandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		files, err := Discover(arg)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", arg, err)
		}
		for _, f := range files {
			paths = append(paths, f.Path)
		}
	}
	return paths, nil
}

// Names lists the built-in sample plans without extension
func Names() []string {
	entries, _ := fs.ReadDir(planFS, "plans")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Read returns the contents of a built-in sample plan
func Read(name string) ([]byte, error) {
	data, err := planFS.ReadFile("plans/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown sample %q, available: %s", name, strings.Join(Names(), ", "))
	}
	return data, nil
}
