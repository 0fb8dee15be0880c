package inventory

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Inventory groups every project file relevant to a migration check into
// typed buckets. It is built once per run and never mutated afterwards.
//
// Bucket membership by extension is exclusive; the vendor bucket is
// path-based and additive, so a .datasource file under a vendor/ directory
// appears in both Datasources and Vendor.
type Inventory struct {
	Root string

	Datasources []string
	Pipes       []string
	Endpoints   []string
	Includes    []string
	Vendor      []string

	// VersionMarkers lists paths that look like version tagging artifacts:
	// any root-relative path containing "version" in a file or directory
	// segment, or carrying the .mdc extension.
	VersionMarkers []string
}

// Scan walks the full subtree rooted at root and classifies every regular
// file. A missing root is not an error: callers get an empty inventory and
// must treat it as "nothing to check".
func Scan(root string) (*Inventory, error) {
	inv := &Inventory{Root: root}

	if _, err := os.Stat(root); os.IsNotExist(err) {
		return inv, nil
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access %q: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}

		switch filepath.Ext(path) {
		case ".datasource":
			inv.Datasources = append(inv.Datasources, path)
		case ".pipe":
			inv.Pipes = append(inv.Pipes, path)
		case ".endpoint":
			inv.Endpoints = append(inv.Endpoints, path)
		case ".incl":
			inv.Includes = append(inv.Includes, path)
		}

		if hasVendorSegment(path) {
			inv.Vendor = append(inv.Vendor, path)
		}
		if isVersionMarker(relativeTo(root, path)) {
			inv.VersionMarkers = append(inv.VersionMarkers, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan project folder %q: %w", root, err)
	}

	return inv, nil
}

// Total returns the number of bucketed files, counting dual-bucket members
// once per bucket.
func (inv *Inventory) Total() int {
	return len(inv.Datasources) + len(inv.Pipes) + len(inv.Endpoints) +
		len(inv.Includes) + len(inv.Vendor)
}

// DefinitionFiles returns the pipe, datasource and endpoint files, in that
// order. These are the files that may carry inline INCLUDE statements.
func (inv *Inventory) DefinitionFiles() []string {
	all := make([]string, 0, len(inv.Pipes)+len(inv.Datasources)+len(inv.Endpoints))
	all = append(all, inv.Pipes...)
	all = append(all, inv.Datasources...)
	all = append(all, inv.Endpoints...)
	return all
}

func hasVendorSegment(path string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if segment == "vendor" {
			return true
		}
	}
	return false
}

// relativeTo strips the scanned root from a path so that a root directory
// whose own name contains "version" does not taint every file under it.
func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

// isVersionMarker matches the path relative to the root, so version tags kept
// in a directory like versions/ count through the directory segment.
func isVersionMarker(relPath string) bool {
	if filepath.Ext(relPath) == ".mdc" {
		return true
	}
	return strings.Contains(strings.ToLower(filepath.ToSlash(relPath)), "version")
}
