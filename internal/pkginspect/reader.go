// Package pkginspect inspects model packages on disk without ever failing.
//
// A "package" is a directory; a "module" is a regular file carrying one of
// the recognized module extensions (an HCL bundle manifest or a Go source
// file). All failure modes (absent paths, permission errors, stray files)
// are folded into boolean state on the Reader so that callers can probe
// arbitrary names from plugin metadata without error handling at every step.
package pkginspect

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// moduleExtensions are the file suffixes recognized as loadable modules.
var moduleExtensions = []string{".hcl", ".go"}

// Reader reports what a path under a plugin tree actually is.
type Reader struct {
	// Path is the inspected path, empty when the Reader was built from a
	// blank name.
	Path string

	// IsPackage is true when the path is a directory.
	IsPackage bool

	// IsModule is true when the path is a regular file with a recognized
	// module extension.
	IsModule bool

	// Exists is true when the path names a package or a module.
	Exists bool

	// HasError is true when inspection itself failed (e.g. a permission
	// error), as opposed to the path simply not existing.
	HasError bool

	// Contents lists the names of a package's immediate children: sub-package
	// directory names and module file names. Empty for non-packages.
	Contents []string
}

// NewReader inspects path. It never returns an error and never panics; a
// blank path yields a Reader with all flags false.
func NewReader(path string) *Reader {
	r := &Reader{Path: path}
	if strings.TrimSpace(path) == "" {
		r.Path = ""
		return r
	}

	info, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.HasError = true
		}
		// A file with no extension could be a typo for a missing
		// sub-package; check whether the parent package actually lists it.
		if parentListsEntry(path) {
			r.Exists = true
			r.HasError = true
		}
		return r
	}

	if info.IsDir() {
		r.IsPackage = true
		r.Exists = true
		r.Contents = listContents(path)
		return r
	}

	if hasModuleExtension(info.Name()) {
		r.IsModule = true
		r.Exists = true
	} else {
		// A plain file with no module extension often means a mistyped
		// sub-package name; report it as an inspection error, not a module.
		r.HasError = true
	}
	return r
}

// parentListsEntry reports whether the parent directory lists the base name
// of path as one of its entries. Used to distinguish "not found at all"
// from "found something that is neither a package nor a module".
func parentListsEntry(path string) bool {
	parent := filepath.Dir(path)
	if parent == path {
		return false
	}
	entries, err := os.ReadDir(parent)
	if err != nil {
		return false
	}
	base := filepath.Base(path)
	for _, entry := range entries {
		if entry.Name() == base {
			return true
		}
	}
	return false
}

func listContents(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || hasModuleExtension(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

func hasModuleExtension(name string) bool {
	for _, ext := range moduleExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
