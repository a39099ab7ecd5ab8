package fs

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Resolver locates a paper file under a root directory. Article rows only
// record a file path from ingest time; the transfer flow matches its base
// name anywhere under the papers root.
type Resolver struct {
	root string
}

// NewResolver creates a resolver over the given papers directory.
func NewResolver(root string) *Resolver {
	return &Resolver{root: root}
}

// Resolve returns the first file under the root whose base name matches
// the recorded path, and whether one was found. A direct hit at
// root/<base> wins without walking the tree.
func (r *Resolver) Resolve(filePath string) (string, bool) {
	base := filepath.Base(filePath)
	if base == "." || base == string(filepath.Separator) {
		return "", false
	}

	direct := filepath.Join(r.root, base)
	if info, err := os.Stat(direct); err == nil && !info.IsDir() {
		return direct, true
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(r.root, "**", base))
	if err != nil {
		return "", false
	}
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && !info.IsDir() {
			return m, true
		}
	}
	return "", false
}
