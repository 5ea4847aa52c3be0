package assets

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskSource serves files below a local directory. Lookups go through
// os.Root so names cannot escape the directory.
type DiskSource struct {
	dir string
}

// NewDiskSource constructs a source rooted at dir.
func NewDiskSource(dir string) *DiskSource {
	return &DiskSource{dir: dir}
}

// Read implements Source.
func (s *DiskSource) Read(_ context.Context, name string) ([]byte, error) {
	root, err := os.OpenRoot(s.dir)
	if err != nil {
		return nil, fmt.Errorf("open asset root: %w", err)
	}
	defer root.Close()

	// Missing files, permission problems and names escaping the root all read as absent.
	f, err := root.Open(filepath.FromSlash(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, ErrNotFound
	}
	return io.ReadAll(f)
}

var _ Source = (*DiskSource)(nil)
