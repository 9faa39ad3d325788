package csv

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DatasetSource opens named dataset files from wherever they live
type DatasetSource interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// DirSource reads dataset files from a local directory
type DirSource struct {
	Dir string
}

// NewDirSource creates a source rooted at a local directory
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

// Verify interface compliance
var _ DatasetSource = (*DirSource)(nil)

// Open opens a file under the source directory
func (s *DirSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	path := filepath.Join(s.Dir, name)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return file, nil
}
