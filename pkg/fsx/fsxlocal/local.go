package fsxlocal

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/talentrail/screening/pkg/fsx"
)

// LocalFileSystem implements fsx.FileSystem on the local disk,
// rooted at a base directory. Used for development and tests.
type LocalFileSystem struct {
	baseDir string
}

// NewLocalFileSystem creates a file system rooted at baseDir
func NewLocalFileSystem(baseDir string) fsx.FileSystem {
	return &LocalFileSystem{baseDir: baseDir}
}

func (l *LocalFileSystem) abs(p string) string {
	return filepath.Join(l.baseDir, filepath.FromSlash(p))
}

func (l *LocalFileSystem) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(l.abs(path))
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	return data, nil
}

func (l *LocalFileSystem) WriteFile(_ context.Context, path string, data []byte) error {
	full := l.abs(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write file %s: %w", path, err)
	}
	return nil
}

func (l *LocalFileSystem) WriteFileStream(ctx context.Context, path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read stream for %s: %w", path, err)
	}
	return l.WriteFile(ctx, path, data)
}

func (l *LocalFileSystem) DeleteFile(_ context.Context, path string) error {
	if err := os.Remove(l.abs(path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file %s: %w", path, err)
	}
	return nil
}

func (l *LocalFileSystem) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(l.abs(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return true, nil
}

func (l *LocalFileSystem) Join(parts ...string) string {
	return filepath.ToSlash(filepath.Join(parts...))
}
