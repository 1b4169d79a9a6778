package fsx

import (
	"context"
	"io"
)

// FileReader reads stored files by path
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// FileSystem is the storage abstraction used for uploaded documents.
// Paths are logical: implementations decide how they map to buckets or disks.
type FileSystem interface {
	FileReader

	// WriteFile stores data at path, creating intermediate segments as needed
	WriteFile(ctx context.Context, path string, data []byte) error

	// WriteFileStream stores the reader's content at path
	WriteFileStream(ctx context.Context, path string, r io.Reader) error

	// DeleteFile removes the file at path; missing files are not an error
	DeleteFile(ctx context.Context, path string) error

	// Exists reports whether a file is stored at path
	Exists(ctx context.Context, path string) (bool, error)

	// Join combines path segments using the implementation's separator
	Join(parts ...string) string
}
