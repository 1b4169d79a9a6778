package fsxlocal

import (
	"context"
	"strings"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	fs := NewLocalFileSystem(t.TempDir())
	ctx := context.Background()

	path := fs.Join("screenings", "job-1", "resume.pdf")
	if err := fs.WriteFile(ctx, path, []byte("hello")); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	data, err := fs.ReadFile(ctx, path)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("unexpected content: %q", data)
	}

	ok, err := fs.Exists(ctx, path)
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v; want true, nil", ok, err)
	}
}

func TestWriteFileStream(t *testing.T) {
	fs := NewLocalFileSystem(t.TempDir())
	ctx := context.Background()

	if err := fs.WriteFileStream(ctx, "a/b.txt", strings.NewReader("stream")); err != nil {
		t.Fatalf("WriteFileStream returned error: %v", err)
	}

	data, err := fs.ReadFile(ctx, "a/b.txt")
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if string(data) != "stream" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestDeleteMissingFileIsNotAnError(t *testing.T) {
	fs := NewLocalFileSystem(t.TempDir())
	if err := fs.DeleteFile(context.Background(), "does/not/exist.pdf"); err != nil {
		t.Fatalf("DeleteFile on missing file returned error: %v", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	fs := NewLocalFileSystem(t.TempDir())
	if _, err := fs.ReadFile(context.Background(), "missing.pdf"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
