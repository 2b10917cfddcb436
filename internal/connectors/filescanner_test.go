package connectors

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
}

func TestDiscoverParquet(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.parquet"))
	touch(t, filepath.Join(dir, "b.PARQUET"))
	touch(t, filepath.Join(dir, "notes.csv"))
	touch(t, filepath.Join(dir, "nested", "c.parquet"))

	files, err := DiscoverParquet(dir, false)
	if err != nil {
		t.Fatalf("DiscoverParquet() failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("Expected 2 files without recursion, got %d", len(files))
	}

	files, err = DiscoverParquet(dir, true)
	if err != nil {
		t.Fatalf("DiscoverParquet(recursive) failed: %v", err)
	}
	if len(files) != 3 {
		t.Errorf("Expected 3 files with recursion, got %d", len(files))
	}
}

func TestDiscoverParquetNoMatches(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "notes.csv"))

	if _, err := DiscoverParquet(dir, true); err == nil {
		t.Error("Expected an error when no parquet files are found")
	}
}

func TestDiscoverParquetInvalidRoot(t *testing.T) {
	if _, err := DiscoverParquet("", false); err == nil {
		t.Error("Expected an error for an empty root")
	}
	if _, err := DiscoverParquet(filepath.Join(t.TempDir(), "missing"), false); err == nil {
		t.Error("Expected an error for a missing directory")
	}
}
