package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckReadableDir(t *testing.T) {
	dir := t.TempDir()
	if err := CheckReadableDir(dir); err != nil {
		t.Errorf("CheckReadableDir(%s): %v", dir, err)
	}
	if err := CheckReadableDir(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing directory")
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0o666); err != nil {
		t.Fatal(err)
	}
	if err := CheckReadableDir(file); err == nil {
		t.Error("expected error for non-directory")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")
	if err := EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	// Idempotent.
	if err := EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir second call: %v", err)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0o666); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDir(file); err == nil {
		t.Error("expected error when a file occupies the path")
	}
}

func TestCheckWritableDir(t *testing.T) {
	dir := t.TempDir()
	if err := CheckWritableDir(dir); err != nil {
		t.Errorf("CheckWritableDir(%s): %v", dir, err)
	}
	if err := CheckWritableDir(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}
