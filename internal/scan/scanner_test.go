package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRoot(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a.zip"))
	mustWrite(t, filepath.Join(dir, "sub", "b.ZIP"))
	mustWrite(t, filepath.Join(dir, "notes.txt"))

	files, err := Root(dir)
	if err != nil {
		t.Fatalf("Root() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	for _, f := range files {
		if f.Size == 0 || f.Mtime == 0 {
			t.Errorf("file %s missing stat info: %+v", f.Path, f)
		}
	}
}

func TestRootMissingDir(t *testing.T) {
	files, err := Root(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Root() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("got %d files, want 0", len(files))
	}
}

func TestStat(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.zip")
	mustWrite(t, p)

	fi, err := Stat(p)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if fi.Path != p || fi.Size == 0 {
		t.Errorf("fi = %+v", fi)
	}

	if _, err := Stat(filepath.Join(dir, "missing.zip")); err == nil {
		t.Error("Stat() expected error for missing file")
	}
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}
}
