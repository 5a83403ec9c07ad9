package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeZip builds an export zip in dir with the given entries.
func writeZip(t *testing.T, dir, name string, entries map[string]string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for entry, content := range entries {
		w, err := zw.Create(entry)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestOpenFindsChatTranscript(t *testing.T) {
	dir := t.TempDir()
	p := writeZip(t, dir, "export.zip", map[string]string{
		"_chat.txt":   "transcript body",
		"IMG-001.jpg": "img",
		"notes.txt":   "some other text file",
	})

	ex, err := Open(p)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer ex.Close()

	text, err := ex.Transcript()
	if err != nil {
		t.Fatalf("Transcript() error = %v", err)
	}
	if text != "transcript body" {
		t.Errorf("transcript = %q", text)
	}

	// the extra txt file counts as media once _chat.txt is the transcript
	media := ex.MediaSet()
	if !media["IMG-001.jpg"] || !media["notes.txt"] {
		t.Errorf("media set = %v", media)
	}
}

func TestOpenSingleTxtFallback(t *testing.T) {
	dir := t.TempDir()
	p := writeZip(t, dir, "export.zip", map[string]string{
		"WhatsApp Chat with Alice.txt": "fallback transcript",
	})

	ex, err := Open(p)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer ex.Close()

	text, err := ex.Transcript()
	if err != nil {
		t.Fatal(err)
	}
	if text != "fallback transcript" {
		t.Errorf("transcript = %q", text)
	}
}

func TestOpenNoTranscript(t *testing.T) {
	dir := t.TempDir()
	p := writeZip(t, dir, "export.zip", map[string]string{
		"IMG-001.jpg": "img",
	})

	if _, err := Open(p); !errors.Is(err, ErrNoTranscript) {
		t.Errorf("Open() error = %v, want ErrNoTranscript", err)
	}
}

func TestOpenUnreadable(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.zip")); !errors.Is(err, ErrUnreadable) {
		t.Errorf("Open() error = %v, want ErrUnreadable", err)
	}
}

func TestExtractMediaFlattens(t *testing.T) {
	dir := t.TempDir()
	p := writeZip(t, dir, "export.zip", map[string]string{
		"_chat.txt":         "t",
		"sub/IMG-001.jpg":   "one",
		"other/VID-002.mp4": "two",
	})

	ex, err := Open(p)
	if err != nil {
		t.Fatal(err)
	}
	defer ex.Close()

	dest := filepath.Join(dir, "media")
	n, err := ex.ExtractMedia(dest)
	if err != nil {
		t.Fatalf("ExtractMedia() error = %v", err)
	}
	if n != 2 {
		t.Errorf("extracted %d files, want 2", n)
	}

	for _, name := range []string{"IMG-001.jpg", "VID-002.mp4"} {
		if _, err := os.Stat(filepath.Join(dest, name)); err != nil {
			t.Errorf("flattened file %s missing: %v", name, err)
		}
	}
}
