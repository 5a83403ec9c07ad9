package convert

import (
	"archive/zip"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testTranscript = `12/01/2024, 14:03 - Alice: Hello Bob
12/01/2024, 14:04 - Bob: Hi Alice
12/01/2024, 14:05 - Alice: <attached: IMG-001.jpg>
12/01/2024, 14:06 - broken header line
`

func writeExport(t *testing.T, dir string) string {
	t.Helper()
	p := filepath.Join(dir, "WhatsApp Chat with Alice.zip")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, content := range map[string]string{
		"_chat.txt":   testTranscript,
		"IMG-001.jpg": "jpeg bytes",
		"IMG-999.jpg": "never referenced",
	} {
		w, err := zw.Create(name)
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

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	archivePath := writeExport(t, dir)
	outDir := filepath.Join(dir, "out")

	stats, err := Run(archivePath, outDir, Options{}, testLogger())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.Messages != 3 {
		t.Errorf("messages = %d, want 3", stats.Messages)
	}
	if stats.Participants != 2 {
		t.Errorf("participants = %d, want 2", stats.Participants)
	}
	if stats.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", stats.Skipped)
	}
	if stats.Media != 2 {
		t.Errorf("media = %d, want 2", stats.Media)
	}
	if stats.MissingMedia != 0 {
		t.Errorf("missing media = %d, want 0", stats.MissingMedia)
	}

	data, err := os.ReadFile(stats.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	html := string(data)

	// default title comes from the archive filename
	if !strings.Contains(html, "<title>WhatsApp Chat with Alice</title>") {
		t.Error("default title missing")
	}
	if !strings.Contains(html, `<img src="media/IMG-001.jpg"`) {
		t.Error("referenced media not rendered")
	}
	if !strings.Contains(html, "Additional media") {
		t.Error("unreferenced media section missing")
	}

	for _, name := range []string{"IMG-001.jpg", "IMG-999.jpg"} {
		if _, err := os.Stat(filepath.Join(outDir, "media", name)); err != nil {
			t.Errorf("media file %s not extracted: %v", name, err)
		}
	}
}

func TestRunUnreadableArchive(t *testing.T) {
	dir := t.TempDir()
	if _, err := Run(filepath.Join(dir, "missing.zip"), filepath.Join(dir, "out"), Options{}, testLogger()); err == nil {
		t.Fatal("Run() expected error for missing archive")
	}
}
