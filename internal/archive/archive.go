// Package archive reads WhatsApp export zip containers: one transcript
// text file plus zero or more media files.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var (
	// ErrUnreadable means the container itself could not be opened.
	ErrUnreadable = errors.New("archive unreadable")
	// ErrNoTranscript means the container holds no transcript text file.
	ErrNoTranscript = errors.New("no transcript found in archive")
)

// Export is an opened chat export. Close it when done.
type Export struct {
	Path string

	zr         *zip.ReadCloser
	transcript *zip.File
	media      []*zip.File
}

// Open validates and opens an export zip, locating the transcript entry
// (`_chat.txt`, falling back to any single top-level .txt file) and the
// media entries.
func Open(zipPath string) (*Export, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, zipPath, err)
	}

	ex := &Export{Path: zipPath, zr: zr}
	var txtFiles []*zip.File

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := path.Base(f.Name)
		switch {
		case strings.HasSuffix(name, "_chat.txt"):
			ex.transcript = f
		case strings.EqualFold(path.Ext(name), ".txt"):
			txtFiles = append(txtFiles, f)
		default:
			ex.media = append(ex.media, f)
		}
	}

	if ex.transcript == nil {
		if len(txtFiles) == 1 {
			ex.transcript = txtFiles[0]
		} else {
			zr.Close()
			return nil, fmt.Errorf("%w: %s", ErrNoTranscript, zipPath)
		}
	} else {
		ex.media = append(ex.media, txtFiles...)
	}

	return ex, nil
}

func (e *Export) Close() error {
	return e.zr.Close()
}

// Transcript reads the full transcript text.
func (e *Export) Transcript() (string, error) {
	rc, err := e.transcript.Open()
	if err != nil {
		return "", fmt.Errorf("open transcript: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return string(data), nil
}

// MediaSet returns the set of media filenames present in the archive.
// Directory prefixes are flattened, matching how ExtractMedia lays the
// files out on disk.
func (e *Export) MediaSet() map[string]bool {
	set := make(map[string]bool, len(e.media))
	for _, f := range e.media {
		set[path.Base(f.Name)] = true
	}
	return set
}

// ExtractMedia copies every media entry into destDir, flattening any
// subdirectories. Returns the number of files written.
func (e *Export) ExtractMedia(destDir string) (int, error) {
	if len(e.media) == 0 {
		return 0, nil
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, fmt.Errorf("create media dir: %w", err)
	}

	written := 0
	for _, f := range e.media {
		if err := extractOne(f, filepath.Join(destDir, path.Base(f.Name))); err != nil {
			return written, fmt.Errorf("extract %s: %w", f.Name, err)
		}
		written++
	}
	return written, nil
}

func extractOne(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
