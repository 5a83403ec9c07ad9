// Package convert runs the full export-to-HTML pipeline: open the archive,
// parse the transcript, render the document, extract media.
package convert

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wabrowse/wabrowse/internal/archive"
	"github.com/wabrowse/wabrowse/internal/parse"
	"github.com/wabrowse/wabrowse/internal/render"
)

// Stats summarizes one conversion.
type Stats struct {
	Messages     int
	Participants int
	Skipped      int
	Media        int
	MissingMedia int
	OutputPath   string
}

func (s Stats) String() string {
	return fmt.Sprintf("%d messages, %d participants, %d skipped lines, %d media files (%d missing)",
		s.Messages, s.Participants, s.Skipped, s.Media, s.MissingMedia)
}

type Options struct {
	Title              string
	DefaultPerspective string
	MediaDir           string // relative media dir name under outDir
}

// Run converts one export archive into outDir/chat.html plus an extracted
// media directory. outDir is created if missing.
func Run(archivePath, outDir string, opts Options, logger *slog.Logger) (Stats, error) {
	var stats Stats

	ex, err := archive.Open(archivePath)
	if err != nil {
		return stats, err
	}
	defer ex.Close()

	text, err := ex.Transcript()
	if err != nil {
		return stats, err
	}

	result, err := parse.Transcript(text)
	if err != nil {
		return stats, fmt.Errorf("parse %s: %w", archivePath, err)
	}
	for _, skip := range result.Skipped {
		logger.Warn("skipped malformed line",
			"archive", filepath.Base(archivePath),
			"line", skip.Line,
			"text", skip.Text)
	}

	if opts.MediaDir == "" {
		opts.MediaDir = "media"
	}
	if opts.Title == "" {
		opts.Title = titleFromPath(archivePath)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return stats, fmt.Errorf("create output dir: %w", err)
	}

	media := ex.MediaSet()
	outPath := filepath.Join(outDir, "chat.html")
	out, err := os.Create(outPath)
	if err != nil {
		return stats, fmt.Errorf("create %s: %w", outPath, err)
	}

	r := render.NewHTML(render.Options{
		Title:              opts.Title,
		DefaultPerspective: opts.DefaultPerspective,
		MediaDir:           opts.MediaDir,
	})
	if err := r.Render(out, result.Conversation, media); err != nil {
		out.Close()
		return stats, fmt.Errorf("render: %w", err)
	}
	if err := out.Close(); err != nil {
		return stats, err
	}

	extracted, err := ex.ExtractMedia(filepath.Join(outDir, opts.MediaDir))
	if err != nil {
		return stats, fmt.Errorf("extract media: %w", err)
	}

	stats.Messages = len(result.Conversation.Messages)
	stats.Participants = len(result.Conversation.Participants)
	stats.Skipped = len(result.Skipped)
	stats.Media = extracted
	stats.OutputPath = outPath
	for _, m := range result.Conversation.Messages {
		if m.MediaRef != "" && !media[m.MediaRef] {
			stats.MissingMedia++
		}
	}

	logger.Info("converted archive",
		"archive", filepath.Base(archivePath),
		"output", outPath,
		"messages", stats.Messages,
		"media", stats.Media)

	return stats, nil
}

func titleFromPath(archivePath string) string {
	base := filepath.Base(archivePath)
	base = base[:len(base)-len(filepath.Ext(base))]
	return base
}
