package index

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/wabrowse/wabrowse/internal/archive"
	"github.com/wabrowse/wabrowse/internal/parse"
	"github.com/wabrowse/wabrowse/internal/scan"
)

type Stats struct {
	Scanned int
	Updated int
	Skipped int
	Pruned  int
	Errors  int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d updated=%d skipped=%d pruned=%d errors=%d",
		s.Scanned, s.Updated, s.Skipped, s.Pruned, s.Errors)
}

// ChatKey derives the stable index key for an export archive.
func ChatKey(archivePath string) string {
	base := filepath.Base(archivePath)
	return "wa:" + strings.TrimSuffix(base, filepath.Ext(base))
}

// chatTitle turns an export filename into a display title.
func chatTitle(archivePath string) string {
	base := filepath.Base(archivePath)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	for _, prefix := range []string{"WhatsApp Chat - ", "WhatsApp Chat with "} {
		if t, ok := strings.CutPrefix(title, prefix); ok {
			return t
		}
	}
	return title
}

// IndexAll parses and indexes the given archives, skipping those whose
// mtime and size are unchanged since the last run. When prune is set,
// conversations whose archive no longer appears in the list are removed.
func IndexAll(db *DB, archives []scan.FileInfo, prune bool, logger *slog.Logger) (Stats, error) {
	var stats Stats
	stats.Scanned = len(archives)

	seenKeys := make(map[string]struct{})

	for _, fi := range archives {
		key := ChatKey(fi.Path)
		seenKeys[key] = struct{}{}

		needs, err := needsUpdate(db, key, fi.Mtime, fi.Size)
		if err != nil {
			stats.Errors++
			continue
		}
		if !needs {
			stats.Skipped++
			continue
		}

		if err := indexArchive(db, fi, key); err != nil {
			stats.Errors++
			logger.Warn("index archive failed", "path", fi.Path, "error", err)
			continue
		}
		stats.Updated++
	}

	if prune {
		pruned, err := pruneConversations(db, seenKeys)
		if err != nil {
			return stats, fmt.Errorf("prune: %w", err)
		}
		stats.Pruned = pruned
	}

	return stats, nil
}

func needsUpdate(db *DB, chatKey string, mtime, size int64) (bool, error) {
	info, err := db.GetArchiveInfo(chatKey)
	if err != nil {
		return false, err
	}
	if info == nil {
		return true, nil // new archive
	}
	return info.Mtime != mtime || info.Size != size, nil
}

func indexArchive(db *DB, fi scan.FileInfo, chatKey string) error {
	ex, err := archive.Open(fi.Path)
	if err != nil {
		return err
	}
	defer ex.Close()

	text, err := ex.Transcript()
	if err != nil {
		return err
	}

	res, err := parse.Transcript(text)
	if err != nil {
		return err
	}
	conv := res.Conversation

	// replace any previous rows for this archive
	if err := db.DeleteConversation(chatKey); err != nil {
		return err
	}

	tx, err := db.Raw().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const tsFormat = "2006-01-02T15:04:05"
	first := conv.Messages[0].Timestamp
	last := conv.Messages[len(conv.Messages)-1].Timestamp

	_, err = tx.Exec(
		`INSERT INTO conversations (chat_key, archive_path, title, participants, created_at, updated_at, mtime, size)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		chatKey,
		fi.Path,
		chatTitle(fi.Path),
		strings.Join(conv.Participants, "\n"),
		first.Format(tsFormat),
		last.Format(tsFormat),
		fi.Mtime,
		fi.Size,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO messages (chat_key, seq, ts, sender, kind, media, text, line_number)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range conv.Messages {
		_, err := stmt.Exec(
			chatKey,
			m.Seq,
			m.Timestamp.Format(tsFormat),
			m.Sender,
			string(m.Kind),
			m.MediaRef,
			m.Text(),
			m.Line,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func pruneConversations(db *DB, seenKeys map[string]struct{}) (int, error) {
	allKeys, err := db.AllChatKeys()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for key := range allKeys {
		if _, ok := seenKeys[key]; !ok {
			if err := db.DeleteConversation(key); err != nil {
				return pruned, err
			}
			pruned++
		}
	}
	return pruned, nil
}
