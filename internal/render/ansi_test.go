package render

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/wabrowse/wabrowse/internal/index"
)

func seedIndexedConversation(t *testing.T) *index.DB {
	t.Helper()
	db, err := index.OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Raw().Exec(
		`INSERT INTO conversations (chat_key, archive_path, title, participants) VALUES (?, ?, ?, ?)`,
		"wa:trip", "/archives/trip.zip", "Trip", "Alice\nBob",
	); err != nil {
		t.Fatal(err)
	}
	rows := []struct {
		seq    int
		sender string
		kind   string
		media  string
		text   string
	}{
		{0, "", "system", "", "Messages and calls are end-to-end encrypted"},
		{1, "Alice", "normal", "", "are we still on for saturday"},
		{2, "Bob", "normal", "", "yes, meeting at the station"},
		{3, "Bob", "normal", "IMG-001.jpg", ""},
		{4, "Alice", "deleted", "", "This message was deleted"},
	}
	for _, r := range rows {
		if _, err := db.Raw().Exec(
			`INSERT INTO messages (chat_key, seq, sender, kind, media, text) VALUES (?, ?, ?, ?, ?, ?)`,
			"wa:trip", r.seq, r.sender, r.kind, r.media, r.text,
		); err != nil {
			t.Fatal(err)
		}
	}
	return db
}

func TestConversationANSI(t *testing.T) {
	db := seedIndexedConversation(t)

	out, hitLine, err := Conversation(db, "wa:trip", ANSIOptions{HitSeq: 2, Context: -1, Query: "station"})
	if err != nil {
		t.Fatalf("Conversation() error = %v", err)
	}

	if !strings.Contains(out, "Trip [wa:trip]") {
		t.Error("header line missing")
	}
	if !strings.Contains(out, "SYSTEM") {
		t.Error("system label missing")
	}
	if !strings.Contains(out, "(message deleted)") {
		t.Error("deleted placeholder missing")
	}
	if !strings.Contains(out, "[media: IMG-001.jpg]") {
		t.Error("media marker missing")
	}
	if !strings.Contains(out, ">> Bob >") {
		t.Error("hit highlight missing")
	}
	if hitLine <= 0 {
		t.Errorf("hitLine = %d, want > 0", hitLine)
	}

	// query keyword wrapped in highlight codes
	if !strings.Contains(out, "station"+colorReset) {
		t.Error("keyword highlight missing")
	}
}

func TestConversationWindow(t *testing.T) {
	db := seedIndexedConversation(t)

	out, _, err := Conversation(db, "wa:trip", ANSIOptions{HitSeq: 2, Context: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "(1 messages before)") {
		t.Errorf("before marker missing in:\n%s", out)
	}
	if !strings.Contains(out, "(1 messages after)") {
		t.Errorf("after marker missing in:\n%s", out)
	}
}

func TestConversationNotFound(t *testing.T) {
	db := seedIndexedConversation(t)
	if _, _, err := Conversation(db, "wa:nope", ANSIOptions{}); err == nil {
		t.Fatal("expected error for unknown chat key")
	}
}

func TestWrapLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  []string
	}{
		{"no wrap needed", "short", 10, []string{"short"}},
		{"plain wrap", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"zero width disables", "abcdefghij", 0, []string{"abcdefghij"}},
		{"empty line", "", 4, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapLine(tt.line, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("wrapLine = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWrapLineSkipsANSICodes(t *testing.T) {
	line := colorDim + "abcd" + colorReset
	got := wrapLine(line, 4)
	if len(got) != 1 {
		t.Fatalf("ANSI codes counted toward width: %q", got)
	}
}

func TestHighlightKeywords(t *testing.T) {
	out := highlightKeywords("the Station platform", "station")
	if !strings.Contains(out, colorHL+"Station"+colorReset) {
		t.Errorf("case-insensitive match failed: %q", out)
	}
	if highlightKeywords("text", "") != "text" {
		t.Error("empty query should be a no-op")
	}
}
