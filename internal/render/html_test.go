package render

import (
	"strings"
	"testing"
	"time"

	"github.com/wabrowse/wabrowse/internal/parse"
)

func msgAt(seq int, day int, hour int, sender string, kind parse.Kind, body ...string) parse.Message {
	return parse.Message{
		Seq:       seq,
		Timestamp: time.Date(2024, 1, day, hour, 0, 0, 0, time.Local),
		Sender:    sender,
		Kind:      kind,
		Body:      body,
	}
}

func renderToString(t *testing.T, opts Options, conv *parse.Conversation, media map[string]bool) string {
	t.Helper()
	var b strings.Builder
	if err := NewHTML(opts).Render(&b, conv, media); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return b.String()
}

func TestRenderBasicDocument(t *testing.T) {
	conv := &parse.Conversation{
		Participants: []string{"Alice", "Bob"},
		Messages: []parse.Message{
			msgAt(0, 12, 9, "Alice", parse.KindNormal, "hello *there*"),
			msgAt(1, 12, 10, "Alice", parse.KindNormal, "again"),
			msgAt(2, 12, 11, "Bob", parse.KindNormal, "hi"),
			msgAt(3, 13, 9, "Bob", parse.KindNormal, "next day"),
		},
	}

	out := renderToString(t, Options{Title: "Trip"}, conv, nil)

	if !strings.Contains(out, "<title>Trip</title>") {
		t.Error("missing title")
	}
	if !strings.Contains(out, `data-sender="Alice"`) {
		t.Error("missing data-sender attribute")
	}
	if !strings.Contains(out, "<strong>there</strong>") {
		t.Error("inline formatting not converted")
	}

	// one divider per distinct date
	if got := strings.Count(out, `class="date-divider" data-date=`); got != 2 {
		t.Errorf("got %d date dividers, want 2", got)
	}

	// second consecutive Alice message is grouped, Bob's first is not
	if got := strings.Count(out, " grouped"); got != 1 {
		t.Errorf("got %d grouped messages, want 1", got)
	}

	// every message starts as received; the control program applies perspective
	if strings.Contains(out, `class="message sent`) {
		t.Error("renderer must not pre-assign the sent class")
	}
}

func TestRenderPerspective(t *testing.T) {
	conv := &parse.Conversation{
		Participants: []string{"Alice", "Bob"},
		Messages:     []parse.Message{msgAt(0, 12, 9, "Alice", parse.KindNormal, "hi")},
	}

	out := renderToString(t, Options{DefaultPerspective: "Bob"}, conv, nil)
	if !strings.Contains(out, `<option value="Bob" selected>`) {
		t.Error("configured perspective not selected")
	}
	if !strings.Contains(out, `var CONFIG = {"defaultPerspective":"Bob"};`) {
		t.Error("perspective not injected into control config")
	}

	// unknown perspective falls back to the first participant
	out = renderToString(t, Options{DefaultPerspective: "Mallory"}, conv, nil)
	if !strings.Contains(out, `var CONFIG = {"defaultPerspective":"Alice"};`) {
		t.Error("unknown perspective should fall back to first participant")
	}
}

func TestRenderMedia(t *testing.T) {
	present := msgAt(0, 12, 9, "Alice", parse.KindNormal)
	present.MediaRef = "IMG-001.jpg"
	missing := msgAt(1, 12, 10, "Bob", parse.KindNormal)
	missing.MediaRef = "VID-002.mp4"

	conv := &parse.Conversation{
		Participants: []string{"Alice", "Bob"},
		Messages:     []parse.Message{present, missing},
	}
	media := map[string]bool{"IMG-001.jpg": true, "unreferenced.png": true}

	out := renderToString(t, Options{}, conv, media)

	if !strings.Contains(out, `<img src="media/IMG-001.jpg"`) {
		t.Error("present image not rendered")
	}
	if !strings.Contains(out, "Missing media: VID-002.mp4") {
		t.Error("missing media placeholder absent")
	}
	if !strings.Contains(out, "Additional media") {
		t.Error("unreferenced media section absent")
	}
	if !strings.Contains(out, `<img src="media/unreferenced.png"`) {
		t.Error("unreferenced media not listed")
	}
}

func TestRenderDeletedAndSystem(t *testing.T) {
	conv := &parse.Conversation{
		Participants: []string{"Alice"},
		Messages: []parse.Message{
			msgAt(0, 12, 9, "", parse.KindSystem, "Alice created group \"Trip\""),
			msgAt(1, 12, 10, "Alice", parse.KindDeleted, "This message was deleted"),
			msgAt(2, 12, 11, "Alice", parse.KindEdited, "fixed"),
		},
	}

	out := renderToString(t, Options{}, conv, nil)

	if !strings.Contains(out, "message received system") {
		t.Error("system class missing")
	}
	if !strings.Contains(out, "message received deleted") {
		t.Error("deleted class missing")
	}
	if !strings.Contains(out, "<p>This message was deleted</p>") {
		t.Error("deleted body not normalized")
	}
	if !strings.Contains(out, `<div class="edited-label">Edited</div>`) {
		t.Error("edited label missing")
	}
}

func TestMediaKind(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"a.JPG", "image"},
		{"b.webp", "image"},
		{"c.mp4", "video"},
		{"d.opus", "audio"},
		{"e.pdf", "file"},
		{"noext", "file"},
	}
	for _, tt := range tests {
		if got := mediaKind(tt.name); got != tt.want {
			t.Errorf("mediaKind(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
