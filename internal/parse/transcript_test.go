package parse

import (
	"errors"
	"testing"
)

const sampleTranscript = `12/01/2024, 14:03 - Messages and calls are end-to-end encrypted. No one outside of this chat can read them.
12/01/2024, 14:03 - Alice: Hello Bob
12/01/2024, 14:04 - Bob: Hi Alice
how are you?
12/01/2024, 14:05 - Alice: <attached: IMG-001.jpg>
12/01/2024, 14:06 - Bob: This message was deleted
13/01/2024, 09:00 - Alice: new day
`

func TestTranscript(t *testing.T) {
	res, err := Transcript(sampleTranscript)
	if err != nil {
		t.Fatalf("Transcript() error = %v", err)
	}

	conv := res.Conversation
	if got := len(conv.Messages); got != 6 {
		t.Fatalf("got %d messages, want 6", got)
	}
	if len(res.Skipped) != 0 {
		t.Errorf("got %d skipped lines, want 0", len(res.Skipped))
	}

	// system sender excluded, names sorted
	want := []string{"Alice", "Bob"}
	if len(conv.Participants) != len(want) {
		t.Fatalf("participants = %v, want %v", conv.Participants, want)
	}
	for i := range want {
		if conv.Participants[i] != want[i] {
			t.Errorf("participant[%d] = %q, want %q", i, conv.Participants[i], want[i])
		}
	}

	// multiline body joined in order
	if got := conv.Messages[2].Text(); got != "Hi Alice\nhow are you?" {
		t.Errorf("multiline text = %q", got)
	}

	// seq assigned in encounter order
	for i, m := range conv.Messages {
		if m.Seq != i {
			t.Errorf("message %d has Seq %d", i, m.Seq)
		}
	}
}

func TestTranscriptSkipsMalformedLines(t *testing.T) {
	text := "12/01/2024, 14:03 - Alice: ok\n" +
		"12/01/2024, 14:04 - garbled header without sender\n" +
		"12/01/2024, 14:05 - Bob: still here\n"

	res, err := Transcript(text)
	if err != nil {
		t.Fatalf("Transcript() error = %v", err)
	}
	if got := len(res.Conversation.Messages); got != 2 {
		t.Errorf("got %d messages, want 2", got)
	}
	if got := len(res.Skipped); got != 1 {
		t.Fatalf("got %d skipped, want 1", got)
	}
	if res.Skipped[0].Line != 2 {
		t.Errorf("skipped line = %d, want 2", res.Skipped[0].Line)
	}
}

func TestTranscriptEmpty(t *testing.T) {
	for _, text := range []string{"", "no headers here\njust noise\n"} {
		_, err := Transcript(text)
		if !errors.Is(err, ErrEmptyTranscript) {
			t.Errorf("Transcript(%q) error = %v, want ErrEmptyTranscript", text, err)
		}
	}
}
