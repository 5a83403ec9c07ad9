package parse

import "time"

// Kind classifies a transcript message. Deleted and Edited are ordinary
// user messages that carry a sentinel recognized from the body text.
type Kind string

const (
	KindNormal  Kind = "normal"
	KindSystem  Kind = "system"
	KindDeleted Kind = "deleted"
	KindEdited  Kind = "edited"
)

// Message is one transcript entry. Messages are built once during the parse
// pass and never mutated afterwards.
type Message struct {
	Seq       int // position in the conversation; the sole ordering key
	Timestamp time.Time
	Sender    string // empty for system messages
	Kind      Kind
	Body      []string // body lines, continuation lines included
	MediaRef  string   // attachment filename, "" for text-only messages
	Line      int      // 1-based header line number in the transcript
}

// Text joins the body lines with embedded newlines preserved.
func (m Message) Text() string {
	if len(m.Body) == 0 {
		return ""
	}
	s := m.Body[0]
	for _, l := range m.Body[1:] {
		s += "\n" + l
	}
	return s
}

// HasText reports whether the message has any non-empty body text.
func (m Message) HasText() bool {
	for _, l := range m.Body {
		if l != "" {
			return true
		}
	}
	return false
}

// Conversation is the ordered message sequence plus the set of distinct
// participant names observed. The participant set is derived from the
// messages, never entered independently.
type Conversation struct {
	Messages     []Message
	Participants []string // sorted, system messages excluded
}

// Record is a raw (header, body) pair produced by the tokenizer, before
// classification.
type Record struct {
	Line   int    // 1-based line number of the header
	Header string // the full header line
	Body   []string
}
