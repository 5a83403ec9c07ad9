package parse

import (
	"errors"
	"sort"
)

// ErrEmptyTranscript is returned when no message records could be recovered
// from the input; there is nothing to render.
var ErrEmptyTranscript = errors.New("no messages found in transcript")

// Result is the outcome of a full parse pass: the immutable conversation
// plus the per-line failures that were skipped along the way.
type Result struct {
	Conversation *Conversation
	Skipped      []*MalformedLineError
}

// Transcript runs the full single-pass pipeline over raw transcript text:
// tokenize, build, collect participants. Malformed header lines are
// collected in Result.Skipped, never fatal; only a transcript with no
// usable records at all fails, with ErrEmptyTranscript.
func Transcript(text string) (*Result, error) {
	records := Tokenize(text)
	if len(records) == 0 {
		return nil, ErrEmptyTranscript
	}

	res := &Result{Conversation: &Conversation{}}
	seen := make(map[string]bool)

	for _, rec := range records {
		msg, err := BuildMessage(rec, len(res.Conversation.Messages))
		if err != nil {
			var mle *MalformedLineError
			if errors.As(err, &mle) {
				res.Skipped = append(res.Skipped, mle)
				continue
			}
			return nil, err
		}
		res.Conversation.Messages = append(res.Conversation.Messages, msg)
		if msg.Kind != KindSystem && msg.Sender != "" && !seen[msg.Sender] {
			seen[msg.Sender] = true
			res.Conversation.Participants = append(res.Conversation.Participants, msg.Sender)
		}
	}

	if len(res.Conversation.Messages) == 0 {
		return nil, ErrEmptyTranscript
	}

	sort.Strings(res.Conversation.Participants)
	return res, nil
}
