package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Sentinel tokens the export format uses. These are fixed literal strings
// (locale-fixed, English exports); recognition is exact-match, not fuzzy.
var (
	deletedSentinels = []string{
		"This message was deleted",
		"You deleted this message",
	}

	editedMarkers = []string{
		"<This message was edited>",
		"(edited)",
	}

	systemNotices = []string{
		"Messages and calls are end-to-end encrypted",
		"created group",
		"created this group",
		"added",
		"removed",
		"left",
		"joined using this group's invite link",
		"changed the subject",
		"changed this group's icon",
		"changed their phone number",
		"security code changed",
		"You're now an admin",
	}
)

var attachmentRe = regexp.MustCompile(`<attached:\s*([^>]+?)\s*>`)

// MalformedLineError reports a header line whose date/time prefix matched
// but whose remainder could not be parsed as sender+text. The record is
// skipped; parsing continues.
type MalformedLineError struct {
	Line int
	Text string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed header at line %d: %q", e.Line, e.Text)
}

// BuildMessage classifies one raw record and produces a Message. seq is the
// position the message will occupy in the conversation.
//
// Classification rules, first match wins:
//  1. body equals a deleted-message sentinel  -> Deleted
//  2. header has no sender delimiter but matches a system notice -> System
//  3. body ends with an edited marker (stripped) -> Edited
//  4. otherwise -> Normal
func BuildMessage(rec Record, seq int) (Message, error) {
	dateStr, timeStr, rest, ok := splitHeader(rec.Header)
	if !ok {
		// tokenizer only hands us header matches; defend anyway
		return Message{}, &MalformedLineError{Line: rec.Line, Text: rec.Header}
	}

	ts, err := parseTimestamp(dateStr, timeStr)
	if err != nil {
		return Message{}, &MalformedLineError{Line: rec.Line, Text: rec.Header}
	}

	msg := Message{
		Seq:       seq,
		Timestamp: ts,
		Kind:      KindNormal,
		Line:      rec.Line,
	}

	sender, first, hasSender := strings.Cut(rest, ": ")
	if !hasSender {
		// trailing-colon header with empty first body line
		if s, okc := strings.CutSuffix(rest, ":"); okc && s != "" {
			sender, first, hasSender = s, "", true
		}
	}

	if hasSender {
		msg.Sender = strings.TrimSpace(sender)
		if first != "" {
			msg.Body = append(msg.Body, first)
		}
		msg.Body = append(msg.Body, rec.Body...)
	} else {
		if !isSystemNotice(rest) {
			return Message{}, &MalformedLineError{Line: rec.Line, Text: rec.Header}
		}
		msg.Kind = KindSystem
		msg.Body = append([]string{rest}, rec.Body...)
		return msg, nil
	}

	if isDeletedSentinel(msg.Text()) {
		msg.Kind = KindDeleted
		return msg, nil
	}

	if body, edited := stripEditedMarker(msg.Body); edited {
		msg.Kind = KindEdited
		msg.Body = body
	}

	if ref, body, ok := extractAttachment(msg.Body); ok {
		msg.MediaRef = ref
		msg.Body = body
	}

	return msg, nil
}

func isDeletedSentinel(body string) bool {
	body = strings.TrimSpace(body)
	for _, s := range deletedSentinels {
		if body == s {
			return true
		}
	}
	return false
}

func isSystemNotice(text string) bool {
	for _, n := range systemNotices {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

// stripEditedMarker removes a trailing edited marker from the last body
// line. Returns the (possibly rewritten) body and whether a marker was
// found.
func stripEditedMarker(body []string) ([]string, bool) {
	if len(body) == 0 {
		return body, false
	}
	last := body[len(body)-1]
	for _, marker := range editedMarkers {
		if !strings.HasSuffix(last, marker) {
			continue
		}
		trimmed := strings.TrimRight(strings.TrimSuffix(last, marker), " ")
		out := make([]string, len(body))
		copy(out, body)
		if trimmed == "" && len(out) > 0 {
			out = out[:len(out)-1]
		} else {
			out[len(out)-1] = trimmed
		}
		return out, true
	}
	return body, false
}

// extractAttachment finds an `<attached: FILENAME>` placeholder, returning
// the filename and the body with the placeholder line removed.
func extractAttachment(body []string) (string, []string, bool) {
	for i, line := range body {
		m := attachmentRe.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		ref := line[m[2]:m[3]]
		rest := strings.TrimSpace(line[:m[0]] + line[m[1]:])

		out := make([]string, 0, len(body))
		out = append(out, body[:i]...)
		if rest != "" {
			out = append(out, rest)
		}
		out = append(out, body[i+1:]...)
		return ref, out, true
	}
	return "", body, false
}

// parseTimestamp parses the header date and time. The date is read
// day-first (DD/MM/YYYY) regardless of archive origin: the format is not
// self-describing, so one fixed convention applies everywhere rather than a
// per-archive guess. Times are 24-hour; an AM/PM suffix is honoured when
// present.
func parseTimestamp(dateStr, timeStr string) (time.Time, error) {
	dp := strings.Split(dateStr, "/")
	if len(dp) != 3 {
		return time.Time{}, fmt.Errorf("bad date %q", dateStr)
	}
	day, err1 := strconv.Atoi(dp[0])
	month, err2 := strconv.Atoi(dp[1])
	year, err3 := strconv.Atoi(dp[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("bad date %q", dateStr)
	}
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("bad date %q", dateStr)
	}

	// normalize the narrow no-break spaces iOS puts before AM/PM
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', ' ', ' ', ' ':
			return ' '
		}
		return r
	}, timeStr)
	clean = strings.TrimSpace(clean)

	meridiem := ""
	for _, suffix := range []string{"AM", "PM"} {
		if strings.HasSuffix(clean, suffix) {
			meridiem = suffix
			clean = strings.TrimSpace(strings.TrimSuffix(clean, suffix))
		}
	}

	tp := strings.Split(clean, ":")
	if len(tp) < 2 || len(tp) > 3 {
		return time.Time{}, fmt.Errorf("bad time %q", timeStr)
	}
	hour, err1 := strconv.Atoi(tp[0])
	minute, err2 := strconv.Atoi(tp[1])
	if err1 != nil || err2 != nil {
		return time.Time{}, fmt.Errorf("bad time %q", timeStr)
	}
	second := 0
	if len(tp) == 3 {
		if second, err1 = strconv.Atoi(tp[2]); err1 != nil {
			return time.Time{}, fmt.Errorf("bad time %q", timeStr)
		}
	}

	switch meridiem {
	case "PM":
		if hour < 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, fmt.Errorf("bad time %q", timeStr)
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local), nil
}
