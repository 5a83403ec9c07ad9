package parse

import (
	"regexp"
	"strings"
)

// Header grammar. Two export shapes exist in the wild:
//
//	12/01/2024, 14:03 - Alice: Hello          (dash form)
//	[12/1/24, 2:03:09 PM] Alice: Hello        (bracketed form)
//
// A line starts a new record iff its date/time prefix matches one of these.
// The remainder after the prefix (sender, delimiter, text) is left for the
// builder: system notices share the prefix but omit the "Sender:" segment.
var (
	datePart = `(\d{1,2}/\d{1,2}/\d{2,4})`
	timePart = `(\d{1,2}:\d{2}(?::\d{2})?(?:[\s\x{202f}\x{00a0}]?[AP]M)?)`

	dashHeaderRe    = regexp.MustCompile(`^` + datePart + `,\s+` + timePart + `\s+-\s?(.*)$`)
	bracketHeaderRe = regexp.MustCompile(`^\[` + datePart + `,\s+` + timePart + `\]\s?(.*)$`)
)

// splitHeader returns (date, time, rest, ok) if line matches the header
// grammar.
func splitHeader(line string) (string, string, string, bool) {
	if m := bracketHeaderRe.FindStringSubmatch(line); m != nil {
		return m[1], m[2], m[3], true
	}
	if m := dashHeaderRe.FindStringSubmatch(line); m != nil {
		return m[1], m[2], m[3], true
	}
	return "", "", "", false
}

// stripDirectionMarks removes the Unicode left-to-right / right-to-left
// marks WhatsApp sprinkles through its exports. They are invisible but
// break the header match when they precede the date.
func stripDirectionMarks(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '‎' || r == '‏' {
			return -1
		}
		return r
	}, s)
}

// Tokenize splits raw transcript text into ordered (header, body) records.
// Lines that do not match the header grammar are continuations of the
// current record; lines before the first header are export preamble and are
// discarded. An empty transcript yields zero records.
//
// A body line that coincidentally matches the header grammar is mis-split
// into a new record. The format carries no escaping, so there is no way to
// disambiguate without guessing; we do not guess.
func Tokenize(text string) []Record {
	text = stripDirectionMarks(text)

	var records []Record
	var cur *Record

	lineNum := 0
	for line := range strings.Lines(text) {
		lineNum++
		line = strings.TrimRight(line, "\r\n")

		if _, _, _, ok := splitHeader(line); ok {
			if cur != nil {
				records = append(records, *cur)
			}
			cur = &Record{Line: lineNum, Header: line}
			continue
		}

		if cur == nil {
			continue // preamble before the first header
		}
		cur.Body = append(cur.Body, line)
	}

	if cur != nil {
		records = append(records, *cur)
	}
	return records
}
