// Package markup rewrites the transcript's inline formatting into safe
// HTML. Conversion is a pure function: escape first, then recognize
// delimiter pairs, leaving anything unmatched as literal text so the output
// markup can never be unbalanced.
package markup

import (
	"regexp"
	"strings"
)

// Formatting delimiters of the export format. A pair is recognized only
// when both delimiters sit on the same line; monospace interiors are
// rendered literally.
const (
	delimBold   = '*'
	delimItalic = '_'
	delimStrike = '~'

	monoFence = "```"
)

var tagFor = map[rune]string{
	delimBold:   "strong",
	delimItalic: "em",
	delimStrike: "del",
}

var urlRe = regexp.MustCompile(`^https?://[^\s<>&"']+`)

// Convert turns one message body (plain text, embedded newlines allowed)
// into display-safe HTML. Lines are converted independently and re-joined
// with newlines; the caller decides paragraph markup.
func Convert(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = convertLine(escapeText(line))
	}
	return strings.Join(lines, "\n")
}

// escapeText escapes HTML-special characters. Unlike html.EscapeString it
// leaves existing character entities alone, so escaping already-escaped
// text is a no-op and conversion stays idempotent on delimiter-free input.
func escapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#39;")
		case '&':
			if n := entityLen(s[i:]); n > 0 {
				b.WriteString(s[i : i+n])
				i += n - 1
			} else {
				b.WriteString("&amp;")
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// entityLen returns the length of a character entity at the start of s, or
// 0 if s does not start with one.
func entityLen(s string) int {
	if len(s) < 3 || s[0] != '&' {
		return 0
	}
	end := strings.IndexByte(s, ';')
	if end < 2 || end > 32 {
		return 0
	}
	body := s[1:end]
	if body[0] == '#' {
		num := body[1:]
		if strings.HasPrefix(num, "x") || strings.HasPrefix(num, "X") {
			num = num[1:]
			if num == "" {
				return 0
			}
			for _, r := range num {
				if !isHexDigit(r) {
					return 0
				}
			}
			return end + 1
		}
		if num == "" {
			return 0
		}
		for _, r := range num {
			if r < '0' || r > '9' {
				return 0
			}
		}
		return end + 1
	}
	for _, r := range body {
		if !isAlpha(r) {
			return 0
		}
	}
	return end + 1
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// convertLine applies monospace fences, URL linking, and the single-rune
// delimiter pairs to one already-escaped line.
func convertLine(line string) string {
	return convertSpan(line, nil)
}

// convertSpan converts one text span. active holds the delimiters already
// open in an enclosing span so the same pair is never nested.
func convertSpan(s string, active []rune) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		// monospace fence: interior stays literal
		if strings.HasPrefix(s[i:], monoFence) {
			if end := strings.Index(s[i+len(monoFence):], monoFence); end >= 0 {
				inner := s[i+len(monoFence) : i+len(monoFence)+end]
				b.WriteString("<code>")
				b.WriteString(inner)
				b.WriteString("</code>")
				i += 2*len(monoFence) + len(inner)
				continue
			}
			b.WriteString(monoFence)
			i += len(monoFence)
			continue
		}

		// auto-link URLs; the span is skipped so delimiters inside a URL
		// are not treated as formatting
		if m := urlRe.FindString(s[i:]); m != "" {
			b.WriteString(`<a href="` + m + `" target="_blank">` + m + `</a>`)
			i += len(m)
			continue
		}

		c := rune(s[i])
		tag, isDelim := tagFor[c]
		if isDelim && !containsRune(active, c) {
			if end := findClose(s[i+1:], byte(c)); end >= 0 {
				inner := s[i+1 : i+1+end]
				b.WriteString("<" + tag + ">")
				b.WriteString(convertSpan(inner, append(active, c)))
				b.WriteString("</" + tag + ">")
				i += end + 2
				continue
			}
		}

		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// findClose locates the matching close delimiter in s, skipping monospace
// fences so a delimiter inside a code span never closes an outer pair.
// Returns -1 when no close exists; the opener is then a literal character.
func findClose(s string, delim byte) int {
	i := 0
	for i < len(s) {
		if strings.HasPrefix(s[i:], monoFence) {
			end := strings.Index(s[i+len(monoFence):], monoFence)
			if end < 0 {
				break
			}
			i += 2*len(monoFence) + end
			continue
		}
		if s[i] == delim {
			if i == 0 {
				return -1 // empty pair, treat opener as literal
			}
			return i
		}
		i++
	}
	return -1
}

func containsRune(rs []rune, r rune) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}
