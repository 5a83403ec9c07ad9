// Package render turns a parsed conversation into viewable artifacts: a
// self-contained HTML document with embedded filter controls, and an ANSI
// rendering for terminal previews.
package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/wabrowse/wabrowse/internal/markup"
	"github.com/wabrowse/wabrowse/internal/parse"
)

// Options configures the document renderer and the emitted control program.
// It replaces any notion of process-global defaults: everything the
// renderer needs arrives here.
type Options struct {
	Title              string
	DefaultPerspective string // participant name; "" = auto-detect
	MediaDir           string // relative directory media refs point into
}

// HTML renders conversations into self-contained HTML documents.
type HTML struct {
	opts Options
}

func NewHTML(opts Options) *HTML {
	if opts.Title == "" {
		opts.Title = "Chat"
	}
	if opts.MediaDir == "" {
		opts.MediaDir = "media"
	}
	return &HTML{opts: opts}
}

// messageView is the per-message render model. The data attributes carry
// everything the embedded control program filters on, so the client never
// re-parses text.
type messageView struct {
	Seq       int
	Sender    string
	Kind      parse.Kind
	Date      string // ISO date for data-date
	TimeLabel string
	Divider   string // non-empty: emit a date divider before this message
	Grouped   bool   // consecutive message from the same sender
	Edited    bool
	HasText   bool

	Paragraphs []template.HTML

	MediaRef     string
	MediaPath    string
	MediaKind    string // "image", "video", "audio", "file"
	MediaMissing bool
}

type extraMediaView struct {
	Name string
	Path string
	Kind string
}

type pageView struct {
	Title        string
	Participants []string
	Perspective  string
	Messages     []messageView
	ExtraMedia   []extraMediaView
	Style        template.CSS
	Script       template.JS
}

// Render writes the complete document for conv. media is the set of
// filenames available next to the document; a message referencing a file
// outside the set renders a missing-media placeholder rather than failing.
func (h *HTML) Render(w io.Writer, conv *parse.Conversation, media map[string]bool) error {
	page := pageView{
		Title:        h.opts.Title,
		Participants: conv.Participants,
		Perspective:  h.perspective(conv),
		Style:        template.CSS(pageStyle),
	}

	used := make(map[string]bool)
	lastDate := ""
	lastSender := ""

	for _, m := range conv.Messages {
		mv := messageView{
			Seq:       m.Seq,
			Sender:    m.Sender,
			Kind:      m.Kind,
			Date:      m.Timestamp.Format("2006-01-02"),
			TimeLabel: m.Timestamp.Format("02/01/2006, 15:04"),
			Edited:    m.Kind == parse.KindEdited,
			HasText:   m.HasText(),
		}

		if mv.Date != lastDate {
			mv.Divider = m.Timestamp.Format("Monday, January 2, 2006")
			lastDate = mv.Date
			lastSender = ""
		}
		if m.Kind != parse.KindSystem {
			mv.Grouped = m.Sender == lastSender
			lastSender = m.Sender
		} else {
			lastSender = ""
		}

		mv.Paragraphs = bodyParagraphs(m)

		if m.MediaRef != "" {
			mv.MediaRef = m.MediaRef
			mv.MediaKind = mediaKind(m.MediaRef)
			mv.MediaPath = path.Join(h.opts.MediaDir, m.MediaRef)
			mv.MediaMissing = !media[m.MediaRef]
			used[m.MediaRef] = true
		}

		page.Messages = append(page.Messages, mv)
	}

	page.ExtraMedia = h.extraMedia(media, used)

	script, err := controlScript(page.Perspective)
	if err != nil {
		return err
	}
	page.Script = script

	if err := pageTmpl.Execute(w, page); err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	return nil
}

// perspective resolves the "self" participant: the configured name when it
// is a known participant, otherwise the first participant observed.
func (h *HTML) perspective(conv *parse.Conversation) string {
	want := h.opts.DefaultPerspective
	for _, p := range conv.Participants {
		if p == want {
			return p
		}
	}
	if len(conv.Participants) > 0 {
		return conv.Participants[0]
	}
	return ""
}

func bodyParagraphs(m parse.Message) []template.HTML {
	if m.Kind == parse.KindDeleted {
		return []template.HTML{"This message was deleted"}
	}
	text := m.Text()
	if text == "" {
		return nil
	}
	lines := strings.Split(markup.Convert(text), "\n")
	out := make([]template.HTML, len(lines))
	for i, l := range lines {
		if l == "" {
			l = "&nbsp;"
		}
		out[i] = template.HTML(l)
	}
	return out
}

// extraMedia lists archive media never referenced by a message, so nothing
// in the archive is silently dropped from the document.
func (h *HTML) extraMedia(media, used map[string]bool) []extraMediaView {
	var names []string
	for name := range media {
		if !used[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := make([]extraMediaView, len(names))
	for i, name := range names {
		out[i] = extraMediaView{
			Name: name,
			Path: path.Join(h.opts.MediaDir, name),
			Kind: mediaKind(name),
		}
	}
	return out
}

func mediaKind(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return "image"
	case ".mp4", ".mov", ".avi", ".3gp", ".webm":
		return "video"
	case ".opus", ".ogg", ".mp3", ".m4a", ".aac":
		return "audio"
	default:
		return "file"
	}
}

// controlScript binds the client-side control program to its defaults.
func controlScript(perspective string) (template.JS, error) {
	cfg, err := json.Marshal(struct {
		DefaultPerspective string `json:"defaultPerspective"`
	}{DefaultPerspective: perspective})
	if err != nil {
		return "", fmt.Errorf("marshal control config: %w", err)
	}
	return template.JS("var CONFIG = " + string(cfg) + ";\n" + controlProgram), nil
}
