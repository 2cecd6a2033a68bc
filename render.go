package fstr

import (
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/muesli/reflow/ansi"
	"gitlab.com/tozd/go/errors"

	"pkt.systems/fstr/internal/palette"
)

const ansiReset = palette.Reset

// RenderRequest describes a render of a sequence to a terminal writer.
type RenderRequest struct {
	Sequence Sequence
	Writer   io.Writer
	Width    int
	Theme    Theme
	// Markdown keeps markdown delimiters in the output.
	Markdown bool
	Options  []RenderOption
}

// Render writes the sequence as styled, word wrapped ANSI text. A Width of
// zero disables wrapping.
func Render(req RenderRequest) error {
	if req.Writer == nil {
		return errors.New("render: nil writer")
	}
	th := req.Theme
	if th == nil {
		th = DefaultTheme()
	}
	r := NewRenderer(req.Writer, req.Width, th, req.Options...)
	for _, t := range req.Sequence {
		if t.Type == TypeMarkdown && !req.Markdown {
			continue
		}
		if err := r.WriteToken(t); err != nil {
			return err
		}
	}
	return r.Flush()
}

type atomKind uint8

const (
	atomWord atomKind = iota
	atomSpace
	atomNewline
)

type atom struct {
	kind  atomKind
	text  string
	style Style
	link  string
}

// Renderer wraps styled tokens at word boundaries. Words spanning several
// tokens, like a markdown pair around a word, are kept together.
type Renderer struct {
	w        io.Writer
	width    int
	osc8     bool
	softWrap bool
	styles   Styles

	lineWidth int
	style     string
	link      string
	word      []atom
	wordWidth int
	spaces    []atom
	err       error
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer, width int, th Theme, opts ...RenderOption) *Renderer {
	cfg := renderConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if th == nil {
		th = DefaultTheme()
	}
	return &Renderer{
		w:        w,
		width:    width,
		osc8:     cfg.osc8,
		softWrap: cfg.softWrap,
		styles:   th.Styles(),
	}
}

// WriteToken renders one token.
func (r *Renderer) WriteToken(t Token) error {
	st := tokenStyle(r.styles, t)
	link := ""
	if t.Type == TypeLink {
		link = t.Link
	}
	r.addText(t.Value, st, link)
	if t.Type == TypeLink && !r.osc8 && t.Link != "" && !linkShownByValue(t) {
		limit := r.width - 3
		if limit <= 0 {
			limit = len(t.Link)
		}
		r.addText(" ("+fitURL(t.Link, limit)+")", r.styles.Link, "")
	}
	return r.err
}

// Flush writes pending output and resets styles.
func (r *Renderer) Flush() error {
	r.flushWord()
	r.spaces = r.spaces[:0]
	r.setLink("")
	if r.style != "" {
		r.write(ansiReset)
		r.style = ""
	}
	return r.err
}

// linkShownByValue reports whether the visible text already reads as the
// link target.
func linkShownByValue(t Token) bool {
	if t.Auto {
		return true
	}
	return t.Link == t.Value || strings.TrimPrefix(strings.TrimPrefix(t.Link, "mailto:"), "http://") == t.Value
}

func (r *Renderer) addText(text string, st Style, link string) {
	for text != "" {
		c, size := utf8.DecodeRuneInString(text)
		kind := classifyRune(c)
		end := size
		for kind != atomNewline && end < len(text) {
			c2, s2 := utf8.DecodeRuneInString(text[end:])
			if classifyRune(c2) != kind {
				break
			}
			end += s2
		}
		r.addAtom(atom{kind: kind, text: text[:end], style: st, link: link})
		text = text[end:]
	}
}

func classifyRune(c rune) atomKind {
	switch {
	case c == '\n':
		return atomNewline
	case c != '\u00A0' && unicode.IsSpace(c):
		return atomSpace
	default:
		return atomWord
	}
}

func (r *Renderer) addAtom(a atom) {
	switch a.kind {
	case atomWord:
		r.word = append(r.word, a)
		r.wordWidth += ansi.PrintableRuneWidth(a.text)
	case atomSpace:
		r.flushWord()
		r.spaces = append(r.spaces, a)
	case atomNewline:
		r.flushWord()
		r.spaces = r.spaces[:0]
		r.newline()
	}
}

func (r *Renderer) flushWord() {
	if len(r.word) == 0 {
		return
	}
	spacesWidth := 0
	for _, sp := range r.spaces {
		spacesWidth += ansi.PrintableRuneWidth(sp.text)
	}
	if r.width > 0 && r.lineWidth > 0 && r.lineWidth+spacesWidth+r.wordWidth > r.width {
		r.newline()
	} else {
		for _, sp := range r.spaces {
			r.emit(sp)
		}
	}
	r.spaces = r.spaces[:0]
	for _, a := range r.word {
		if r.softWrap && r.width > 0 && ansi.PrintableRuneWidth(a.text)+r.lineWidth > r.width {
			r.emitSplit(a)
			continue
		}
		r.emit(a)
	}
	r.word = r.word[:0]
	r.wordWidth = 0
}

// emitSplit breaks an overlong word across lines at grapheme boundaries.
func (r *Renderer) emitSplit(a atom) {
	rest := a.text
	for rest != "" {
		cluster := nextGrapheme(rest)
		w := ansi.PrintableRuneWidth(cluster)
		if r.lineWidth > 0 && r.lineWidth+w > r.width {
			r.newline()
		}
		r.emit(atom{kind: a.kind, text: cluster, style: a.style, link: a.link})
		rest = rest[len(cluster):]
	}
}

func (r *Renderer) emit(a atom) {
	r.setLink(a.link)
	if a.style.Prefix != r.style {
		if r.style != "" {
			r.write(ansiReset)
		}
		r.style = a.style.Prefix
		if r.style != "" {
			r.write(r.style)
		}
	}
	r.write(a.text)
	r.lineWidth += ansi.PrintableRuneWidth(a.text)
}

func (r *Renderer) setLink(link string) {
	if !r.osc8 || link == r.link {
		return
	}
	if r.link != "" {
		r.write(osc8End)
	}
	if link != "" {
		r.write(osc8Open(link))
	}
	r.link = link
}

func (r *Renderer) newline() {
	r.setLink("")
	if r.style != "" {
		r.write(ansiReset)
		r.style = ""
	}
	r.write("\n")
	r.lineWidth = 0
}

func (r *Renderer) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}
