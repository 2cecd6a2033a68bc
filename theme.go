package fstr

import (
	"fmt"
	"sort"
	"strings"

	"pkt.systems/fstr/internal/palette"
)

// Style describes a terminal style as an ANSI prefix sequence.
type Style struct {
	Prefix string
}

// Styles groups the styles used by the renderer. Format styles stack on top
// of the token type style.
type Styles struct {
	Text      Style
	Bold      Style
	Italic    Style
	Underline Style
	Strike    Style
	Monospace Style
	Important Style
	Highlight Style

	Link     Style
	Mention  Style
	Command  Style
	HashTag  Style
	Sticker  Style
	Markdown Style
	Emoji    Style
}

// Theme provides named styles for token rendering.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

func style(prefixes ...string) Style {
	var b strings.Builder
	for _, p := range prefixes {
		if p != "" {
			b.WriteString(p)
		}
	}
	return Style{Prefix: b.String()}
}

func stylesFromPalette(p palette.Palette) Styles {
	return Styles{
		Text:      style(p.Text),
		Bold:      style(palette.Bold, p.Strong),
		Italic:    style(palette.Italic, p.Emphasis),
		Underline: style(palette.Underline),
		Strike:    style(palette.Strike),
		Monospace: style(p.Code),
		Important: style(palette.Bold, p.Important),
		Highlight: style(p.Highlight),
		Link:      style(palette.Underline, p.Link),
		Mention:   style(p.Mention),
		Command:   style(p.Command),
		HashTag:   style(p.HashTag),
		Sticker:   style(p.Sticker),
		Markdown:  style(p.Markdown),
		Emoji:     style(p.Emoji),
	}
}

var builtinThemes = map[string]Theme{
	"default":          theme{name: "default", styles: stylesFromPalette(palette.PaletteDefault)},
	"dracula":          theme{name: "dracula", styles: stylesFromPalette(palette.PaletteDoomDracula)},
	"nord":             theme{name: "nord", styles: stylesFromPalette(palette.PaletteDoomNord)},
	"gruvbox":          theme{name: "gruvbox", styles: stylesFromPalette(palette.PaletteDoomGruvbox)},
	"tokyo-night":      theme{name: "tokyo-night", styles: stylesFromPalette(palette.PaletteTokyoNight)},
	"solarized-dark":   theme{name: "solarized-dark", styles: stylesFromPalette(palette.PaletteSolarizedDark)},
	"solarized-light":  theme{name: "solarized-light", styles: stylesFromPalette(palette.PaletteSolarizedLight)},
	"catppuccin-mocha": theme{name: "catppuccin-mocha", styles: stylesFromPalette(palette.PaletteCatppuccinMocha)},
	"github-light":     theme{name: "github-light", styles: stylesFromPalette(palette.PaletteGithubLight)},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}

// tokenStyle returns the combined prefix for t: the type style followed by
// one style per format flag in flag order.
func tokenStyle(s Styles, t Token) Style {
	var base Style
	switch t.Type {
	case TypeText:
		base = s.Text
	case TypeLink:
		base = s.Link
	case TypeMention:
		base = s.Mention
	case TypeCommand:
		base = s.Command
	case TypeHashTag:
		base = s.HashTag
	case TypeUserSticker:
		base = s.Sticker
	case TypeMarkdown:
		return s.Markdown
	case TypeEmoji, TypeTextEmoji:
		base = s.Emoji
	default:
		panic(fmt.Sprintf("fstr: unknown token type %d", t.Type))
	}
	prefixes := []string{base.Prefix}
	for _, fs := range []struct {
		flag  Format
		style Style
	}{
		{Bold, s.Bold},
		{Italic, s.Italic},
		{Underline, s.Underline},
		{Strike, s.Strike},
		{Monospace, s.Monospace},
		{Important, s.Important},
		{Highlight, s.Highlight},
	} {
		if Has(t.Format, fs.flag) {
			prefixes = append(prefixes, fs.style.Prefix)
		}
	}
	return style(prefixes...)
}
