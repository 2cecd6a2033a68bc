package fstr

import (
	"strings"
	"testing"

	"pkt.systems/fstr/internal/palette"
)

func TestThemeByName(t *testing.T) {
	expected := []string{
		"default",
		"dracula",
		"nord",
		"gruvbox",
		"tokyo-night",
		"solarized-dark",
		"solarized-light",
		"catppuccin-mocha",
		"github-light",
	}
	for _, name := range expected {
		if _, ok := ThemeByName(name); !ok {
			t.Fatalf("expected theme %q to be available", name)
		}
	}
	if th, ok := ThemeByName("  Nord "); !ok || th.Name() != "nord" {
		t.Fatalf("expected normalized lookup of nord, got %v %v", th, ok)
	}
	if th, ok := ThemeByName(""); !ok || th.Name() != "default" {
		t.Fatalf("expected default theme for empty name")
	}
	if _, ok := ThemeByName("nope"); ok {
		t.Fatalf("expected unknown theme to be rejected")
	}

	available := AvailableThemes()
	if len(available) != len(expected) {
		t.Fatalf("expected %d themes, got %d", len(expected), len(available))
	}
	for i := 1; i < len(available); i++ {
		if available[i-1] > available[i] {
			t.Fatalf("themes not sorted: %v", available)
		}
	}
}

func TestTokenStyleStacksFormats(t *testing.T) {
	styles := DefaultTheme().Styles()
	tok := NewText("x", Bold|Strike)
	got := tokenStyle(styles, tok).Prefix
	if !strings.Contains(got, palette.Bold) || !strings.Contains(got, palette.Strike) {
		t.Fatalf("expected bold and strike in %q", got)
	}
	if strings.Contains(got, palette.Italic) {
		t.Fatalf("unexpected italic in %q", got)
	}
	if !strings.HasPrefix(got, styles.Text.Prefix) {
		t.Fatalf("expected text style first in %q", got)
	}
}

func TestTokenStyleMarkdownIgnoresFormat(t *testing.T) {
	styles := DefaultTheme().Styles()
	md := Token{Type: TypeMarkdown, Value: "*", Format: Bold, MdType: Bold, MdStart: true}
	if got := tokenStyle(styles, md); got != styles.Markdown {
		t.Fatalf("expected markdown style, got %q", got.Prefix)
	}
}

func TestBoringThemeHasNoEscapes(t *testing.T) {
	th := NewTheme("boring", Styles{})
	got := tokenStyle(th.Styles(), NewLink("a", "http://a", Bold|Italic))
	if got.Prefix != "" {
		t.Fatalf("expected empty prefix, got %q", got.Prefix)
	}
}

func TestTokenStylePanicsOnUnknownType(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for unknown token type")
		}
	}()
	tokenStyle(DefaultTheme().Styles(), Token{Type: Type(99), Value: "x"})
}
