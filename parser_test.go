package fstr

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func types(seq Sequence) []Type {
	out := make([]Type, len(seq))
	for i, t := range seq {
		out[i] = t.Type
	}
	return out
}

func values(seq Sequence) []string {
	out := make([]string, len(seq))
	for i, t := range seq {
		out[i] = t.Value
	}
	return out
}

func assertTokens(t *testing.T, seq Sequence, wantTypes []Type, wantValues []string) {
	t.Helper()
	if diff := cmp.Diff(wantTypes, types(seq)); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantValues, values(seq)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCommands(t *testing.T) {
	seq := Parse("/command")
	assertTokens(t, seq, []Type{TypeText}, []string{"/command"})

	commands := WithCommands(true)
	seq = Parse("/command", commands)
	assertTokens(t, seq, []Type{TypeCommand}, []string{"/command"})
	if seq[0].Command != "command" {
		t.Fatalf("expected command payload, got %q", seq[0].Command)
	}

	seq = Parse("test /command", commands)
	assertTokens(t, seq, []Type{TypeText, TypeCommand}, []string{"test ", "/command"})

	seq = Parse("/command ", commands)
	assertTokens(t, seq, []Type{TypeCommand, TypeText}, []string{"/command", " "})

	seq = Parse("foo/bar", commands)
	assertTokens(t, seq, []Type{TypeText}, []string{"foo/bar"})

	seq = Parse("/приветёЁ", commands)
	assertTokens(t, seq, []Type{TypeCommand}, []string{"/приветёЁ"})
}

func TestParseAllDisabledRoundTrip(t *testing.T) {
	inputs := []string{
		"hello @bob *x* http://a.io #u12s# :) /cmd",
		"plain",
		"  spaced\n\tout  ",
	}
	for _, input := range inputs {
		seq := Parse(input, WithAll(false))
		want := Sequence{NewText(input, FormatNone)}
		if diff := cmp.Diff(want, seq); diff != "" {
			t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", input, diff)
		}
	}
	if seq := Parse(""); len(seq) != 0 {
		t.Fatalf("expected empty sequence, got %v", seq)
	}
}

func TestParseMentionsAndHashTags(t *testing.T) {
	seq := Parse("hi @bob_smith!")
	assertTokens(t, seq, []Type{TypeText, TypeMention, TypeText}, []string{"hi ", "@bob_smith", "!"})
	if seq[1].Mention != "bob_smith" {
		t.Fatalf("expected mention payload bob_smith, got %q", seq[1].Mention)
	}
	if !seq[0].Sticky || seq[1].Sticky {
		t.Fatalf("expected sticky text and non-sticky mention")
	}

	seq = Parse("mail a@b")
	assertTokens(t, seq, []Type{TypeText}, []string{"mail a@b"})

	seq = Parse("#go и #привет")
	assertTokens(t, seq, []Type{TypeHashTag, TypeText, TypeHashTag}, []string{"#go", " и ", "#привет"})
	if seq[2].HashTag != "привет" {
		t.Fatalf("expected hashtag payload, got %q", seq[2].HashTag)
	}

	seq = Parse("issue#12 # alone")
	assertTokens(t, seq, []Type{TypeText}, []string{"issue#12 # alone"})

	seq = Parse("@bob@alice")
	assertTokens(t, seq, []Type{TypeMention, TypeText}, []string{"@bob", "@alice"})
}

func TestParseUserStickerBeatsHashTag(t *testing.T) {
	seq := Parse("#u123s# #tag")
	assertTokens(t, seq, []Type{TypeUserSticker, TypeText, TypeHashTag}, []string{"#u123s#", " ", "#tag"})
	if seq[0].StickerID != "123" {
		t.Fatalf("expected sticker id 123, got %q", seq[0].StickerID)
	}

	seq = Parse("#u123s")
	assertTokens(t, seq, []Type{TypeHashTag}, []string{"#u123s"})

	seq = Parse("#u123s#", WithUserStickers(false))
	assertTokens(t, seq, []Type{TypeHashTag, TypeText}, []string{"#u123s", "#"})
}

func TestParseLinks(t *testing.T) {
	cases := []struct {
		input string
		value string
		link  string
	}{
		{"see https://example.com/path?q=1.", "https://example.com/path?q=1", "https://example.com/path?q=1"},
		{"go to example.com, now", "example.com", "http://example.com"},
		{"www.foo.bar", "www.foo.bar", "http://www.foo.bar"},
		{"(see example.org/a)", "example.org/a", "http://example.org/a"},
		{"wiki example.org/A_(b)", "example.org/A_(b)", "http://example.org/A_(b)"},
		{"write a.b@example.com!", "a.b@example.com", "mailto:a.b@example.com"},
		{"localhost.io:8080/x", "localhost.io:8080/x", "http://localhost.io:8080/x"},
		{"x.www.foo bar", "www.foo", "http://www.foo"},
		{"a.b.example.com", "a.b.example.com", "http://a.b.example.com"},
		{"mail me.now@example.com", "me.now@example.com", "mailto:me.now@example.com"},
		{"a.b+c://host/x", "a.b+c://host/x", "a.b+c://host/x"},
	}
	for _, tc := range cases {
		seq := Parse(tc.input)
		var found *Token
		for i := range seq {
			if seq[i].Type == TypeLink {
				found = &seq[i]
				break
			}
		}
		if found == nil {
			t.Fatalf("Parse(%q): no link in %v", tc.input, values(seq))
		}
		if found.Value != tc.value || found.Link != tc.link || !found.Auto {
			t.Fatalf("Parse(%q): got link %q -> %q auto=%v", tc.input, found.Value, found.Link, found.Auto)
		}
		if found.Sticky {
			t.Fatalf("Parse(%q): auto links must not be sticky", tc.input)
		}
		if seq.Markdown() != tc.input {
			t.Fatalf("Parse(%q): reconstructed %q", tc.input, seq.Markdown())
		}
	}

	for _, input := range []string{"file.txt", "version 1.2.3", "http://", "foo.comx", "ab"} {
		for _, tok := range Parse(input) {
			if tok.Type == TypeLink {
				t.Fatalf("Parse(%q): unexpected link %q", input, tok.Value)
			}
		}
	}

	seq := Parse("example.com", WithLinks(false))
	assertTokens(t, seq, []Type{TypeText}, []string{"example.com"})
}

func TestParseMarkdown(t *testing.T) {
	seq := Parse("*bold* and _it_")
	assertTokens(t, seq,
		[]Type{TypeMarkdown, TypeText, TypeMarkdown, TypeText, TypeMarkdown, TypeText, TypeMarkdown},
		[]string{"*", "bold", "*", " and ", "_", "it", "_"})
	wantFormats := []Format{Bold, Bold, Bold, FormatNone, Italic, Italic, Italic}
	for i, tok := range seq {
		if tok.Format != wantFormats[i] {
			t.Fatalf("token %d %q: format %s, want %s", i, tok.Value, tok.Format, wantFormats[i])
		}
	}
	if !seq[0].MdStart || seq[2].MdStart || seq[0].MdType != Bold {
		t.Fatalf("unexpected delimiter flags: %+v %+v", seq[0], seq[2])
	}
	if seq.Text() != "bold and it" {
		t.Fatalf("unexpected text %q", seq.Text())
	}
	if seq.Markdown() != "*bold* and _it_" {
		t.Fatalf("unexpected markdown %q", seq.Markdown())
	}
}

func TestParseMarkdownNestedAndCode(t *testing.T) {
	seq := Parse("*a _b_ c*")
	text := StripMarkdown(seq)
	want := Sequence{
		NewText("a ", Bold),
		NewText("b", Bold|Italic),
		NewText(" c", Bold),
	}
	if diff := cmp.Diff(want, text); diff != "" {
		t.Fatalf("nested mismatch (-want +got):\n%s", diff)
	}

	seq = Parse("`a*b*`")
	assertTokens(t, seq, []Type{TypeMarkdown, TypeText, TypeMarkdown}, []string{"`", "a*b*", "`"})
	if seq[1].Format != Monospace {
		t.Fatalf("expected monospace only, got %s", seq[1].Format)
	}

	seq = Parse("snake_case_name and 2*3*4")
	assertTokens(t, seq, []Type{TypeText}, []string{"snake_case_name and 2*3*4"})

	seq = Parse("see *example.com*")
	assertTokens(t, seq, []Type{TypeText, TypeMarkdown, TypeLink, TypeMarkdown}, []string{"see ", "*", "example.com", "*"})
	if seq[2].Format != Bold {
		t.Fatalf("expected bold link, got %s", seq[2].Format)
	}

	seq = Parse("@user_name_ _x_")
	assertTokens(t, seq, []Type{TypeMention, TypeText, TypeMarkdown, TypeText, TypeMarkdown},
		[]string{"@user_name_", " ", "_", "x", "_"})

	seq = Parse("*bold*", WithMarkdown(false))
	assertTokens(t, seq, []Type{TypeText}, []string{"*bold*"})
}

func TestParseWarnings(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.DebugLevel)
	seq, warnings := ParseWithWarnings("*oops and *fine*", WithLogger(logger))
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %+v", len(warnings), warnings)
	}
	w := warnings[0]
	if w.Issue != IssueUnpairedMarkdown || w.Pos != 0 || w.Near != "*" {
		t.Fatalf("unexpected warning %+v", w)
	}
	if w.Issue.String() != "unpaired_markdown" {
		t.Fatalf("unexpected issue name %q", w.Issue.String())
	}
	if !strings.Contains(logs.String(), "unpaired markdown delimiter") {
		t.Fatalf("expected debug log, got %q", logs.String())
	}
	if seq.Markdown() != "*oops and *fine*" {
		t.Fatalf("unexpected reconstruction %q", seq.Markdown())
	}
	if seq[0].Type != TypeText || !strings.HasPrefix(seq[0].Value, "*oops") {
		t.Fatalf("expected unpaired delimiter to stay text, got %+v", seq[0])
	}

	_, warnings = ParseWithWarnings("a * b")
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings for a lone spaced star, got %+v", warnings)
	}
}

func TestParseEmoji(t *testing.T) {
	seq := Parse("hi 👍 there")
	want := Sequence{{Type: TypeText, Value: "hi 👍 there", Sticky: true, Emoji: []Emoji{{From: 3, To: 7}}}}
	if diff := cmp.Diff(want, seq); diff != "" {
		t.Fatalf("emoji mismatch (-want +got):\n%s", diff)
	}

	seq = Parse("hi 👍 there", WithEmojiTokens(true))
	assertTokens(t, seq, []Type{TypeText, TypeEmoji, TypeText}, []string{"hi ", "👍", " there"})

	seq = Parse("ok :) fine")
	if diff := cmp.Diff([]Emoji{{From: 3, To: 5, Emoji: "\U0001F642"}}, seq[0].Emoji); diff != "" {
		t.Fatalf("alias mismatch (-want +got):\n%s", diff)
	}

	seq = Parse("ok :) fine", WithEmojiTokens(true))
	assertTokens(t, seq, []Type{TypeText, TypeTextEmoji, TypeText}, []string{"ok ", ":)", " fine"})
	if seq[1].Alias != "\U0001F642" {
		t.Fatalf("unexpected alias %q", seq[1].Alias)
	}

	for _, input := range []string{"a:)", "http:)x", "ok :)x"} {
		if seq := Parse(input, WithLinks(false)); len(seq[0].Emoji) != 0 {
			t.Fatalf("Parse(%q): unexpected alias %+v", input, seq[0].Emoji)
		}
	}

	if seq := Parse("ok :)", WithTextEmoji(false)); len(seq[0].Emoji) != 0 {
		t.Fatalf("expected alias detection disabled, got %+v", seq[0].Emoji)
	}

	family := "👨‍👩‍👧"
	seq = Parse("x" + family)
	if diff := cmp.Diff([]Emoji{{From: 1, To: 1 + len(family)}}, seq[0].Emoji); diff != "" {
		t.Fatalf("zwj sequence mismatch (-want +got):\n%s", diff)
	}

	custom := NewAliasTable(map[string]string{"(y)": "👍"})
	seq = Parse("ok (y)", WithAliases(custom))
	if diff := cmp.Diff([]Emoji{{From: 3, To: 6, Emoji: "👍"}}, seq[0].Emoji); diff != "" {
		t.Fatalf("custom alias mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCustomWordRune(t *testing.T) {
	ascii := func(r rune) bool {
		return r < 0x80 && IsWordRune(r)
	}
	seq := Parse("@bobé", WithWordRune(ascii))
	assertTokens(t, seq, []Type{TypeMention, TypeText}, []string{"@bob", "é"})
}

func TestParseIsDeterministic(t *testing.T) {
	input := "*hi* @bob, see example.com #tag #u1s# :) 👍 /start"
	first := Parse(input, WithCommands(true))
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, Parse(input, WithCommands(true))); diff != "" {
			t.Fatalf("non-deterministic parse (-first +got):\n%s", diff)
		}
	}
	if first.Markdown() != input {
		t.Fatalf("reconstruction mismatch: %q", first.Markdown())
	}
}
