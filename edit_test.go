package fstr

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gitlab.com/tozd/go/errors"
)

func TestTokenForPosHonorsStickiness(t *testing.T) {
	seq := Parse("hi @bob")
	cases := []struct {
		pos, idx, off int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{3, 0, 3}, // mention is not sticky, left text keeps the caret
		{5, 1, 2},
		{7, 1, 4},
	}
	for _, tc := range cases {
		idx, off, err := TokenForPos(seq, tc.pos)
		if err != nil {
			t.Fatalf("TokenForPos(%d): %v", tc.pos, err)
		}
		if idx != tc.idx || off != tc.off {
			t.Fatalf("TokenForPos(%d) = (%d, %d), want (%d, %d)", tc.pos, idx, off, tc.idx, tc.off)
		}
	}

	seq = Parse("@bob x")
	if idx, off, _ := TokenForPos(seq, 4); idx != 1 || off != 0 {
		t.Fatalf("sticky text should win at boundary, got (%d, %d)", idx, off)
	}
	if idx, _, err := TokenForPos(nil, 0); err != nil || idx != -1 {
		t.Fatalf("empty sequence: got %d %v", idx, err)
	}
	if _, _, err := TokenForPos(seq, 7); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestInsertTextRetokenizes(t *testing.T) {
	seq, err := InsertText(Parse("hi "), 3, "@bob")
	if err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	assertTokens(t, seq, []Type{TypeText, TypeMention}, []string{"hi ", "@bob"})

	seq, err = InsertText(Parse("@bob"), 2, " ")
	if err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	assertTokens(t, seq, []Type{TypeMention, TypeText}, []string{"@b", " ob"})

	seq, err = InsertText(Parse("see example"), 11, ".com")
	if err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	assertTokens(t, seq, []Type{TypeText, TypeLink}, []string{"see ", "example.com"})

	seq, err = InsertText(nil, 0, "/go", WithCommands(true))
	if err != nil {
		t.Fatalf("InsertText empty: %v", err)
	}
	assertTokens(t, seq, []Type{TypeCommand}, []string{"/go"})
}

func TestInsertTextKeepsFormat(t *testing.T) {
	seq := mustApply(t, Parse("ab", WithAll(false)), 0, 2, AddFormat(Bold))
	seq, err := InsertText(seq, 1, "x #tag ")
	if err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	assertTokens(t, seq, []Type{TypeText, TypeHashTag, TypeText}, []string{"ax ", "#tag", " b"})
	for _, tok := range seq {
		if tok.Format != Bold {
			t.Fatalf("token %q lost format: %s", tok.Value, tok.Format)
		}
	}
}

func TestInsertTextNextToAtomicTokens(t *testing.T) {
	seq, err := InsertText(Parse("#u1s#"), 5, "x")
	if err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	assertTokens(t, seq, []Type{TypeUserSticker, TypeText}, []string{"#u1s#", "x"})

	seq, err = InsertText(Parse("*a*"), 3, " b")
	if err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	assertTokens(t, seq, []Type{TypeMarkdown, TypeText, TypeMarkdown, TypeText}, []string{"*", "a", "*", " b"})
	if seq[3].Format != FormatNone {
		t.Fatalf("text after closing delimiter should not be bold, got %s", seq[3].Format)
	}

	seq, err = InsertText(Parse("*a*"), 0, "z ")
	if err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	if seq[0].Value != "z " || seq[0].Format != FormatNone {
		t.Fatalf("text before opening delimiter should not be bold, got %+v", seq[0])
	}
}

func TestInsertTextRejectsEmojiInterior(t *testing.T) {
	seq := Parse("a👍b")
	if _, err := InsertText(seq, 2, "x"); !errors.Is(err, ErrInvalidSplit) {
		t.Fatalf("expected ErrInvalidSplit, got %v", err)
	}
	if _, err := InsertText(seq, 99, "x"); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	out, err := InsertText(seq, 1, "")
	if err != nil {
		t.Fatalf("empty insert: %v", err)
	}
	if diff := cmp.Diff(seq, out); diff != "" {
		t.Fatalf("empty insert changed sequence (-want +got):\n%s", diff)
	}
}

func TestInsertTextGrowsManualLink(t *testing.T) {
	seq, err := SetLink(Parse("click here", WithAll(false)), 6, 10, "https://x.io")
	if err != nil {
		t.Fatalf("SetLink: %v", err)
	}
	seq, err = InsertText(seq, 8, "ee")
	if err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	want := Sequence{NewText("click ", FormatNone), NewLink("heeere", "https://x.io", FormatNone)}
	if diff := cmp.Diff(want, seq); diff != "" {
		t.Fatalf("link mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveText(t *testing.T) {
	seq, err := RemoveText(Parse("hi @bob there"), 3, 4)
	if err != nil {
		t.Fatalf("RemoveText: %v", err)
	}
	if diff := cmp.Diff(Sequence{NewText("hi bob there", FormatNone)}, seq); diff != "" {
		t.Fatalf("remove mismatch (-want +got):\n%s", diff)
	}

	seq, err = RemoveText(Parse("x @ bob"), 3, 4)
	if err != nil {
		t.Fatalf("RemoveText: %v", err)
	}
	assertTokens(t, seq, []Type{TypeText, TypeMention}, []string{"x ", "@bob"})

	seq, err = RemoveText(Parse("a #u1s# b"), 2, 7)
	if err != nil {
		t.Fatalf("RemoveText sticker: %v", err)
	}
	if diff := cmp.Diff(Sequence{NewText("a  b", FormatNone)}, seq); diff != "" {
		t.Fatalf("remove sticker mismatch (-want +got):\n%s", diff)
	}

	if _, err := RemoveText(Parse("#u1s#"), 1, 5); !errors.Is(err, ErrInvalidSplit) {
		t.Fatalf("expected ErrInvalidSplit, got %v", err)
	}
	orig := Parse("abc")
	out, err := RemoveText(orig, 1, 1)
	if err != nil || cmp.Diff(orig, out) != "" {
		t.Fatalf("empty remove changed sequence: %v %v", out, err)
	}
}

func TestReplaceText(t *testing.T) {
	seq, err := ReplaceText(Parse("hi @bob"), 4, 7, "alice")
	if err != nil {
		t.Fatalf("ReplaceText: %v", err)
	}
	assertTokens(t, seq, []Type{TypeText, TypeMention}, []string{"hi ", "@alice"})
	if seq[1].Mention != "alice" {
		t.Fatalf("unexpected payload %q", seq[1].Mention)
	}
}

func TestSetLink(t *testing.T) {
	base := Parse("go here now", WithAll(false))
	seq, err := SetLink(base, 3, 7, "https://x")
	if err != nil {
		t.Fatalf("SetLink: %v", err)
	}
	want := Sequence{
		NewText("go ", FormatNone),
		NewLink("here", "https://x", FormatNone),
		NewText(" now", FormatNone),
	}
	if diff := cmp.Diff(want, seq); diff != "" {
		t.Fatalf("set link mismatch (-want +got):\n%s", diff)
	}

	seq, err = SetLink(seq, 0, seq.Len(), "")
	if err != nil {
		t.Fatalf("SetLink clear: %v", err)
	}
	if diff := cmp.Diff(base, seq); diff != "" {
		t.Fatalf("clear mismatch (-want +got):\n%s", diff)
	}

	seq, err = SetLink(Parse("*a*"), 0, 3, "https://y")
	if err != nil {
		t.Fatalf("SetLink markdown: %v", err)
	}
	assertTokens(t, seq, []Type{TypeMarkdown, TypeLink, TypeMarkdown}, []string{"*", "a", "*"})
	if seq[1].Auto || seq[1].Format != Bold {
		t.Fatalf("unexpected link token %+v", seq[1])
	}
}

func TestSliceAndStripMarkdown(t *testing.T) {
	seq := Parse("hello *world*")
	got, err := Slice(seq, 6, 13)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	assertTokens(t, got, []Type{TypeMarkdown, TypeText, TypeMarkdown}, []string{"*", "world", "*"})
	got, err = Slice(seq, 0, 3)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	assertTokens(t, got, []Type{TypeText}, []string{"hel"})
	if _, err := Slice(seq, 5, 4); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}

	stripped := StripMarkdown(Parse("*a* b"))
	want := Sequence{NewText("a", Bold), NewText(" b", FormatNone)}
	if diff := cmp.Diff(want, stripped); diff != "" {
		t.Fatalf("strip mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertTextRespectsWordBoundaryAcrossTokens(t *testing.T) {
	seq := mustApply(t, Parse("foobar"), 0, 3, AddFormat(Bold))
	seq, err := InsertText(seq, 3, "#x")
	if err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	want := Sequence{NewText("foo", Bold), NewText("#xbar", FormatNone)}
	if diff := cmp.Diff(want, seq); diff != "" {
		t.Fatalf("hashtag after a word rune (-want +got):\n%s", diff)
	}

	seq, err = InsertText(Parse("_a_"), 3, "#x")
	if err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	if diff := cmp.Diff(Parse("_a_#x"), seq); diff != "" {
		t.Fatalf("hashtag after closing delimiter (-want +got):\n%s", diff)
	}

	seq = mustApply(t, Parse("ab cd"), 3, 5, AddFormat(Italic))
	seq, err = RemoveText(seq, 2, 3)
	if err != nil {
		t.Fatalf("RemoveText: %v", err)
	}
	want = Sequence{NewText("ab", FormatNone), NewText("cd", Italic)}
	if diff := cmp.Diff(want, seq); diff != "" {
		t.Fatalf("remove mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveTextRetokenizesAcrossFormats(t *testing.T) {
	seq := mustApply(t, Parse("@bob by"), 5, 7, AddFormat(Bold))
	seq, err := RemoveText(seq, 4, 5)
	if err != nil {
		t.Fatalf("RemoveText: %v", err)
	}
	assertTokens(t, seq, []Type{TypeMention, TypeMention}, []string{"@bob", "by"})
	for _, tok := range seq {
		if tok.Mention != "bobby" {
			t.Fatalf("fragment %q has payload %q, want bobby", tok.Value, tok.Mention)
		}
	}
	if seq[0].Format != FormatNone || seq[1].Format != Bold {
		t.Fatalf("formats not restored: %s %s", seq[0].Format, seq[1].Format)
	}

	seq, err = InsertText(Parse("hi @bob"), 2, "x")
	if err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	assertTokens(t, seq, []Type{TypeText, TypeMention}, []string{"hix ", "@bob"})
}
