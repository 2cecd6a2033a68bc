package fstr

import "fmt"

// Type is the kind of a token.
type Type uint8

const (
	// TypeText is a plain text fragment.
	TypeText Type = iota
	// TypeLink is a link to an external resource.
	TypeLink
	// TypeUserSticker is the legacy user sticker form: #u123456789s#
	TypeUserSticker
	// TypeMention is a mention: @user_name
	TypeMention
	// TypeCommand is a command: /command
	TypeCommand
	// TypeHashTag is a hashtag: #hashtag
	TypeHashTag
	// TypeMarkdown is a markdown formatting delimiter.
	TypeMarkdown
	// TypeEmoji is a standalone emoji.
	TypeEmoji
	// TypeTextEmoji is a textual emoji alias such as ":)".
	TypeTextEmoji
)

var typeNames = [...]string{
	TypeText:        "text",
	TypeLink:        "link",
	TypeUserSticker: "user_sticker",
	TypeMention:     "mention",
	TypeCommand:     "command",
	TypeHashTag:     "hashtag",
	TypeMarkdown:    "markdown",
	TypeEmoji:       "emoji",
	TypeTextEmoji:   "text_emoji",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// Emoji marks an emoji inside a token value. From and To are byte offsets
// into the value, To is exclusive.
type Emoji struct {
	From int
	To   int

	// Emoji is the actual emoji for a textual alias, empty for code point
	// emoji.
	Emoji string
}

// Token is a typed segment of a formatted string. Payload fields are only
// meaningful for the matching Type.
type Token struct {
	Type   Type
	Value  string
	Format Format
	Emoji  []Emoji

	// Sticky is used by Text and Link tokens: text inserted exactly at the
	// start boundary of this token goes into this token rather than into the
	// previous one.
	Sticky bool

	// Link and Auto belong to TypeLink. Auto is set for links detected in
	// text rather than applied by the user.
	Link string
	Auto bool

	StickerID string // TypeUserSticker
	Mention   string // TypeMention, without "@"
	Command   string // TypeCommand, without "/"
	HashTag   string // TypeHashTag, without "#"

	// MdType is the format toggled by a TypeMarkdown delimiter, MdStart
	// tells an opening delimiter from a closing one.
	MdType  Format
	MdStart bool

	// Alias is the canonical emoji of a TypeTextEmoji token.
	Alias string
}

// NewText returns a sticky text token.
func NewText(value string, format Format) Token {
	return Token{Type: TypeText, Value: value, Format: format, Sticky: true}
}

// NewLink returns a manual link token.
func NewLink(value, link string, format Format) Token {
	return Token{Type: TypeLink, Value: value, Format: format, Link: link}
}

// atomic tokens cannot be split or merged.
func (t Token) atomic() bool {
	switch t.Type {
	case TypeMarkdown, TypeUserSticker, TypeEmoji, TypeTextEmoji:
		return true
	case TypeText, TypeLink, TypeMention, TypeCommand, TypeHashTag:
		return false
	default:
		panic(fmt.Sprintf("fstr: unknown token type %d", t.Type))
	}
}

// canonical returns the full source form of a word token.
func (t Token) canonical() string {
	switch t.Type {
	case TypeMention:
		return "@" + t.Mention
	case TypeCommand:
		return "/" + t.Command
	case TypeHashTag:
		return "#" + t.HashTag
	case TypeUserSticker:
		return "#u" + t.StickerID + "s#"
	default:
		return t.Value
	}
}

// clone returns a copy of t that does not share the Emoji slice.
func (t Token) clone() Token {
	if t.Emoji != nil {
		t.Emoji = append([]Emoji(nil), t.Emoji...)
	}
	return t
}

// toText converts t into a plain text token keeping value, format and emoji.
func (t Token) toText() Token {
	out := NewText(t.Value, t.Format)
	out.Emoji = t.clone().Emoji
	return out
}
