package fstr

import "strings"

// Format is a set of independent style flags applied to a token.
type Format uint16

const (
	// FormatNone is the empty format.
	FormatNone Format = 0
	// Bold text.
	Bold Format = 1 << 0
	// Italic text.
	Italic Format = 1 << 1
	// Underline text.
	Underline Format = 1 << 2
	// Strike is struck-through text.
	Strike Format = 1 << 3
	// Monospace text.
	Monospace Format = 1 << 4
	// Important marks important text or a heading.
	Important Format = 1 << 5
	// Highlight marks a highlighted fragment.
	Highlight Format = 1 << 6
)

var formatNames = [...]struct {
	flag Format
	name string
}{
	{Bold, "bold"},
	{Italic, "italic"},
	{Underline, "underline"},
	{Strike, "strike"},
	{Monospace, "monospace"},
	{Important, "important"},
	{Highlight, "highlight"},
}

// Union returns the flags set in a or b.
func Union(a, b Format) Format {
	return a | b
}

// Subtract returns the flags of a that are not set in b.
func Subtract(a, b Format) Format {
	return a &^ b
}

// Has reports whether every flag of flag is set in f.
func Has(f, flag Format) bool {
	return f&flag == flag
}

// String returns the flag names joined with "|", or "none".
func (f Format) String() string {
	if f == FormatNone {
		return "none"
	}
	var b strings.Builder
	for _, fn := range formatNames {
		if f&fn.flag == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(fn.name)
	}
	return b.String()
}

// FormatByName returns the flag for a lower-case flag name such as "bold".
func FormatByName(name string) (Format, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, fn := range formatNames {
		if fn.name == normalized {
			return fn.flag, true
		}
	}
	return FormatNone, false
}

// FormatUpdate describes a change of format. When Replace is set, Set
// replaces the whole format and Add and Remove are ignored.
type FormatUpdate struct {
	Add     Format
	Remove  Format
	Set     Format
	Replace bool
}

// AddFormat returns an update that adds f.
func AddFormat(f Format) FormatUpdate {
	return FormatUpdate{Add: f}
}

// RemoveFormat returns an update that removes f.
func RemoveFormat(f Format) FormatUpdate {
	return FormatUpdate{Remove: f}
}

// SetFormat returns an update that replaces the format with f.
func SetFormat(f Format) FormatUpdate {
	return FormatUpdate{Set: f, Replace: true}
}

// Apply returns f with the update applied.
func (u FormatUpdate) Apply(f Format) Format {
	if u.Replace {
		return u.Set
	}
	return Subtract(Union(f, u.Add), u.Remove)
}
