// Package palette holds the ANSI SGR sequences and color palettes behind
// the built-in themes.
package palette

import "strconv"

// SGR attribute sequences.
const (
	Reset     = "\x1b[0m"
	Bold      = "\x1b[1m"
	Faint     = "\x1b[2m"
	Italic    = "\x1b[3m"
	Underline = "\x1b[4m"
	Reverse   = "\x1b[7m"
	Strike    = "\x1b[9m"
)

// Palette assigns a foreground sequence to every semantic role.
type Palette struct {
	Text      string
	Strong    string
	Emphasis  string
	Code      string
	Important string
	Highlight string
	Link      string
	Mention   string
	Command   string
	HashTag   string
	Sticker   string
	Markdown  string
	Emoji     string
}

// Fg returns a 24-bit foreground sequence.
func Fg(r, g, b uint8) string {
	return "\x1b[38;2;" + strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b)) + "m"
}

// Bg returns a 24-bit background sequence.
func Bg(r, g, b uint8) string {
	return "\x1b[48;2;" + strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b)) + "m"
}

var (
	PaletteDefault = Palette{
		Strong:    Fg(0xff, 0xd7, 0x5f),
		Emphasis:  Fg(0xaf, 0xd7, 0xff),
		Code:      Fg(0xd7, 0x87, 0x5f),
		Important: Fg(0xff, 0x5f, 0x5f),
		Highlight: Bg(0x44, 0x44, 0x00),
		Link:      Fg(0x5f, 0xaf, 0xff),
		Mention:   Fg(0x87, 0xd7, 0x87),
		Command:   Fg(0xd7, 0x87, 0xff),
		HashTag:   Fg(0x5f, 0xd7, 0xd7),
		Sticker:   Fg(0xff, 0x87, 0xaf),
		Markdown:  Faint,
	}
	PaletteDoomDracula = Palette{
		Text:      Fg(0xf8, 0xf8, 0xf2),
		Strong:    Fg(0xff, 0xb8, 0x6c),
		Emphasis:  Fg(0xf1, 0xfa, 0x8c),
		Code:      Fg(0x50, 0xfa, 0x7b),
		Important: Fg(0xff, 0x55, 0x55),
		Highlight: Bg(0x44, 0x47, 0x5a),
		Link:      Fg(0x8b, 0xe9, 0xfd),
		Mention:   Fg(0xbd, 0x93, 0xf9),
		Command:   Fg(0xff, 0x79, 0xc6),
		HashTag:   Fg(0x8b, 0xe9, 0xfd),
		Sticker:   Fg(0xff, 0x79, 0xc6),
		Markdown:  Fg(0x62, 0x72, 0xa4),
	}
	PaletteDoomNord = Palette{
		Text:      Fg(0xd8, 0xde, 0xe9),
		Strong:    Fg(0xeb, 0xcb, 0x8b),
		Emphasis:  Fg(0x88, 0xc0, 0xd0),
		Code:      Fg(0xa3, 0xbe, 0x8c),
		Important: Fg(0xbf, 0x61, 0x6a),
		Highlight: Bg(0x43, 0x4c, 0x5e),
		Link:      Fg(0x81, 0xa1, 0xc1),
		Mention:   Fg(0xa3, 0xbe, 0x8c),
		Command:   Fg(0xb4, 0x8e, 0xad),
		HashTag:   Fg(0x8f, 0xbc, 0xbb),
		Sticker:   Fg(0xd0, 0x87, 0x70),
		Markdown:  Fg(0x4c, 0x56, 0x6a),
	}
	PaletteDoomGruvbox = Palette{
		Text:      Fg(0xeb, 0xdb, 0xb2),
		Strong:    Fg(0xfa, 0xbd, 0x2f),
		Emphasis:  Fg(0x83, 0xa5, 0x98),
		Code:      Fg(0xb8, 0xbb, 0x26),
		Important: Fg(0xfb, 0x49, 0x34),
		Highlight: Bg(0x50, 0x49, 0x45),
		Link:      Fg(0x83, 0xa5, 0x98),
		Mention:   Fg(0x8e, 0xc0, 0x7c),
		Command:   Fg(0xd3, 0x86, 0x9b),
		HashTag:   Fg(0xfe, 0x80, 0x19),
		Sticker:   Fg(0xd3, 0x86, 0x9b),
		Markdown:  Fg(0x92, 0x83, 0x74),
	}
	PaletteTokyoNight = Palette{
		Text:      Fg(0xc0, 0xca, 0xf5),
		Strong:    Fg(0xff, 0x9e, 0x64),
		Emphasis:  Fg(0xbb, 0x9a, 0xf7),
		Code:      Fg(0x9e, 0xce, 0x6a),
		Important: Fg(0xf7, 0x76, 0x8e),
		Highlight: Bg(0x29, 0x2e, 0x42),
		Link:      Fg(0x7a, 0xa2, 0xf7),
		Mention:   Fg(0x73, 0xda, 0xca),
		Command:   Fg(0xbb, 0x9a, 0xf7),
		HashTag:   Fg(0x2a, 0xc3, 0xde),
		Sticker:   Fg(0xff, 0x9e, 0x64),
		Markdown:  Fg(0x56, 0x5f, 0x89),
	}
	PaletteSolarizedDark = Palette{
		Text:      Fg(0x83, 0x94, 0x96),
		Strong:    Fg(0xb5, 0x89, 0x00),
		Emphasis:  Fg(0x2a, 0xa1, 0x98),
		Code:      Fg(0x85, 0x99, 0x00),
		Important: Fg(0xdc, 0x32, 0x2f),
		Highlight: Bg(0x07, 0x36, 0x42),
		Link:      Fg(0x26, 0x8b, 0xd2),
		Mention:   Fg(0x85, 0x99, 0x00),
		Command:   Fg(0x6c, 0x71, 0xc4),
		HashTag:   Fg(0x2a, 0xa1, 0x98),
		Sticker:   Fg(0xd3, 0x36, 0x82),
		Markdown:  Fg(0x58, 0x6e, 0x75),
	}
	PaletteSolarizedLight = Palette{
		Text:      Fg(0x65, 0x7b, 0x83),
		Strong:    Fg(0xb5, 0x89, 0x00),
		Emphasis:  Fg(0x2a, 0xa1, 0x98),
		Code:      Fg(0x85, 0x99, 0x00),
		Important: Fg(0xdc, 0x32, 0x2f),
		Highlight: Bg(0xee, 0xe8, 0xd5),
		Link:      Fg(0x26, 0x8b, 0xd2),
		Mention:   Fg(0x85, 0x99, 0x00),
		Command:   Fg(0x6c, 0x71, 0xc4),
		HashTag:   Fg(0x2a, 0xa1, 0x98),
		Sticker:   Fg(0xd3, 0x36, 0x82),
		Markdown:  Fg(0x93, 0xa1, 0xa1),
	}
	PaletteCatppuccinMocha = Palette{
		Text:      Fg(0xcd, 0xd6, 0xf4),
		Strong:    Fg(0xfa, 0xb3, 0x87),
		Emphasis:  Fg(0xf5, 0xc2, 0xe7),
		Code:      Fg(0xa6, 0xe3, 0xa1),
		Important: Fg(0xf3, 0x8b, 0xa8),
		Highlight: Bg(0x45, 0x47, 0x5a),
		Link:      Fg(0x89, 0xb4, 0xfa),
		Mention:   Fg(0x94, 0xe2, 0xd5),
		Command:   Fg(0xcb, 0xa6, 0xf7),
		HashTag:   Fg(0x74, 0xc7, 0xec),
		Sticker:   Fg(0xf5, 0xc2, 0xe7),
		Markdown:  Fg(0x6c, 0x70, 0x86),
	}
	PaletteGithubLight = Palette{
		Text:      Fg(0x24, 0x29, 0x2f),
		Strong:    Fg(0x95, 0x38, 0x00),
		Emphasis:  Fg(0x82, 0x50, 0xdf),
		Code:      Fg(0x0a, 0x30, 0x69),
		Important: Fg(0xcf, 0x22, 0x2e),
		Highlight: Bg(0xff, 0xf8, 0xc5),
		Link:      Fg(0x09, 0x69, 0xda),
		Mention:   Fg(0x11, 0x63, 0x29),
		Command:   Fg(0x82, 0x50, 0xdf),
		HashTag:   Fg(0x09, 0x69, 0xda),
		Sticker:   Fg(0xbf, 0x39, 0x89),
		Markdown:  Fg(0x6e, 0x77, 0x81),
	}
)
