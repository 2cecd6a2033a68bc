// Package fstr models the text of a chat composer as a sequence of typed,
// formatted tokens.
//
// Parse scans raw input into text, link, mention, command, hashtag, legacy
// user sticker and markdown delimiter tokens, annotating emoji inside text.
// The result is a Sequence: an ordered, gapless list of tokens whose values
// concatenate back to the input.
//
// Sequences are values. Every operation returns a new Sequence and merges
// adjacent tokens that became indistinguishable:
//   - SplitAt and Merge maintain token boundaries
//   - ApplyFormat and UpdateTokenFormat change format bitmasks over a range
//   - InsertText, RemoveText, ReplaceText and SetLink edit content
//
// Offsets are byte offsets into Sequence.Markdown, the text including
// markdown delimiters.
//
// Example:
//
//	seq := fstr.Parse("hi *@bob*, see example.com", fstr.WithCommands(true))
//	seq, err := fstr.ApplyFormat(seq, 0, 2, fstr.AddFormat(fstr.Underline))
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = fstr.Render(fstr.RenderRequest{
//		Sequence: seq,
//		Writer:   os.Stdout,
//		Width:    80,
//		Theme:    fstr.DefaultTheme(),
//	})
//
// Invalid ranges fail with ErrInvalidRange and splits inside emoji, grapheme
// clusters or atomic tokens fail with ErrInvalidSplit; on error the input
// sequence is never partially updated.
package fstr
