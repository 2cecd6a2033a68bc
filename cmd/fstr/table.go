package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"pkt.systems/fstr"
)

var tableHeader = []string{"#", "TYPE", "RANGE", "FORMAT", "VALUE", "DETAIL"}

// writeTable prints one row per token with columns padded to their widest
// cell in terminal columns.
func writeTable(w io.Writer, seq fstr.Sequence) error {
	rows := [][]string{tableHeader}
	pos := 0
	for i, t := range seq {
		end := pos + len(t.Value)
		rows = append(rows, []string{
			strconv.Itoa(i),
			t.Type.String(),
			fmt.Sprintf("%d-%d", pos, end),
			t.Format.String(),
			strconv.Quote(t.Value),
			tokenDetail(t),
		})
		pos = end
	}

	widths := make([]int, len(tableHeader))
	for _, row := range rows {
		for c, cell := range row {
			if n := runewidth.StringWidth(cell); n > widths[c] {
				widths[c] = n
			}
		}
	}
	var b strings.Builder
	for _, row := range rows {
		for c, cell := range row {
			if c == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[c]))
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func tokenDetail(t fstr.Token) string {
	var parts []string
	switch t.Type {
	case fstr.TypeLink:
		parts = append(parts, "link="+t.Link)
		if t.Auto {
			parts = append(parts, "auto")
		}
	case fstr.TypeMention:
		parts = append(parts, "mention="+t.Mention)
	case fstr.TypeCommand:
		parts = append(parts, "command="+t.Command)
	case fstr.TypeHashTag:
		parts = append(parts, "hashtag="+t.HashTag)
	case fstr.TypeUserSticker:
		parts = append(parts, "sticker="+t.StickerID)
	case fstr.TypeMarkdown:
		side := "close"
		if t.MdStart {
			side = "open"
		}
		parts = append(parts, "md="+t.MdType.String(), side)
	case fstr.TypeTextEmoji:
		parts = append(parts, "alias="+t.Alias)
	case fstr.TypeText, fstr.TypeEmoji:
	default:
		panic(fmt.Sprintf("fstr: unknown token type %d", t.Type))
	}
	if t.Sticky {
		parts = append(parts, "sticky")
	}
	for _, e := range t.Emoji {
		if e.Emoji != "" {
			parts = append(parts, fmt.Sprintf("emoji[%d:%d]=%s", e.From, e.To, e.Emoji))
			continue
		}
		parts = append(parts, fmt.Sprintf("emoji[%d:%d]", e.From, e.To))
	}
	return strings.Join(parts, " ")
}
