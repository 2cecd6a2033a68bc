package fstr

import (
	"strings"

	"github.com/muesli/reflow/ansi"
)

// truncateWithEllipsis shortens text to limit columns, cutting between
// grapheme clusters.
func truncateWithEllipsis(text string, limit int) string {
	if ansi.PrintableRuneWidth(text) <= limit {
		return text
	}
	if limit <= 0 {
		return ""
	}
	if limit == 1 {
		return "…"
	}
	var b strings.Builder
	width := 0
	for rest := text; rest != ""; {
		cluster := nextGrapheme(rest)
		w := ansi.PrintableRuneWidth(cluster)
		if width+w > limit-1 {
			break
		}
		b.WriteString(cluster)
		width += w
		rest = rest[len(cluster):]
	}
	return b.String() + "…"
}

// fitURL drops the scheme and then truncates until url fits in limit.
func fitURL(url string, limit int) string {
	if ansi.PrintableRuneWidth(url) <= limit {
		return url
	}
	if idx := strings.Index(url, "://"); idx != -1 {
		trimmed := url[idx+3:]
		if ansi.PrintableRuneWidth(trimmed) <= limit {
			return trimmed
		}
		url = trimmed
	}
	return truncateWithEllipsis(url, limit)
}
