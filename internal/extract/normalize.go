package extract

import (
	"regexp"
	"strings"
)

var (
	spaceRE  = regexp.MustCompile(`\s+`)
	bulletRE = regexp.MustCompile(`^[\x{2022}\x{2023}\x{25E6}\x{2043}\x{2219}]\s*`)
	imageRE  = regexp.MustCompile(`\s*\[Image:.*?\]\s*`)
)

// Clean normalizes raw text pulled out of a node: NBSP to space, whitespace
// runs (newlines included) collapsed to a single space, a leading bullet
// glyph stripped, and "[Image: ...]" annotations removed wherever they
// appear. Empty input yields "".
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = spaceRE.ReplaceAllString(strings.TrimSpace(text), " ")
	text = bulletRE.ReplaceAllString(text, "")
	text = imageRE.ReplaceAllString(text, "")
	return text
}
