// Package textnorm cleans extracted text and splits it into sentences.
package textnorm

import (
	"regexp"
	"strings"
)

// RE2's \s is ASCII-only, so unicode separators are listed explicitly.
const whitespaceClass = `[\s\v\p{Z}\x{85}]`

var (
	whitespacePattern = regexp.MustCompile(whitespaceClass + `+`)
	// The terminal mark is part of the match so the split point can be placed
	// right after it.
	boundaryPattern = regexp.MustCompile(`[.!?]` + whitespaceClass + `+`)

	quoteReplacer = strings.NewReplacer(
		"“", `"`,
		"”", `"`,
		"‘", "'",
		"’", "'",
	)
)

// Clean collapses whitespace, straightens curly quotes and trims the result.
// Clean(Clean(x)) == Clean(x).
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = quoteReplacer.Replace(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// NormalizeQuotes only straightens curly quotes.
func NormalizeQuotes(text string) string {
	return quoteReplacer.Replace(text)
}

// Segment splits text after '.', '?' or '!' when followed by whitespace.
// The terminal mark stays attached to its sentence and empty pieces are
// dropped. Abbreviations are not special-cased: "Dr. Smith" yields two
// sentences.
func Segment(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range boundaryPattern.FindAllStringIndex(text, -1) {
		// loc[0] is the terminal mark, which is always one byte.
		end := loc[0] + 1
		sentences = appendSentence(sentences, text[start:end])
		start = loc[1]
	}
	return appendSentence(sentences, text[start:])
}

func appendSentence(sentences []string, piece string) []string {
	piece = strings.TrimSpace(piece)
	if piece == "" {
		return sentences
	}
	return append(sentences, piece)
}
