package sentiment

import (
	"regexp"

	"github.com/jonreiter/govader"
)

var (
	vader = govader.NewSentimentIntensityAnalyzer()

	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// RemoveLinks keeps the text of markdown links and drops bare URLs, which
// VADER would otherwise score as words.
func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1")
	return urlPattern.ReplaceAllString(input, "")
}

// Compound returns the VADER compound polarity in [-1, 1].
func Compound(text string) float64 {
	return vader.PolarityScores(RemoveLinks(text)).Compound
}
