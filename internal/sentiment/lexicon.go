package sentiment

// Substring matches against the lower-cased sentence. Negative phrases are
// checked first.
var negativePhrases = []string{
	"less committed", "avoiding responsibilities", "can't possibly contribute",
	"lazy", "weak", "unreliable", "not serious", "worthless",
	"caused offense", "biased", "halted feature", "problematic",
	"offended", "controversial", "criticism", "failure", "mistake",
	"error", "wrong", "flawed", "negative impact",
}

var positivePhrases = []string{
	"improved", "success", "helpful", "advancement", "achievement",
	"effective", "robust", "strong", "valuable", "correct",
}

// Whole-word sets for the counting fallback.
var positiveWords = wordSet(
	"good", "great", "excellent", "positive", "benefit", "beneficial",
	"progress", "win", "gain", "growth", "hope", "hopeful", "praise",
	"support", "happy", "best", "better", "safe", "fair", "celebrate",
	"thrive", "boost", "recover", "recovery", "agree", "welcome",
)

var negativeWords = wordSet(
	"bad", "poor", "terrible", "awful", "negative", "harm", "harmful",
	"loss", "lose", "decline", "fear", "crisis", "danger", "dangerous",
	"threat", "attack", "fail", "fails", "worse", "worst", "angry",
	"unfair", "collapse", "disaster", "risk", "corrupt", "scandal",
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
