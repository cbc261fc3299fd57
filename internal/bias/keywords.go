package bias

import "github.com/spacesedan/slantscope/internal/models"

// Keywords match as whole words against the lower-cased sentence, so
// inflections that matter are listed separately.
var leftKeywords = []string{
	"progressive", "social justice", "inequality", "climate justice",
	"workers' rights", "systemic racism", "universal healthcare",
	"gun control", "corporate greed", "living wage", "marginalized",
	"reproductive rights", "wealth tax", "green new deal",
}

var rightKeywords = []string{
	"conservative", "traditional values", "free market", "tax cuts",
	"border security", "illegal aliens", "second amendment",
	"law and order", "big government", "religious liberty",
	"deregulation", "family values", "job creators", "woke",
}

var loadedKeywords = []string{
	"catastrophic", "crisis", "crises", "disaster", "disasters",
	"radical", "radicals", "extremist", "extremists", "outrageous",
	"shocking", "devastating", "evil", "destroy", "destroyed",
	"destroying", "slams", "propaganda", "regime", "invasion",
	"disgraceful",
}

// Hypothesis labels sent to zero-shot models, keyed to result labels.
var zeroShotLabels = []struct {
	hypothesis string
	label      string
}{
	{"neutral", models.BiasNeutral},
	{"left-leaning bias", models.BiasLeftLeaning},
	{"right-leaning bias", models.BiasRightLeaning},
	{"loaded language", models.BiasLoadedLanguage},
}
