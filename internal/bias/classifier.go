// Package bias tallies partisan and loaded-language keywords in a sentence,
// deferring to a zero-shot model when no keyword matches.
package bias

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/spacesedan/slantscope/internal/inference"
	"github.com/spacesedan/slantscope/internal/models"
	"github.com/spacesedan/slantscope/internal/textnorm"
)

const MODEL_INPUT_MAX = 512

type Classifier struct {
	model   inference.Handle[inference.ZeroShotModel]
	timeout time.Duration
}

func NewClassifier(model inference.Handle[inference.ZeroShotModel], timeout time.Duration) *Classifier {
	return &Classifier{model: model, timeout: timeout}
}

// ZeroShotLabels are the candidate labels a zero-shot model is asked to rank.
// Local pipelines must be built with exactly this set.
func ZeroShotLabels() []string {
	labels := make([]string, 0, len(zeroShotLabels))
	for _, l := range zeroShotLabels {
		labels = append(labels, l.hypothesis)
	}
	return labels
}

type tally struct {
	left, right, loaded int
}

func (t tally) total() int {
	return t.left + t.right + t.loaded
}

var (
	leftPattern   = keywordPattern(leftKeywords)
	rightPattern  = keywordPattern(rightKeywords)
	loadedPattern = keywordPattern(loadedKeywords)
)

// keywordPattern matches any keyword as whole words, so "regime" does not
// fire inside "regimen".
func keywordPattern(keywords []string) *regexp.Regexp {
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

func count(text string) tally {
	return tally{
		left:   len(leftPattern.FindAllStringIndex(text, -1)),
		right:  len(rightPattern.FindAllStringIndex(text, -1)),
		loaded: len(loadedPattern.FindAllStringIndex(text, -1)),
	}
}

// Classify never fails. Loaded language outranks a partisan lean, and a lean
// needs a strict majority.
func (c *Classifier) Classify(ctx context.Context, sentence string) models.BiasResult {
	if strings.TrimSpace(sentence) == "" {
		return neutral(models.MethodDefault)
	}

	t := count(strings.ToLower(textnorm.NormalizeQuotes(sentence)))
	total := float64(t.total())

	switch {
	case t.loaded > 0:
		return models.BiasResult{Label: models.BiasLoadedLanguage, Score: float64(t.loaded) / total, Method: models.MethodKeyword}
	case t.left > t.right:
		return models.BiasResult{Label: models.BiasLeftLeaning, Score: float64(t.left) / total, Method: models.MethodKeyword}
	case t.right > t.left:
		return models.BiasResult{Label: models.BiasRightLeaning, Score: float64(t.right) / total, Method: models.MethodKeyword}
	case t.left > 0:
		return neutral(models.MethodKeyword)
	}

	model, ok := c.model.Get()
	if !ok {
		return neutral(models.MethodDefault)
	}

	result, err := c.rank(ctx, model, sentence)
	if err != nil {
		slog.Warn("[BiasClassifier] Zero-shot failed, defaulting to neutral",
			slog.String("error", err.Error()))
		return neutral(models.MethodDefault)
	}
	return result
}

func (c *Classifier) rank(ctx context.Context, model inference.ZeroShotModel, sentence string) (models.BiasResult, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	ranking, err := model.Classify(ctx, truncate(sentence, MODEL_INPUT_MAX), ZeroShotLabels())
	if err != nil {
		return models.BiasResult{}, err
	}

	top, score, ok := ranking.Top()
	if !ok {
		return models.BiasResult{}, inference.NewError("zero-shot", "classify", errEmptyRanking)
	}

	scores := make(map[string]float64, len(ranking.Labels))
	for i, l := range ranking.Labels {
		if i < len(ranking.Scores) {
			scores[resultLabel(l)] = ranking.Scores[i]
		}
	}

	return models.BiasResult{
		Label:  resultLabel(top),
		Score:  score,
		Scores: scores,
		Method: models.MethodModel,
	}, nil
}

func resultLabel(hypothesis string) string {
	for _, l := range zeroShotLabels {
		if strings.EqualFold(l.hypothesis, hypothesis) {
			return l.label
		}
	}
	return hypothesis
}

func neutral(method string) models.BiasResult {
	return models.BiasResult{Label: models.BiasNeutral, Score: 0, Method: method}
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
