// Package sentiment labels single sentences as positive, negative or neutral.
package sentiment

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/spacesedan/slantscope/internal/inference"
	"github.com/spacesedan/slantscope/internal/models"
	"github.com/spacesedan/slantscope/internal/textnorm"
)

const (
	PHRASE_SCORE     = 0.9
	NEUTRAL_SCORE    = 0.5
	CONFIDENCE_FLOOR = 0.55
	MODEL_INPUT_MAX  = 512
)

var wordPattern = regexp.MustCompile(`[a-z']+`)

type Analyzer struct {
	model   inference.Handle[inference.SentimentModel]
	timeout time.Duration
}

// NewAnalyzer builds an analyzer over an optional model. A zero timeout leaves
// the caller's deadline in charge.
func NewAnalyzer(model inference.Handle[inference.SentimentModel], timeout time.Duration) *Analyzer {
	return &Analyzer{model: model, timeout: timeout}
}

// Analyze never fails. Phrase lists win over the model, and the word counts
// are used when the model is missing or errors.
func (a *Analyzer) Analyze(ctx context.Context, sentence string) models.SentimentResult {
	if strings.TrimSpace(sentence) == "" {
		return models.SentimentResult{
			Label:  models.SentimentNeutral,
			Score:  NEUTRAL_SCORE,
			Method: models.MethodDefault,
		}
	}

	result := a.classify(ctx, sentence)
	result.Compound = Compound(sentence)
	return result
}

func (a *Analyzer) classify(ctx context.Context, sentence string) models.SentimentResult {
	lowered := strings.ToLower(textnorm.NormalizeQuotes(sentence))

	if containsAny(lowered, negativePhrases) {
		return models.SentimentResult{Label: models.SentimentNegative, Score: PHRASE_SCORE, Method: models.MethodPhrase}
	}
	if containsAny(lowered, positivePhrases) {
		return models.SentimentResult{Label: models.SentimentPositive, Score: PHRASE_SCORE, Method: models.MethodPhrase}
	}

	if model, ok := a.model.Get(); ok {
		result, err := a.predict(ctx, model, sentence)
		if err == nil {
			return result
		}

		var inferr *inference.Error
		if errors.As(err, &inferr) {
			slog.Warn("[SentimentAnalyzer] Model failed, using word counts",
				slog.String("model", inferr.Model),
				slog.String("error", inferr.Err.Error()))
		} else {
			slog.Warn("[SentimentAnalyzer] Model failed, using word counts",
				slog.String("error", err.Error()))
		}
	}

	return countWords(lowered)
}

func (a *Analyzer) predict(ctx context.Context, model inference.SentimentModel, sentence string) (models.SentimentResult, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	prediction, err := model.Predict(ctx, truncate(sentence, MODEL_INPUT_MAX))
	if err != nil {
		return models.SentimentResult{}, err
	}

	raw := strings.ToLower(prediction.Label)
	label := models.SentimentNeutral
	switch {
	case prediction.Score <= CONFIDENCE_FLOOR:
	case strings.Contains(raw, "neg"):
		label = models.SentimentNegative
	case strings.Contains(raw, "pos"):
		label = models.SentimentPositive
	}

	return models.SentimentResult{Label: label, Score: prediction.Score, Method: models.MethodModel}, nil
}

func countWords(lowered string) models.SentimentResult {
	var pos, neg int
	for _, word := range wordPattern.FindAllString(lowered, -1) {
		word = strings.Trim(word, "'")
		if _, ok := positiveWords[word]; ok {
			pos++
		}
		if _, ok := negativeWords[word]; ok {
			neg++
		}
	}

	total := float64(pos + neg)
	switch {
	case pos > neg:
		return models.SentimentResult{Label: models.SentimentPositive, Score: float64(pos) / total, Method: models.MethodLexicon}
	case neg > pos:
		return models.SentimentResult{Label: models.SentimentNegative, Score: float64(neg) / total, Method: models.MethodLexicon}
	default:
		return models.SentimentResult{Label: models.SentimentNeutral, Score: NEUTRAL_SCORE, Method: models.MethodLexicon}
	}
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// truncate cuts at a rune boundary.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
