package inference

import "context"

// Prediction is the top label of a text-classification model.
type Prediction struct {
	Label string
	Score float64
}

// Ranking is a zero-shot result ordered from most to least likely.
type Ranking struct {
	Labels []string
	Scores []float64
}

// Top returns the best label, or false if the ranking is empty.
func (r Ranking) Top() (string, float64, bool) {
	if len(r.Labels) == 0 || len(r.Scores) == 0 {
		return "", 0, false
	}
	return r.Labels[0], r.Scores[0], true
}

type SentimentModel interface {
	Predict(ctx context.Context, text string) (Prediction, error)
}

type ZeroShotModel interface {
	Classify(ctx context.Context, text string, labels []string) (Ranking, error)
}

// SpeechModel turns an audio file into text.
type SpeechModel interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Models groups the process-wide model handles. Built once at startup and
// only read afterwards.
type Models struct {
	Sentiment       Handle[SentimentModel]
	ZeroShot        Handle[ZeroShotModel]
	PrimarySpeech   Handle[SpeechModel]
	SecondarySpeech Handle[SpeechModel]
}
