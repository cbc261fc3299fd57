// Package analysis runs sentence-level sentiment and bias classification over
// extracted documents.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spacesedan/slantscope/internal/models"
	"github.com/spacesedan/slantscope/internal/textnorm"
)

const (
	SNIPPET_LENGTH  = 300
	DEFAULT_WORKERS = 4
)

type Extractor interface {
	Extract(ctx context.Context, req models.AnalysisRequest) (models.ExtractedDocument, error)
}

type SentimentAnalyzer interface {
	Analyze(ctx context.Context, sentence string) models.SentimentResult
}

type BiasClassifier interface {
	Classify(ctx context.Context, sentence string) models.BiasResult
}

type Orchestrator struct {
	extractor Extractor
	sentiment SentimentAnalyzer
	bias      BiasClassifier
	workers   int
}

func NewOrchestrator(extractor Extractor, sentiment SentimentAnalyzer, bias BiasClassifier, workers int) *Orchestrator {
	if workers <= 0 {
		workers = DEFAULT_WORKERS
	}
	return &Orchestrator{
		extractor: extractor,
		sentiment: sentiment,
		bias:      bias,
		workers:   workers,
	}
}

// Run classifies every sentence of the document. Records come back in
// sentence order.
func (o *Orchestrator) Run(ctx context.Context, doc models.ExtractedDocument) ([]models.AnalysisRecord, error) {
	sentences := textnorm.Segment(doc.RawText)
	if len(sentences) == 0 {
		return nil, fmt.Errorf("%w: no sentences found in %s", models.ErrNoContent, doc.Source)
	}

	records := make([]models.AnalysisRecord, len(sentences))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < min(o.workers, len(sentences)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				records[i] = models.AnalysisRecord{
					Sentence:  sentences[i],
					Sentiment: o.sentiment.Analyze(ctx, sentences[i]),
					Bias:      o.bias.Classify(ctx, sentences[i]),
				}
			}
		}()
	}

	for i := range sentences {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return records, nil
}

// Analyze extracts the request's source and classifies its sentences.
func (o *Orchestrator) Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResponse, error) {
	start := time.Now()

	doc, err := o.extractor.Extract(ctx, req)
	if err != nil {
		return models.AnalysisResponse{}, err
	}

	records, err := o.Run(ctx, doc)
	if err != nil {
		return models.AnalysisResponse{}, err
	}

	slog.Info("[Orchestrator] Analysis complete",
		slog.String("source", doc.Source),
		slog.Int("sentences", len(records)),
		slog.Duration("elapsed", time.Since(start)))

	return models.AnalysisResponse{
		Source:        doc.Source,
		TextSnippet:   snippet(doc.RawText, SNIPPET_LENGTH),
		SentenceCount: len(records),
		Analysis:      records,
	}, nil
}

func snippet(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
