package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/spacesedan/slantscope/internal/inference"
)

// HugotRuntime owns a local inference session shared by every pipeline built
// from it.
type HugotRuntime struct {
	session  *hugot.Session
	modelDir string
	mu       sync.Mutex
}

func NewHugotRuntime(modelDir string) (*HugotRuntime, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("[HugotRuntime] failed to create model directory: %w", err)
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("[HugotRuntime] failed to initialize session: %w", err)
	}

	slog.Info("[HugotRuntime] Session initialized", slog.String("model_dir", modelDir))
	return &HugotRuntime{session: session, modelDir: modelDir}, nil
}

func (r *HugotRuntime) Close() {
	if r == nil || r.session == nil {
		return
	}
	if err := r.session.Destroy(); err != nil {
		slog.Warn("[HugotRuntime] Failed to destroy session", slog.String("error", err.Error()))
	}
}

// ensureModel downloads a model from the hub unless it is already on disk.
func (r *HugotRuntime) ensureModel(name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	local := filepath.Join(r.modelDir, strings.ReplaceAll(name, "/", "_"))
	if _, err := os.Stat(local); err == nil {
		slog.Info("[HugotRuntime] Using existing model", slog.String("path", local))
		return local, nil
	}

	slog.Info("[HugotRuntime] Model not found, downloading...", slog.String("model", name))
	path, err := hugot.DownloadModel(name, r.modelDir, hugot.NewDownloadOptions())
	if err != nil {
		return "", fmt.Errorf("[HugotRuntime] failed to download %s: %w", name, err)
	}
	slog.Info("[HugotRuntime] Model downloaded successfully", slog.String("path", path))
	return path, nil
}

type HugotSentimentModel struct {
	name     string
	pipeline *pipelines.TextClassificationPipeline
}

func (r *HugotRuntime) NewSentimentModel(name string) (*HugotSentimentModel, error) {
	path, err := r.ensureModel(name)
	if err != nil {
		return nil, err
	}

	config := hugot.TextClassificationConfig{
		ModelPath: path,
		Name:      "sentimentPipeline",
	}
	pipeline, err := hugot.NewPipeline(r.session, config)
	if err != nil {
		return nil, fmt.Errorf("[HugotRuntime] failed to initialize sentiment pipeline: %w", err)
	}
	return &HugotSentimentModel{name: name, pipeline: pipeline}, nil
}

func (m *HugotSentimentModel) Predict(ctx context.Context, text string) (inference.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return inference.Prediction{}, inference.NewError(m.name, "predict", err)
	}

	output, err := m.pipeline.RunPipeline([]string{text})
	if err != nil {
		return inference.Prediction{}, inference.NewError(m.name, "predict", err)
	}
	if len(output.ClassificationOutputs) == 0 || len(output.ClassificationOutputs[0]) == 0 {
		return inference.Prediction{}, inference.NewError(m.name, "predict", errors.New("empty output"))
	}

	best := output.ClassificationOutputs[0][0]
	for _, c := range output.ClassificationOutputs[0][1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return inference.Prediction{Label: best.Label, Score: float64(best.Score)}, nil
}

// HugotZeroShotModel is built for one fixed label set.
type HugotZeroShotModel struct {
	name     string
	labels   []string
	pipeline *pipelines.ZeroShotClassificationPipeline
}

func (r *HugotRuntime) NewZeroShotModel(name string, labels []string) (*HugotZeroShotModel, error) {
	path, err := r.ensureModel(name)
	if err != nil {
		return nil, err
	}

	config := hugot.ZeroShotClassificationConfig{
		ModelPath: path,
		Name:      "zeroShotPipeline",
	}
	config.Options = append(config.Options,
		pipelines.WithLabels(labels),
		pipelines.WithHypothesisTemplate("This text contains {}."),
	)

	pipeline, err := hugot.NewPipeline(r.session, config)
	if err != nil {
		return nil, fmt.Errorf("[HugotRuntime] failed to initialize zero-shot pipeline: %w", err)
	}
	return &HugotZeroShotModel{name: name, labels: slices.Clone(labels), pipeline: pipeline}, nil
}

func (m *HugotZeroShotModel) Classify(ctx context.Context, text string, labels []string) (inference.Ranking, error) {
	if err := ctx.Err(); err != nil {
		return inference.Ranking{}, inference.NewError(m.name, "classify", err)
	}
	if !slices.Equal(sortedCopy(labels), sortedCopy(m.labels)) {
		return inference.Ranking{}, inference.NewError(m.name, "classify",
			fmt.Errorf("pipeline was built for labels %v", m.labels))
	}

	output, err := m.pipeline.RunPipeline([]string{text})
	if err != nil {
		return inference.Ranking{}, inference.NewError(m.name, "classify", err)
	}
	if len(output.ClassificationOutputs) == 0 {
		return inference.Ranking{}, inference.NewError(m.name, "classify", errors.New("empty output"))
	}

	sorted := output.ClassificationOutputs[0].SortedValues
	names := make([]string, 0, len(sorted))
	scores := make([]float64, 0, len(sorted))
	for _, kv := range sorted {
		names = append(names, kv.Key)
		scores = append(scores, float64(kv.Value))
	}
	return sortedRanking(names, scores), nil
}

func sortedCopy(in []string) []string {
	out := slices.Clone(in)
	slices.Sort(out)
	return out
}
