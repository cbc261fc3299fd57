package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/spacesedan/slantscope/internal/inference"
	"github.com/spacesedan/slantscope/internal/models"
)

var ErrMissingHFToken = errors.New("HF_API_TOKEN is not set")

type HuggingFaceClient struct {
	Client  *http.Client
	BaseURL string
	Token   string
}

func NewHuggingFaceClient(baseURL, token string, timeout time.Duration) (*HuggingFaceClient, error) {
	if token == "" {
		return nil, ErrMissingHFToken
	}
	slog.Info("[HuggingFaceClient] Initializing Client",
		slog.String("base_url", baseURL),
		slog.Duration("timeout", timeout))
	return &HuggingFaceClient{
		Client:  &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
	}, nil
}

func (h *HuggingFaceClient) DoWithRetry(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := INITIAL_BACKOFF

	for attempt := 0; attempt < MAX_RETRIES; attempt++ {
		if attempt > 0 && req.GetBody != nil {
			body, bodyErr := req.GetBody()
			if bodyErr != nil {
				return nil, bodyErr
			}
			req.Body = body
		}

		resp, err = h.Client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		if resp != nil {
			resp.Body.Close()
		}

		slog.Warn("[HuggingFaceClient] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", errMsg(err, resp)))

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, MAX_BACKOFF)
	}

	if err == nil {
		err = fmt.Errorf("status code %d", resp.StatusCode)
	}
	return nil, err
}

// ClassifyText runs a text-classification model and returns its labels sorted
// by score.
func (h *HuggingFaceClient) ClassifyText(ctx context.Context, model, text string) ([]models.ClassificationLabel, error) {
	var raw json.RawMessage
	start := time.Now()

	if err := h.postJSON(ctx, model, models.TextClassificationRequest{Inputs: text}, &raw); err != nil {
		slog.Error("[HuggingFaceClient] Text classification request failed",
			slog.String("model", model),
			slog.Duration("elapsed", time.Since(start)))
		return nil, err
	}

	// Depending on the deployment the labels are either nested per input or flat.
	var nested models.TextClassificationResponse
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 {
		return nested[0], nil
	}
	var flat []models.ClassificationLabel
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal classification: %w", err)
	}
	return flat, nil
}

// ZeroShot ranks candidate labels against text.
func (h *HuggingFaceClient) ZeroShot(ctx context.Context, model, text string, labels []string) (models.ZeroShotResponse, error) {
	var raw json.RawMessage
	start := time.Now()

	input := models.ZeroShotRequest{
		Inputs:     text,
		Parameters: models.ZeroShotParameters{CandidateLabels: labels},
	}
	if err := h.postJSON(ctx, model, input, &raw); err != nil {
		slog.Error("[HuggingFaceClient] Zero-shot request failed",
			slog.String("model", model),
			slog.Duration("elapsed", time.Since(start)))
		return models.ZeroShotResponse{}, err
	}

	var result models.ZeroShotResponse
	if err := json.Unmarshal(raw, &result); err == nil && len(result.Labels) > 0 {
		return result, nil
	}
	var list models.ZeroShotListResponse
	if err := json.Unmarshal(raw, &list); err != nil {
		return models.ZeroShotResponse{}, fmt.Errorf("failed to unmarshal zero-shot: %w", err)
	}
	result = models.ZeroShotResponse{Sequence: text}
	for _, l := range list {
		result.Labels = append(result.Labels, l.Label)
		result.Scores = append(result.Scores, l.Score)
	}
	return result, nil
}

// HealthCheck sends a tiny classification request to the given model.
func (h *HuggingFaceClient) HealthCheck(ctx context.Context, model string) bool {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := h.ClassifyText(ctx, model, "ok")
	if err != nil {
		slog.Warn("[HuggingFaceClient] Health check failed",
			slog.String("model", model),
			slog.String("error", err.Error()))
		return false
	}
	return true
}

// helper function for posting data to the inference API
func (h *HuggingFaceClient) postJSON(ctx context.Context, model string, input interface{}, output interface{}) error {
	endpoint := h.BaseURL + "/" + model

	body, err := json.Marshal(input)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to marshal input",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to build request",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)
	req.Header.Set("Authorization", "Bearer "+h.Token)

	resp, err := h.DoWithRetry(req)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed request after retries",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("request failed after retries: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to read response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		slog.Error("[HuggingFaceClient] Unexpected status",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			getPreview(respBody))
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		slog.Error("[HuggingFaceClient] Failed to unmarshal response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
			getPreview(respBody),
			slog.Int("raw_response_length", len(respBody)))
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}

// HFSentimentModel exposes a hosted text-classification model as an
// inference.SentimentModel.
type HFSentimentModel struct {
	Client *HuggingFaceClient
	Model  string
}

func (m HFSentimentModel) Predict(ctx context.Context, text string) (inference.Prediction, error) {
	labels, err := m.Client.ClassifyText(ctx, m.Model, text)
	if err != nil {
		return inference.Prediction{}, inference.NewError(m.Model, "predict", err)
	}
	if len(labels) == 0 {
		return inference.Prediction{}, inference.NewError(m.Model, "predict", errors.New("empty response"))
	}
	best := labels[0]
	for _, l := range labels[1:] {
		if l.Score > best.Score {
			best = l
		}
	}
	return inference.Prediction{Label: best.Label, Score: best.Score}, nil
}

// HFZeroShotModel exposes a hosted zero-shot model as an inference.ZeroShotModel.
type HFZeroShotModel struct {
	Client *HuggingFaceClient
	Model  string
}

func (m HFZeroShotModel) Classify(ctx context.Context, text string, labels []string) (inference.Ranking, error) {
	out, err := m.Client.ZeroShot(ctx, m.Model, text, labels)
	if err != nil {
		return inference.Ranking{}, inference.NewError(m.Model, "classify", err)
	}
	if len(out.Labels) == 0 || len(out.Labels) != len(out.Scores) {
		return inference.Ranking{}, inference.NewError(m.Model, "classify", errors.New("malformed ranking"))
	}
	return sortedRanking(out.Labels, out.Scores), nil
}

func sortedRanking(labels []string, scores []float64) inference.Ranking {
	idx := make([]int, len(labels))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	ranking := inference.Ranking{
		Labels: make([]string, len(idx)),
		Scores: make([]float64, len(idx)),
	}
	for i, j := range idx {
		ranking.Labels[i] = labels[j]
		ranking.Scores[i] = scores[j]
	}
	return ranking
}

// HealthCheck probes the hosted sentiment model.
func (m HFSentimentModel) HealthCheck(ctx context.Context) bool {
	return m.Client.HealthCheck(ctx, m.Model)
}
