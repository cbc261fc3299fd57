package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/slantscope/internal/inference"
	"github.com/spacesedan/slantscope/internal/models"
)

func newTestHFClient(t *testing.T, handler http.HandlerFunc) *HuggingFaceClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewHuggingFaceClient(server.URL+"/", "test-token", 5*time.Second)
	require.NoError(t, err)
	return client
}

func TestNewHuggingFaceClientRequiresToken(t *testing.T) {
	_, err := NewHuggingFaceClient("https://example.com", "", time.Second)
	assert.ErrorIs(t, err, ErrMissingHFToken)
}

func TestHFSentimentModelPredictNested(t *testing.T) {
	client := newTestHFClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sentiment-model", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body models.TextClassificationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "great news", body.Inputs)

		w.Write([]byte(`[[{"label":"neutral","score":0.1},{"label":"positive","score":0.85}]]`))
	})

	model := HFSentimentModel{Client: client, Model: "sentiment-model"}
	pred, err := model.Predict(context.Background(), "great news")

	require.NoError(t, err)
	assert.Equal(t, "positive", pred.Label)
	assert.InDelta(t, 0.85, pred.Score, 1e-9)
}

func TestHFSentimentModelPredictFlat(t *testing.T) {
	client := newTestHFClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"label":"NEGATIVE","score":0.91}]`))
	})

	pred, err := HFSentimentModel{Client: client, Model: "m"}.Predict(context.Background(), "bad")

	require.NoError(t, err)
	assert.Equal(t, "NEGATIVE", pred.Label)
}

func TestHFSentimentModelReturnsInferenceError(t *testing.T) {
	client := newTestHFClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad input"}`))
	})

	_, err := HFSentimentModel{Client: client, Model: "m"}.Predict(context.Background(), "x")

	var infErr *inference.Error
	require.ErrorAs(t, err, &infErr)
	assert.Equal(t, "m", infErr.Model)
}

func TestHuggingFaceClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestHFClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.NotEmpty(t, body, "retried request must resend its body")
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[[{"label":"positive","score":0.9}]]`))
	})

	labels, err := client.ClassifyText(context.Background(), "m", "hello")

	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHFZeroShotModelClassify(t *testing.T) {
	client := newTestHFClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body models.ZeroShotRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"a", "b"}, body.Parameters.CandidateLabels)

		w.Write([]byte(`{"sequence":"text","labels":["b","a"],"scores":[0.8,0.2]}`))
	})

	ranking, err := HFZeroShotModel{Client: client, Model: "zs"}.Classify(context.Background(), "text", []string{"a", "b"})

	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ranking.Labels)
	assert.Equal(t, []float64{0.8, 0.2}, ranking.Scores)
}

func TestHFZeroShotModelSortsListFormat(t *testing.T) {
	client := newTestHFClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"label":"a","score":0.3},{"label":"b","score":0.7}]`))
	})

	ranking, err := HFZeroShotModel{Client: client, Model: "zs"}.Classify(context.Background(), "text", []string{"a", "b"})

	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ranking.Labels)
	assert.Equal(t, []float64{0.7, 0.3}, ranking.Scores)
}

func TestHealthCheck(t *testing.T) {
	healthy := newTestHFClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[{"label":"neutral","score":0.9}]]`))
	})
	assert.True(t, healthy.HealthCheck(context.Background(), "m"))

	broken := newTestHFClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	assert.False(t, broken.HealthCheck(context.Background(), "m"))
}
