package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/slantscope/config"
)

func testConfig(backend string) config.Config {
	return config.Config{
		ModelBackend:     backend,
		HFAPIToken:       "hf_test",
		HFInferenceURL:   "http://127.0.0.1:1",
		HFSentimentModel: "sentiment-model",
		HFZeroShotModel:  "zero-shot-model",
		InferenceTimeout: time.Second,
		OpenAIAPIKey:     "sk-test",
		SpeechAPIKey:     "speech-test",
		SpeechLanguage:   "en-US",
		YtDlpPath:        "/nonexistent/yt-dlp",
		AnalysisWorkers:  2,
	}
}

func TestNewWithDisabledBackend(t *testing.T) {
	c := New(testConfig(config.BackendNone))
	defer c.Close()

	assert.False(t, c.Models.Sentiment.IsLoaded())
	assert.False(t, c.Models.ZeroShot.IsLoaded())
	assert.ErrorIs(t, c.Models.Sentiment.Reason(), errBackendDisabled)
	assert.True(t, c.Models.PrimarySpeech.IsLoaded())
	assert.True(t, c.Models.SecondarySpeech.IsLoaded())
	assert.Equal(t, InferenceDisabled, c.InferenceStatus())

	status := c.ModelStatus()
	assert.Contains(t, status["sentiment"], "unavailable")
	assert.Equal(t, "loaded", status["transcription"])
	require.NotNil(t, c.Orchestrator)
}

func TestNewWithHostedBackend(t *testing.T) {
	c := New(testConfig(config.BackendHuggingFace))
	defer c.Close()

	assert.True(t, c.Models.Sentiment.IsLoaded())
	assert.True(t, c.Models.ZeroShot.IsLoaded())
	assert.Equal(t, InferenceHealthy, c.InferenceStatus())
}

func TestNewWithoutHostedToken(t *testing.T) {
	cfg := testConfig(config.BackendHuggingFace)
	cfg.HFAPIToken = ""
	cfg.OpenAIAPIKey = ""

	c := New(cfg)
	defer c.Close()

	assert.False(t, c.Models.Sentiment.IsLoaded())
	assert.False(t, c.Models.PrimarySpeech.IsLoaded())
	assert.Equal(t, "loaded", c.ModelStatus()["transcription"])
	assert.Equal(t, InferenceDisabled, c.InferenceStatus())
}

func TestNewWithUnknownBackend(t *testing.T) {
	c := New(testConfig("mystery"))
	defer c.Close()

	assert.Contains(t, c.Models.Sentiment.Reason().Error(), "mystery")
}
