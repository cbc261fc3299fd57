// Package app builds the process-wide application context: configuration,
// model handles and the services wired on top of them.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/spacesedan/slantscope/config"
	"github.com/spacesedan/slantscope/internal/analysis"
	"github.com/spacesedan/slantscope/internal/bias"
	"github.com/spacesedan/slantscope/internal/clients"
	"github.com/spacesedan/slantscope/internal/extraction"
	"github.com/spacesedan/slantscope/internal/inference"
	"github.com/spacesedan/slantscope/internal/monitoring"
	"github.com/spacesedan/slantscope/internal/sentiment"
	"github.com/spacesedan/slantscope/internal/transcription"
)

const (
	InferenceHealthy   = "healthy"
	InferenceUnhealthy = "unhealthy"
	InferenceLocal     = "local"
	InferenceDisabled  = "disabled"
)

var errBackendDisabled = errors.New("MODEL_BACKEND is none")

type Context struct {
	Config config.Config
	Models inference.Models

	Transcription *transcription.Engine
	Extractor     *extraction.Extractor
	Sentiment     *sentiment.Analyzer
	Bias          *bias.Classifier
	Orchestrator  *analysis.Orchestrator

	healthChecker monitoring.HealthChecker
	healthy       atomic.Bool
	hugot         *clients.HugotRuntime
	cache         *clients.ValkeyClient
	cancel        context.CancelFunc
}

var (
	appContext *Context
	once       sync.Once
)

// Get builds the application context on first use. Later calls return the
// same instance and ignore cfg.
func Get(cfg config.Config) *Context {
	once.Do(func() {
		appContext = New(cfg)
	})
	return appContext
}

// New builds an application context. Models that cannot be loaded are kept as
// Unavailable handles.
func New(cfg config.Config) *Context {
	c := &Context{Config: cfg}
	c.loadTextModels()
	c.loadSpeechModels()

	if cfg.ValkeyAddress != "" {
		cache, err := clients.NewValkeyClient(clients.ValkeyConfig{
			Address:  cfg.ValkeyAddress,
			Password: cfg.ValkeyPassword,
			UseTLS:   cfg.ValkeyTLS,
			TTL:      cfg.CacheTTL,
		})
		if err != nil {
			slog.Warn("[AppContext] Extraction cache disabled", slog.String("error", err.Error()))
		} else {
			c.cache = cache
		}
	}

	var downloader extraction.Downloader
	if ytdlp, err := extraction.NewYtDlp(cfg.YtDlpPath); err != nil {
		slog.Warn("[AppContext] Video extraction disabled", slog.String("error", err.Error()))
	} else {
		downloader = ytdlp
	}

	opts := extraction.Options{
		FetchTimeout:        cfg.FetchTimeout,
		VideoTimeout:        cfg.VideoTimeout,
		ReadabilityFallback: cfg.ReadabilityFallback,
	}
	if c.cache != nil {
		opts.Cache = c.cache
	}

	c.Transcription = transcription.NewEngine(c.Models.PrimarySpeech, c.Models.SecondarySpeech, transcription.FFmpegConverter{})
	c.Extractor = extraction.NewExtractor(c.Transcription, downloader, opts)
	c.Sentiment = sentiment.NewAnalyzer(c.Models.Sentiment, cfg.InferenceTimeout)
	c.Bias = bias.NewClassifier(c.Models.ZeroShot, cfg.InferenceTimeout)
	c.Orchestrator = analysis.NewOrchestrator(c.Extractor, c.Sentiment, c.Bias, cfg.AnalysisWorkers)

	c.healthy.Store(true)
	slog.Info("[AppContext] Initialized",
		slog.String("backend", cfg.ModelBackend),
		slog.String("sentiment", c.Models.Sentiment.Status()),
		slog.String("zero_shot", c.Models.ZeroShot.Status()),
		slog.String("primary_speech", c.Models.PrimarySpeech.Status()),
		slog.String("secondary_speech", c.Models.SecondarySpeech.Status()))
	return c
}

func (c *Context) loadTextModels() {
	cfg := c.Config
	switch cfg.ModelBackend {
	case config.BackendHuggingFace:
		hf, err := clients.NewHuggingFaceClient(cfg.HFInferenceURL, cfg.HFAPIToken, cfg.InferenceTimeout)
		if err != nil {
			c.Models.Sentiment = inference.Unavailable[inference.SentimentModel](err)
			c.Models.ZeroShot = inference.Unavailable[inference.ZeroShotModel](err)
			return
		}
		sentimentModel := clients.HFSentimentModel{Client: hf, Model: cfg.HFSentimentModel}
		c.Models.Sentiment = inference.Loaded[inference.SentimentModel](sentimentModel)
		c.Models.ZeroShot = inference.Loaded[inference.ZeroShotModel](clients.HFZeroShotModel{Client: hf, Model: cfg.HFZeroShotModel})
		c.healthChecker = sentimentModel

	case config.BackendHugot:
		runtime, err := clients.NewHugotRuntime(cfg.HugotModelDir)
		if err != nil {
			c.Models.Sentiment = inference.Unavailable[inference.SentimentModel](err)
			c.Models.ZeroShot = inference.Unavailable[inference.ZeroShotModel](err)
			return
		}
		c.hugot = runtime

		if m, err := runtime.NewSentimentModel(cfg.HugotSentiment); err != nil {
			c.Models.Sentiment = inference.Unavailable[inference.SentimentModel](err)
		} else {
			c.Models.Sentiment = inference.Loaded[inference.SentimentModel](m)
		}
		if m, err := runtime.NewZeroShotModel(cfg.HugotZeroShot, bias.ZeroShotLabels()); err != nil {
			c.Models.ZeroShot = inference.Unavailable[inference.ZeroShotModel](err)
		} else {
			c.Models.ZeroShot = inference.Loaded[inference.ZeroShotModel](m)
		}

	case config.BackendNone:
		c.Models.Sentiment = inference.Unavailable[inference.SentimentModel](errBackendDisabled)
		c.Models.ZeroShot = inference.Unavailable[inference.ZeroShotModel](errBackendDisabled)

	default:
		err := fmt.Errorf("unknown MODEL_BACKEND %q", cfg.ModelBackend)
		c.Models.Sentiment = inference.Unavailable[inference.SentimentModel](err)
		c.Models.ZeroShot = inference.Unavailable[inference.ZeroShotModel](err)
	}
}

func (c *Context) loadSpeechModels() {
	cfg := c.Config

	if oa, err := clients.NewOpenAIClient(cfg.OpenAIAPIKey); err != nil {
		c.Models.PrimarySpeech = inference.Unavailable[inference.SpeechModel](err)
	} else {
		c.Models.PrimarySpeech = inference.Loaded[inference.SpeechModel](clients.WhisperModel{Client: oa})
	}

	sc, err := clients.NewSpeechClient(context.Background(), clients.SpeechConfig{
		APIKey:       cfg.SpeechAPIKey,
		AccessToken:  cfg.SpeechAccessToken,
		LanguageCode: cfg.SpeechLanguage,
	})
	if err != nil {
		c.Models.SecondarySpeech = inference.Unavailable[inference.SpeechModel](err)
	} else {
		c.Models.SecondarySpeech = inference.Loaded[inference.SpeechModel](sc)
	}
}

// StartMonitoring launches the background inference health monitor for
// hosted models. It is a no-op for local or disabled backends.
func (c *Context) StartMonitoring(ctx context.Context) {
	if c.healthChecker == nil {
		return
	}
	ctx, c.cancel = context.WithCancel(ctx)
	go monitoring.MonitorInferenceHealth(ctx, c.Config.HFSentimentModel, c.healthChecker, &c.healthy, monitoring.HEALTHCHECK_INTERVAL)
}

// InferenceStatus summarizes the hosted inference health for /api/health.
func (c *Context) InferenceStatus() string {
	switch {
	case c.healthChecker != nil && c.healthy.Load():
		return InferenceHealthy
	case c.healthChecker != nil:
		return InferenceUnhealthy
	case c.hugot != nil:
		return InferenceLocal
	default:
		return InferenceDisabled
	}
}

func (c *Context) Close() {
	if c.cancel != nil {
		c.cancel()
	}
	c.cache.Close()
	c.hugot.Close()
}

// ModelStatus reports each model-backed capability for /api/health.
func (c *Context) ModelStatus() map[string]string {
	speech := c.Models.PrimarySpeech.Status()
	if !c.Models.PrimarySpeech.IsLoaded() {
		speech = c.Models.SecondarySpeech.Status()
	}
	return map[string]string{
		"sentiment":     c.Models.Sentiment.Status(),
		"bias":          c.Models.ZeroShot.Status(),
		"transcription": speech,
	}
}
