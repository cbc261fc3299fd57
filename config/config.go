package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendHuggingFace = "huggingface"
	BackendHugot       = "hugot"
	BackendNone        = "none"
)

type Config struct {
	Port     string
	LogLevel string

	ModelBackend     string
	HFAPIToken       string
	HFInferenceURL   string
	HFSentimentModel string
	HFZeroShotModel  string
	HugotModelDir    string
	HugotSentiment   string
	HugotZeroShot    string
	InferenceTimeout time.Duration

	OpenAIAPIKey      string
	SpeechAPIKey      string
	SpeechAccessToken string
	SpeechLanguage    string

	FetchTimeout        time.Duration
	VideoTimeout        time.Duration
	YtDlpPath           string
	ReadabilityFallback bool
	AnalysisWorkers     int

	ValkeyAddress  string
	ValkeyPassword string
	ValkeyTLS      bool
	CacheTTL       time.Duration
}

// Load reads the typed configuration from the environment. LoadEnv should be
// called first so values from the env file are visible.
func Load() Config {
	return Config{
		Port:     getEnv("PORT", "8000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ModelBackend:     strings.ToLower(getEnv("MODEL_BACKEND", BackendHuggingFace)),
		HFAPIToken:       os.Getenv("HF_API_TOKEN"),
		HFInferenceURL:   getEnv("HF_INFERENCE_URL", "https://router.huggingface.co/hf-inference/models"),
		HFSentimentModel: getEnv("HF_SENTIMENT_MODEL", "cardiffnlp/twitter-roberta-base-sentiment-latest"),
		HFZeroShotModel:  getEnv("HF_ZERO_SHOT_MODEL", "facebook/bart-large-mnli"),
		HugotModelDir:    getEnv("HUGOT_MODEL_DIR", "./models"),
		HugotSentiment:   getEnv("HUGOT_SENTIMENT_MODEL", "KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english"),
		HugotZeroShot:    getEnv("HUGOT_ZERO_SHOT_MODEL", "protectai/deberta-v3-base-zeroshot-v1-onnx"),
		InferenceTimeout: getDuration("INFERENCE_TIMEOUT", 30*time.Second),

		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		SpeechAPIKey:      os.Getenv("SPEECH_API_KEY"),
		SpeechAccessToken: os.Getenv("SPEECH_ACCESS_TOKEN"),
		SpeechLanguage:    getEnv("SPEECH_LANGUAGE", "en-US"),

		FetchTimeout:        getDuration("FETCH_TIMEOUT", 10*time.Second),
		VideoTimeout:        getDuration("VIDEO_TIMEOUT", 120*time.Second),
		YtDlpPath:           os.Getenv("YTDLP_PATH"),
		ReadabilityFallback: getBool("READABILITY_FALLBACK", true),
		AnalysisWorkers:     getInt("ANALYSIS_WORKERS", 4),

		ValkeyAddress:  os.Getenv("VALKEY_INIT_ADDRESS"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
		ValkeyTLS:      os.Getenv("VALKEY_TLS") == "true",
		CacheTTL:       getDuration("CACHE_TTL", time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("[Config] Invalid duration, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Duration("default", defaultValue))
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		slog.Warn("[Config] Invalid integer, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Int("default", defaultValue))
		return defaultValue
	}
	return n
}

func getBool(key string, defaultValue bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return b
}
