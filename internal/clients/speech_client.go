package clients

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	speech "google.golang.org/api/speech/v1"

	"github.com/spacesedan/slantscope/internal/inference"
)

const speechModelName = "google-speech"

// SpeechConfig selects how the recognizer authenticates. APIKey wins over
// AccessToken; with neither, application default credentials are used.
type SpeechConfig struct {
	APIKey       string
	AccessToken  string
	LanguageCode string
	SampleRate   int64
}

type SpeechClient struct {
	service *speech.Service
	cfg     SpeechConfig
}

func NewSpeechClient(ctx context.Context, cfg SpeechConfig, extra ...option.ClientOption) (*SpeechClient, error) {
	var opts []option.ClientOption
	switch {
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	case cfg.AccessToken != "":
		opts = append(opts, option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.AccessToken,
			TokenType:   "Bearer",
		})))
	}
	opts = append(opts, extra...)

	if cfg.LanguageCode == "" {
		cfg.LanguageCode = "en-US"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 16000
	}

	service, err := speech.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("[SpeechClient] failed to create speech service: %w", err)
	}

	slog.Info("[SpeechClient] Speech service initialized",
		slog.String("language", cfg.LanguageCode))
	return &SpeechClient{service: service, cfg: cfg}, nil
}

// Transcribe sends a mono LINEAR16 WAV file for synchronous recognition.
func (c *SpeechClient) Transcribe(ctx context.Context, audioPath string) (string, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", inference.NewError(speechModelName, "transcribe", fmt.Errorf("read audio: %w", err))
	}

	start := time.Now()
	resp, err := c.service.Speech.Recognize(&speech.RecognizeRequest{
		Config: &speech.RecognitionConfig{
			Encoding:          "LINEAR16",
			SampleRateHertz:   c.cfg.SampleRate,
			AudioChannelCount: 1,
			LanguageCode:      c.cfg.LanguageCode,
		},
		Audio: &speech.RecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(data),
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", inference.NewError(speechModelName, "transcribe", err)
	}

	var parts []string
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		if t := strings.TrimSpace(result.Alternatives[0].Transcript); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		return "", inference.NewError(speechModelName, "transcribe", errors.New("speech could not be recognized"))
	}

	slog.Info("[SpeechClient] Recognition complete",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("results", len(parts)))

	return strings.Join(parts, " "), nil
}
