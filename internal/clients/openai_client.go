package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/spacesedan/slantscope/internal/inference"
)

const (
	openAIRequestTimeout = 120 * time.Second // Timeout for individual transcription requests
	whisperModelName     = "whisper-1"
)

var ErrMissingOpenAIKey = errors.New("OPENAI_API_KEY is not set")

// AudioTranscriber is the slice of the OpenAI client used here.
type AudioTranscriber interface {
	New(ctx context.Context, body openai.AudioTranscriptionNewParams, opts ...option.RequestOption) (*openai.Transcription, error)
}

type OpenAIClient struct {
	Transcriptions AudioTranscriber
}

func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, ErrMissingOpenAIKey
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: openAIRequestTimeout}),
		option.WithMaxRetries(2),
	)
	slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout",
		slog.Duration("timeout", openAIRequestTimeout))

	return &OpenAIClient{Transcriptions: client.Audio.Transcriptions}, nil
}

// WhisperModel is the learned speech-to-text engine.
type WhisperModel struct {
	Client *OpenAIClient
}

func (m WhisperModel) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", inference.NewError(whisperModelName, "transcribe", fmt.Errorf("open audio: %w", err))
	}
	defer f.Close()

	start := time.Now()
	out, err := m.Client.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  openai.F[io.Reader](f),
		Model: openai.F(openai.AudioModelWhisper1),
	})
	if err != nil {
		return "", inference.NewError(whisperModelName, "transcribe", err)
	}

	slog.Info("[OpenAIClient] Transcription complete",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("chars", len(out.Text)))

	return strings.TrimSpace(out.Text), nil
}
