// Package transcription turns audio files into text with a primary speech
// model and a secondary recognizer fed a normalized copy of the audio.
package transcription

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spacesedan/slantscope/internal/inference"
	"github.com/spacesedan/slantscope/internal/models"
)

type Engine struct {
	primary   inference.Handle[inference.SpeechModel]
	secondary inference.Handle[inference.SpeechModel]
	converter Converter
}

func NewEngine(primary, secondary inference.Handle[inference.SpeechModel], converter Converter) *Engine {
	if converter == nil {
		converter = FFmpegConverter{}
	}
	return &Engine{primary: primary, secondary: secondary, converter: converter}
}

// Available reports whether at least one tier can run.
func (e *Engine) Available() bool {
	return e.primary.IsLoaded() || e.secondary.IsLoaded()
}

// Transcribe returns the first non-empty transcript. The secondary tier only
// runs when the primary is unavailable, errors, or hears nothing.
func (e *Engine) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if primary, ok := e.primary.Get(); ok {
		start := time.Now()
		text, err := primary.Transcribe(ctx, audioPath)
		switch {
		case err != nil:
			slog.Warn("[TranscriptionEngine] Primary transcription failed",
				slog.String("error", err.Error()))
		case strings.TrimSpace(text) == "":
			slog.Warn("[TranscriptionEngine] Primary transcription was empty")
		default:
			slog.Debug("[TranscriptionEngine] Primary transcription succeeded",
				slog.Duration("elapsed", time.Since(start)))
			return text, nil
		}
	}

	secondary, ok := e.secondary.Get()
	if !ok {
		return "", fmt.Errorf("%w: no speech recognizer available: %v",
			models.ErrTranscription, e.secondary.Reason())
	}

	converted := convertedPath(audioPath)
	if err := e.converter.ToMonoWav(ctx, audioPath, converted); err != nil {
		return "", fmt.Errorf("%w: %w: %v", models.ErrTranscription, models.ErrConversion, err)
	}

	text, err := secondary.Transcribe(ctx, converted)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrTranscription, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: recognizer returned no speech", models.ErrTranscription)
	}
	return text, nil
}

// convertedPath places the WAV copy beside the input so it shares its
// scratch directory.
func convertedPath(audioPath string) string {
	base := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	return base + "_mono16k.wav"
}
