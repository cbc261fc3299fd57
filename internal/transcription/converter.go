package transcription

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const (
	SAMPLE_RATE = 16000
	CHANNELS    = 1
)

// Converter rewrites an audio file as mono 16 kHz WAV.
type Converter interface {
	ToMonoWav(ctx context.Context, inputPath, outputPath string) error
}

type FFmpegConverter struct{}

func (FFmpegConverter) ToMonoWav(ctx context.Context, inputPath, outputPath string) error {
	compiled := ffmpeg.Input(inputPath).
		Output(outputPath, ffmpeg.KwArgs{
			"ac":     CHANNELS,
			"ar":     SAMPLE_RATE,
			"acodec": "pcm_s16le",
			"f":      "wav",
		}).
		OverWriteOutput().
		Compile()

	// Re-issue the compiled command so the request deadline can kill it.
	cmd := exec.CommandContext(ctx, compiled.Args[0], compiled.Args[1:]...)
	if out, err := cmd.CombinedOutput(); err != nil {
		slog.Debug("[FFmpegConverter] ffmpeg output", slog.String("output", string(out)))
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}
