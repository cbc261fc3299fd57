package extraction

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spacesedan/slantscope/internal/models"
)

const (
	AUDIO_STEM = "input"
	VIDEO_STEM = "video_audio"
)

var audioExtensions = map[string]string{
	"audio/mpeg":   ".mp3",
	"audio/mp3":    ".mp3",
	"audio/wav":    ".wav",
	"audio/x-wav":  ".wav",
	"audio/wave":   ".wav",
	"audio/ogg":    ".ogg",
	"audio/webm":   ".webm",
	"audio/mp4":    ".m4a",
	"audio/x-m4a":  ".m4a",
	"audio/flac":   ".flac",
	"audio/x-flac": ".flac",
}

// decodeAudio strips an optional data URI prefix and decodes the payload.
// The returned extension comes from the data URI media type.
func decodeAudio(payload string) ([]byte, string, error) {
	ext := ".mp3"
	payload = strings.TrimSpace(payload)

	if strings.HasPrefix(payload, "data:") {
		header, data, ok := strings.Cut(payload, ",")
		if !ok {
			return nil, "", fmt.Errorf("%w: malformed data URI", models.ErrInvalidRequest)
		}
		mediaType, _, _ := strings.Cut(strings.TrimPrefix(header, "data:"), ";")
		if known, ok := audioExtensions[strings.ToLower(mediaType)]; ok {
			ext = known
		}
		payload = data
	}

	audio, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: audio_base64 is not valid base64: %v", models.ErrInvalidRequest, err)
	}
	if len(audio) == 0 {
		return nil, "", fmt.Errorf("%w: audio_base64 is empty", models.ErrInvalidRequest)
	}
	return audio, ext, nil
}

func (e *Extractor) fromAudio(ctx context.Context, payload string) (string, error) {
	audio, ext, err := decodeAudio(payload)
	if err != nil {
		return "", err
	}

	var text string
	err = withScratchDir(func(dir string) error {
		path := filepath.Join(dir, AUDIO_STEM+ext)
		if err := os.WriteFile(path, audio, 0o600); err != nil {
			return fmt.Errorf("%w: writing audio: %v", models.ErrExtraction, err)
		}

		var err error
		text, err = e.transcriber.Transcribe(ctx, path)
		return err
	})
	return text, err
}

func (e *Extractor) fromVideo(ctx context.Context, videoURL string) (string, error) {
	if e.downloader == nil {
		return "", fmt.Errorf("%w: video downloads are not configured", models.ErrExtraction)
	}

	var text string
	err := withScratchDir(func(dir string) error {
		dlCtx, cancel := context.WithTimeout(ctx, e.videoTimeout)
		defer cancel()

		if err := e.downloader.DownloadAudio(dlCtx, videoURL, dir, VIDEO_STEM); err != nil {
			return fmt.Errorf("%w: downloading %s: %v", models.ErrExtraction, videoURL, err)
		}

		path, err := findDownload(dir, VIDEO_STEM)
		if err != nil {
			return err
		}

		text, err = e.transcriber.Transcribe(ctx, path)
		return err
	})
	return text, err
}

// findDownload returns the first non-directory entry named after stem.
func findDownload(dir, stem string) (string, error) {
	matches, _ := filepath.Glob(filepath.Join(dir, stem+"*"))
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Size() == 0 {
			return "", fmt.Errorf("%w: downloaded audio is empty", models.ErrExtraction)
		}
		return match, nil
	}
	return "", fmt.Errorf("%w: no audio was downloaded", models.ErrExtraction)
}
