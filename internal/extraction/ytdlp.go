package extraction

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Downloader fetches the audio track of a video into dir. Output file names
// start with stem.
type Downloader interface {
	DownloadAudio(ctx context.Context, videoURL, dir, stem string) error
}

type YtDlp struct {
	Path string
}

func NewYtDlp(path string) (*YtDlp, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("yt-dlp not found at %s: %w", path, err)
		}
		return &YtDlp{Path: path}, nil
	}

	found, err := findYtDlp()
	if err != nil {
		return nil, err
	}
	return &YtDlp{Path: found}, nil
}

func (y *YtDlp) DownloadAudio(ctx context.Context, videoURL, dir, stem string) error {
	args := []string{
		"--format", "bestaudio",
		"--no-playlist",
		"--quiet",
		"--output", filepath.Join(dir, stem+".%(ext)s"),
		videoURL,
	}
	cmd := exec.CommandContext(ctx, y.Path, args...)

	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("yt-dlp timed out: %w", ctx.Err())
		}
		msg := strings.TrimSpace(stderr.String())
		if strings.Contains(msg, "Sign in to confirm") {
			return errors.New("the video requires authentication")
		}
		return fmt.Errorf("yt-dlp failed: %s", msg)
	}
	return nil
}

func findYtDlp() (string, error) {
	if p, err := exec.LookPath("yt-dlp"); err == nil {
		return p, nil
	}
	for _, p := range []string{
		"/usr/local/bin/yt-dlp",
		"/usr/bin/yt-dlp",
		filepath.Join(os.Getenv("HOME"), ".local/bin/yt-dlp"),
	} {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", errors.New("yt-dlp not found, install with: pip install yt-dlp")
}
