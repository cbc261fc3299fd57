package extraction

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spacesedan/slantscope/internal/models"
)

// withScratchDir runs fn inside a fresh temporary directory that is removed
// when fn returns, whatever the outcome.
func withScratchDir(fn func(dir string) error) error {
	dir, err := os.MkdirTemp("", "slantscope-*")
	if err != nil {
		return fmt.Errorf("%w: creating scratch directory: %v", models.ErrExtraction, err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			slog.Warn("[Extractor] Failed to remove scratch directory",
				slog.String("dir", dir),
				slog.String("error", err.Error()))
		}
	}()

	return fn(dir)
}
