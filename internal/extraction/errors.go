package extraction

import (
	"fmt"

	"github.com/spacesedan/slantscope/internal/models"
)

var errNoSource = fmt.Errorf("%w: one of text, url, audio_base64 or video_url is required", models.ErrInvalidRequest)
