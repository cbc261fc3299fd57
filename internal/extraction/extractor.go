// Package extraction turns an analysis request into plain text from whichever
// source it carries: raw text, a web page, base64 audio or a video URL.
package extraction

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/spacesedan/slantscope/internal/models"
	"github.com/spacesedan/slantscope/internal/textnorm"
)

const (
	DEFAULT_FETCH_TIMEOUT = 10 * time.Second
	DEFAULT_VIDEO_TIMEOUT = 120 * time.Second
)

type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Cache kinds keep a page scrape and a video transcript of the same address
// apart.
const (
	CACHE_KIND_URL   = "url"
	CACHE_KIND_VIDEO = "video"
)

// DocumentCache stores extracted text for URL and video sources, keyed by
// kind and source.
type DocumentCache interface {
	GetDocument(ctx context.Context, kind, source string) (models.ExtractedDocument, bool, error)
	SetDocument(ctx context.Context, kind string, doc models.ExtractedDocument) error
}

type Options struct {
	FetchTimeout        time.Duration
	VideoTimeout        time.Duration
	ReadabilityFallback bool
	HTTPClient          *http.Client
	// Cache may be nil.
	Cache DocumentCache
}

type Extractor struct {
	transcriber Transcriber
	downloader  Downloader
	cache       DocumentCache
	httpClient  *http.Client

	fetchTimeout        time.Duration
	videoTimeout        time.Duration
	readabilityFallback bool
}

func NewExtractor(transcriber Transcriber, downloader Downloader, opts Options) *Extractor {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DEFAULT_FETCH_TIMEOUT
	}
	if opts.VideoTimeout <= 0 {
		opts.VideoTimeout = DEFAULT_VIDEO_TIMEOUT
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	return &Extractor{
		transcriber:         transcriber,
		downloader:          downloader,
		cache:               opts.Cache,
		httpClient:          opts.HTTPClient,
		fetchTimeout:        opts.FetchTimeout,
		videoTimeout:        opts.VideoTimeout,
		readabilityFallback: opts.ReadabilityFallback,
	}
}

// Extract reads the first populated source in the order text, url,
// audio_base64, video_url and returns its cleaned text.
func (e *Extractor) Extract(ctx context.Context, req models.AnalysisRequest) (models.ExtractedDocument, error) {
	var (
		source string
		text   string
		err    error
	)

	switch {
	case req.Text != "":
		source, text = models.SourceText, req.Text
	case req.URL != "":
		source = req.URL
		text, err = e.cached(ctx, CACHE_KIND_URL, source, e.fromURL)
	case req.AudioBase64 != "":
		source = models.SourceAudio
		text, err = e.fromAudio(ctx, req.AudioBase64)
	case req.VideoURL != "":
		source = req.VideoURL
		text, err = e.cached(ctx, CACHE_KIND_VIDEO, source, e.fromVideo)
	default:
		return models.ExtractedDocument{}, errNoSource
	}
	if err != nil {
		return models.ExtractedDocument{}, err
	}

	return models.ExtractedDocument{Source: source, RawText: textnorm.Clean(text)}, nil
}

func (e *Extractor) cached(ctx context.Context, kind, source string, extract func(context.Context, string) (string, error)) (string, error) {
	if e.cache != nil {
		doc, ok, err := e.cache.GetDocument(ctx, kind, source)
		switch {
		case err != nil:
			slog.Warn("[Extractor] Cache lookup failed",
				slog.String("source", source),
				slog.String("error", err.Error()))
		case ok:
			slog.Debug("[Extractor] Cache hit",
				slog.String("kind", kind),
				slog.String("source", source))
			return doc.RawText, nil
		}
	}

	text, err := extract(ctx, source)
	if err != nil {
		return "", err
	}

	if e.cache != nil && textnorm.Clean(text) != "" {
		doc := models.ExtractedDocument{Source: source, RawText: textnorm.Clean(text)}
		if err := e.cache.SetDocument(ctx, kind, doc); err != nil {
			slog.Warn("[Extractor] Cache store failed",
				slog.String("source", source),
				slog.String("error", err.Error()))
		}
	}
	return text, nil
}
