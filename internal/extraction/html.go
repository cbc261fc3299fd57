package extraction

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/spacesedan/slantscope/internal/models"
)

const (
	MAX_PAGE_BYTES = 10 << 20
	USER_AGENT     = "Mozilla/5.0 (compatible; slantscope/1.0)"
)

func (e *Extractor) fromURL(ctx context.Context, rawURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrInvalidRequest, err)
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetching %s: %v", models.ErrExtraction, rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MAX_PAGE_BYTES))
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", models.ErrExtraction, rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s returned %s: %s",
			models.ErrExtraction, rawURL, resp.Status, preview(body))
	}

	text, err := paragraphText(body)
	if err != nil {
		return "", fmt.Errorf("%w: parsing %s: %v", models.ErrExtraction, rawURL, err)
	}

	if strings.TrimSpace(text) == "" && e.readabilityFallback {
		slog.Debug("[Extractor] No paragraphs found, trying readability", slog.String("url", rawURL))
		text = readableText(body, rawURL)
	}
	return text, nil
}

// paragraphText joins the <p> elements of the first <article>, or of the
// whole document when there is none.
func paragraphText(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	scope := doc.Selection
	if article := doc.Find("article").First(); article.Length() > 0 {
		scope = article
	}

	var parts []string
	scope.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " "), nil
}

func readableText(body []byte, rawURL string) string {
	pageURL, _ := url.Parse(rawURL)
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		slog.Warn("[Extractor] Readability failed",
			slog.String("url", rawURL),
			slog.String("error", err.Error()))
		return ""
	}
	return article.TextContent
}

func preview(body []byte) string {
	const limit = 200
	text := strings.TrimSpace(string(body))
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}
