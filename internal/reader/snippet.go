// Package reader turns arbitrary web pages into short text samples suitable
// for language detection.
package reader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "codeberg.org/readeck/go-readability/v2"
)

const (
	DefaultFetchTimeout  = 12 * time.Second
	DefaultBodyByteLimit = 2 * 1024 * 1024
	// DefaultSampleRunes caps the extracted sample; a few hundred
	// characters is plenty for detection and keeps prompts small.
	DefaultSampleRunes = 480

	defaultUserAgent = "lingo-snippet/1.0 (+https://horse.fit/lingo)"
)

// FetchOptions controls HTTP behavior and sample sizing.
type FetchOptions struct {
	Timeout       time.Duration
	BodyByteLimit int64
	SampleRunes   int
	UserAgent     string
	HTTPClient    *http.Client
}

// FetchSnippet retrieves pageURL, extracts its readable text, and clips it
// to a detection sample.
func FetchSnippet(ctx context.Context, pageURL string, opts FetchOptions) (string, error) {
	page := strings.TrimSpace(pageURL)
	if page == "" {
		return "", fmt.Errorf("page URL is required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	bodyLimit := opts.BodyByteLimit
	if bodyLimit <= 0 {
		bodyLimit = DefaultBodyByteLimit
	}
	sampleRunes := opts.SampleRunes
	if sampleRunes <= 0 {
		sampleRunes = DefaultSampleRunes
	}

	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, page, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, bodyLimit))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	contentType := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Type")))
	if strings.HasPrefix(contentType, "text/plain") {
		return Sample(string(body), sampleRunes), nil
	}

	parsedURL, err := url.Parse(page)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsedURL)
	if err != nil {
		return "", fmt.Errorf("readability parse: %w", err)
	}

	var rendered bytes.Buffer
	if err := article.RenderText(&rendered); err != nil {
		return "", fmt.Errorf("render readability text: %w", err)
	}

	sample := Sample(rendered.String(), sampleRunes)
	if sample == "" {
		sample = Sample(article.Excerpt(), sampleRunes)
	}
	if sample == "" {
		return "", fmt.Errorf("reader extracted empty content")
	}
	return sample, nil
}

// Sample collapses whitespace and clips the text to maxRunes on a word
// boundary when one is close enough.
func Sample(raw string, maxRunes int) string {
	clean := strings.Join(strings.Fields(raw), " ")
	if clean == "" || maxRunes <= 0 {
		return clean
	}

	runes := []rune(clean)
	if len(runes) <= maxRunes {
		return clean
	}

	clipped := string(runes[:maxRunes])
	if idx := strings.LastIndexByte(clipped, ' '); idx > maxRunes/2 {
		clipped = clipped[:idx]
	}
	return strings.TrimSpace(clipped)
}
