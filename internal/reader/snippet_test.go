package reader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSampleCollapsesWhitespace(t *testing.T) {
	t.Parallel()

	got := Sample("  ein\n\nkurzer\t text  ", 100)
	if got != "ein kurzer text" {
		t.Fatalf("unexpected sample: %q", got)
	}
	if Sample("   \n\t ", 100) != "" {
		t.Fatal("expected empty sample for blank input")
	}
}

func TestSampleClipsOnWordBoundary(t *testing.T) {
	t.Parallel()

	got := Sample("alpha beta gamma delta", 12)
	if got != "alpha beta" {
		t.Fatalf("unexpected clipped sample: %q", got)
	}

	// No boundary near the limit: hard clip.
	long := strings.Repeat("x", 40)
	if clipped := Sample(long, 10); clipped != strings.Repeat("x", 10) {
		t.Fatalf("unexpected hard clip: %q", clipped)
	}
}

func TestFetchSnippetPlainText(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Der Mann ist groß.\nEr wohnt in Berlin.\n"))
	}))
	defer srv.Close()

	got, err := FetchSnippet(context.Background(), srv.URL, FetchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Der Mann ist groß. Er wohnt in Berlin." {
		t.Fatalf("unexpected snippet: %q", got)
	}
}

func TestFetchSnippetRespectsSampleLimit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(strings.Repeat("palabra ", 500)))
	}))
	defer srv.Close()

	got, err := FetchSnippet(context.Background(), srv.URL, FetchOptions{SampleRunes: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len([]rune(got)) > 50 {
		t.Fatalf("sample exceeds limit: %d runes", len([]rune(got)))
	}
}

func TestFetchSnippetRejectsErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	if _, err := FetchSnippet(context.Background(), srv.URL, FetchOptions{}); err == nil {
		t.Fatal("expected an error for non-2xx status")
	}
}

func TestFetchSnippetRequiresURL(t *testing.T) {
	t.Parallel()

	if _, err := FetchSnippet(context.Background(), "   ", FetchOptions{}); err == nil {
		t.Fatal("expected an error for blank URL")
	}
}
