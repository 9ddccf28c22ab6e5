package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/verity/internal/domain"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title> Council approves budget </title><style>body { color: red; }</style></head>
<body>
<header>Site header</header>
<nav><a href="/">Home</a> <a href="/news">News</a></nav>
<article>
  <h1>Council approves budget</h1>
  <p>The city council approved the annual budget on Tuesday.</p>
  <p>Lead  Second phrase</p>
</article>
<aside>Related stories</aside>
<script>var tracking = true;</script>
<footer>Copyright</footer>
</body>
</html>`

func TestFetch_ExtractsReadableText(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	c := New(Config{}, srv.Client())
	page, err := c.Fetch(context.Background(), srv.URL+"/story")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.Title != "Council approves budget" {
		t.Errorf("expected title, got %q", page.Title)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("expected browser user agent, got %q", gotUA)
	}
	for _, unwanted := range []string{"Site header", "Home", "Related stories", "tracking", "Copyright", "color: red"} {
		if strings.Contains(page.Text, unwanted) {
			t.Errorf("expected %q to be stripped, got %q", unwanted, page.Text)
		}
	}
	for _, want := range []string{
		"The city council approved the annual budget on Tuesday.",
		"Lead\nSecond phrase",
	} {
		if !strings.Contains(page.Text, want) {
			t.Errorf("expected %q in %q", want, page.Text)
		}
	}
	if strings.Contains(page.Text, "\n\n") {
		t.Errorf("expected blank lines dropped, got %q", page.Text)
	}
}

func TestFetch_TruncatesText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>" + strings.Repeat("ж", 50) + "</p></body></html>"))
	}))
	defer srv.Close()

	c := New(Config{MaxChars: 20}, srv.Client())
	page, err := c.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Text != strings.Repeat("ж", 20) {
		t.Errorf("expected 20 runes, got %q", page.Text)
	}
	if page.Title != "" {
		t.Errorf("expected empty title, got %q", page.Title)
	}
}

func TestFetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(Config{}, srv.Client()).Fetch(context.Background(), srv.URL)
	if !errors.Is(err, domain.ErrFetchFailed) {
		t.Errorf("expected ErrFetchFailed, got %v", err)
	}
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(Config{Timeout: 50 * time.Millisecond}, srv.Client()).Fetch(context.Background(), srv.URL)
	if !errors.Is(err, domain.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	if !IsTimeout(err) {
		t.Errorf("expected timeout, got %v", err)
	}
}

func TestFetch_InvalidURL(t *testing.T) {
	_, err := New(Config{}, nil).Fetch(context.Background(), "ftp://example.com")
	if !errors.Is(err, domain.ErrInvalidURL) {
		t.Errorf("expected ErrInvalidURL, got %v", err)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  \n\t\n ", ""},
		{"  one  \r\n two ", "one\ntwo"},
		{"Headline A  Headline B", "Headline A\nHeadline B"},
		{"a   b", "a\nb"},
		{"single space kept", "single space kept"},
		{"x \ny", "x\ny"},
	}
	for _, tc := range tests {
		if got := CleanText(tc.in); got != tc.want {
			t.Errorf("CleanText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
