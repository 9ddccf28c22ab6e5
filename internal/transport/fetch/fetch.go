package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/kailas-cloud/verity/internal/domain"
)

// Defaults applied by New.
const (
	DefaultTimeout   = 10 * time.Second
	DefaultMaxChars  = 10000
	DefaultMaxBody   = 5 << 20
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// boilerplate is removed before text extraction.
const boilerplate = "script, style, nav, footer, header, aside"

// Config controls page fetching.
type Config struct {
	Timeout   time.Duration
	MaxChars  int
	MaxBody   int64
	UserAgent string
}

// Client downloads web pages and extracts their readable text.
type Client struct {
	http *http.Client
	cfg  Config
}

// New creates a fetch client. A nil httpClient gets one with cfg.Timeout.
func New(cfg Config, httpClient *http.Client) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxChars <= 0 {
		cfg.MaxChars = DefaultMaxChars
	}
	if cfg.MaxBody <= 0 {
		cfg.MaxBody = DefaultMaxBody
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{http: httpClient, cfg: cfg}
}

// Fetch downloads rawURL and returns its title and boilerplate-free text.
func (c *Client) Fetch(ctx context.Context, rawURL string) (domain.Page, error) {
	u, err := domain.ParseScanURL(rawURL)
	if err != nil {
		return domain.Page{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	doc, err := c.fetchDocument(ctx, u.String())
	if err != nil {
		return domain.Page{}, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find(boilerplate).Remove()

	return domain.Page{
		URL:   u.String(),
		Title: title,
		Text:  domain.TruncateRunes(CleanText(doc.Text()), c.cfg.MaxChars),
	}, nil
}

func (c *Client) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("remote returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, c.cfg.MaxBody))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

// CleanText trims every line, splits lines on double spaces and drops blank chunks.
func CleanText(raw string) string {
	var b strings.Builder
	for _, line := range strings.FieldsFunc(raw, isLineBreak) {
		for _, chunk := range strings.Split(line, "  ") {
			chunk = strings.TrimSpace(chunk)
			if chunk == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(chunk)
		}
	}
	return b.String()
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

// IsTimeout reports whether err came from the fetch deadline.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
