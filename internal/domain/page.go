package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// Page is the readable text extracted from a web page.
type Page struct {
	URL   string
	Title string
	Text  string
}

// ParseScanURL accepts absolute http(s) URLs with a host.
func ParseScanURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return u, nil
}
