package service

import (
	"net/url"

	"seo_insight/internal/pkg/errors"
)

// NormalizeURL validates a raw user-supplied string as an absolute http(s)
// URL and returns its parsed form. All downstream components work with the
// canonical string so internal/external link comparison sees one origin.
func NormalizeURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, &errors.InvalidURLError{Raw: raw}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, &errors.InvalidURLError{Raw: raw}
	}
	if parsed.Host == "" {
		return nil, &errors.InvalidURLError{Raw: raw}
	}
	return parsed, nil
}
