package service

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

var (
	linkedInPattern = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/`)
	idnaProfile     = idna.Lookup
)

const trackingPrefix = "utm_"

// normalizeLinkedInURL trims the URL, checks it against the LinkedIn profile
// pattern and strips tracking parameters. The pattern is checked on the trimmed
// input so that normalisation can never turn a rejected URL into an accepted one.
func normalizeLinkedInURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if !linkedInPattern.MatchString(trimmed) {
		return "", fmt.Errorf("invalid linkedin url %q", raw)
	}

	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid linkedin url %q", raw)
	}
	host, err := idnaProfile.ToASCII(u.Hostname())
	if err != nil {
		return "", fmt.Errorf("invalid linkedin host %q: %w", u.Hostname(), err)
	}
	if port := u.Port(); port != "" {
		host = host + ":" + port
	}
	u.Host = host
	u.Fragment = ""
	stripTracking(u)

	return u.String(), nil
}

func normalizeLeads(leads []string) ([]string, error) {
	normalized := make([]string, 0, len(leads))
	for _, lead := range leads {
		value, err := normalizeLinkedInURL(lead)
		if err != nil {
			return nil, ValidationError{Message: fmt.Sprintf("Invalid lead URL %q: must be a LinkedIn profile URL", strings.TrimSpace(lead))}
		}
		normalized = append(normalized, value)
	}
	return normalized, nil
}

func stripTracking(u *url.URL) {
	if u == nil {
		return
	}
	query := u.Query()
	changed := false
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), trackingPrefix) {
			query.Del(key)
			changed = true
		}
	}
	if changed {
		u.RawQuery = query.Encode()
	}
}
