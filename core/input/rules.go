package input

import (
	"net/url"
	"strings"
)

// fetchable reports whether rawURL is an absolute http(s) URL with a host.
func fetchable(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return false
	}
	return parsed.Host != ""
}
