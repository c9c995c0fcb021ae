package sanitizer

import (
	"net/url"
	"strings"
)

// NormalizeURL lowercases scheme and host and strips a trailing slash. Input
// that is not an absolute http(s) URL comes back trimmed but otherwise
// untouched so the validator can reject it.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return s
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return s
	}
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(u.Path, "/")

	return u.String()
}
