// Package requestmeta resolves request scheme and origin facts for cookies and
// the same-origin gate on mutations.
package requestmeta

import (
	"net/http"
	"net/url"
	"strings"
)

// SchemePolicy controls how the request scheme is resolved.
//
// X-Forwarded-Proto is only honored when TrustForwardedProto is set.
type SchemePolicy struct {
	TrustForwardedProto bool
}

type origin struct {
	scheme string
	host   string
	port   string
}

func (o origin) valid() bool {
	return o.scheme != "" && o.host != "" && o.port != ""
}

// Scheme returns "https" or "http" for r under policy.
func Scheme(r *http.Request, policy SchemePolicy) string {
	if r == nil {
		return ""
	}
	if policy.TrustForwardedProto {
		if forwarded := normalizeScheme(r.Header.Get("X-Forwarded-Proto")); forwarded != "" {
			return forwarded
		}
	}
	if r.URL != nil {
		if scheme := normalizeScheme(r.URL.Scheme); scheme != "" {
			return scheme
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// IsHTTPS reports whether r should be treated as HTTPS under policy.
func IsHTTPS(r *http.Request, policy SchemePolicy) bool {
	return Scheme(r, policy) == "https"
}

// HasSameOriginProof reports whether Origin, or Referer when Origin is absent,
// names the same scheme, host and port as the request.
func HasSameOriginProof(r *http.Request, policy SchemePolicy) bool {
	if r == nil {
		return false
	}
	target := requestOrigin(r, policy)
	if target.host == "" {
		return false
	}
	claimed := strings.TrimSpace(r.Header.Get("Origin"))
	if claimed == "" {
		claimed = strings.TrimSpace(r.Header.Get("Referer"))
	}
	if claimed == "" {
		return false
	}
	source, ok := parseOrigin(claimed)
	if !ok || !source.valid() || !target.valid() {
		return false
	}
	return source == target
}

func requestOrigin(r *http.Request, policy SchemePolicy) origin {
	scheme := Scheme(r, policy)
	host, port := splitHost(r.Host)
	if host == "" && r.URL != nil {
		host, port = splitHost(r.URL.Host)
	}
	if port == "" {
		port = defaultPort(scheme)
	}
	return origin{scheme: scheme, host: host, port: port}
}

func parseOrigin(raw string) (origin, bool) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return origin{}, false
	}
	scheme := strings.ToLower(strings.TrimSpace(parsed.Scheme))
	if scheme == "" {
		return origin{}, false
	}
	port := strings.TrimSpace(parsed.Port())
	if port == "" {
		port = defaultPort(scheme)
	}
	return origin{
		scheme: scheme,
		host:   strings.ToLower(strings.TrimSpace(parsed.Hostname())),
		port:   port,
	}, true
}

func normalizeScheme(raw string) string {
	switch scheme := strings.ToLower(strings.TrimSpace(raw)); scheme {
	case "http", "https":
		return scheme
	default:
		return ""
	}
}

func defaultPort(scheme string) string {
	switch scheme {
	case "https":
		return "443"
	case "http":
		return "80"
	default:
		return ""
	}
}

func splitHost(raw string) (string, string) {
	parsed, err := url.Parse("//" + strings.TrimSpace(raw))
	if err != nil {
		return "", ""
	}
	return strings.ToLower(strings.TrimSpace(parsed.Hostname())), strings.TrimSpace(parsed.Port())
}
