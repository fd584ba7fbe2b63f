package quotes

import (
	"net/http"
	"strings"
	"time"
)

const unknownIP = "Unknown"

// DeriveMeta extracts client IP, user agent and submission timestamp from the
// inbound request.
func DeriveMeta(r *http.Request, now time.Time) RequestMeta {
	return RequestMeta{
		ClientIP:    clientIP(r.Header),
		UserAgent:   r.UserAgent(),
		SubmittedAt: now.UTC().Format(time.RFC3339),
	}
}

// clientIP prefers, in order: the first x-forwarded-for entry, x-real-ip,
// cf-connecting-ip, then a literal "Unknown".
func clientIP(headers http.Header) string {
	if forwarded := headers.Get("x-forwarded-for"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(headers.Get("x-real-ip")); realIP != "" {
		return realIP
	}
	if cfIP := strings.TrimSpace(headers.Get("cf-connecting-ip")); cfIP != "" {
		return cfIP
	}
	return unknownIP
}
