package handler

import (
	"net"
	"net/http"
	"strings"

	"github.com/m-ahsan-bilal/portfolio-api/internal/model"
)

// SecurityHeaders adds security response headers (CSP, X-Frame-Options, etc.)
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'self'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// ClientIDFromRequest derives the rate-limiting key from the request's
// source address, reading from the rightmost trusted proxy position in
// X-Forwarded-For to prevent spoofing. Requests whose source cannot be
// determined all share the "unknown" bucket.
func ClientIDFromRequest(r *http.Request, trustedProxyCount int) model.ClientID {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && trustedProxyCount > 0 {
		parts := strings.Split(xff, ",")
		// The rightmost entry added by our infrastructure is at
		// index len(parts) - trustedProxyCount.
		idx := len(parts) - trustedProxyCount
		if idx >= 0 && idx < len(parts) {
			if ip := strings.TrimSpace(parts[idx]); ip != "" {
				return model.ClientID(ip)
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host == "" {
		return model.ClientUnknown
	}
	return model.ClientID(host)
}
