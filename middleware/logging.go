package middleware

import (
	"log"
	"net"
	"net/http"
	"strings"
	"time"
)

// RequestLogger logs every request with the caller's identity when a JWT was
// already validated further up the chain.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		userID, userRole := "-", "-"
		if claims := GetClaims(r); claims != nil {
			userID = claims.UserID
			userRole = claims.Role
		}
		log.Printf("[HTTP] %s %s ip=%s user=%s role=%s took=%s",
			r.Method, r.URL.Path, getClientIP(r), userID, userRole, time.Since(start))
	})
}

// Extracts client IP from proxy headers or the remote addr
func getClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return strings.Split(ip, ",")[0]
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
