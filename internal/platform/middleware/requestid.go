package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Bahjat/page-composer/backend/internal/platform/requestid"
)

// HeaderRequestID carries the request ID in both directions.
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLen = 128

// RequestID is middleware that assigns a request ID to each request and
// echoes it in the response. A well-formed incoming X-Request-ID is reused;
// otherwise a new UUID v4 is generated.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if !wellFormed(id) {
			id = uuid.NewString()
		}

		w.Header().Set(HeaderRequestID, id)
		ctx := requestid.NewContext(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func wellFormed(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	return !strings.ContainsFunc(id, func(r rune) bool { return r <= ' ' || r > '~' })
}
