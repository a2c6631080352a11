package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	memory "github.com/kvsession/memory"
)

// HeaderSessionKey is the request header [Require] reads the session
// identifier from.
const HeaderSessionKey = "X-Session-Key"

type sessionContextKey struct{}

func SessionFromContext(ctx context.Context) (*memory.Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(*memory.Session)
	return s, ok
}

func Require(store *memory.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			id := strings.TrimSpace(r.Header.Get(HeaderSessionKey))
			if id == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			attachSession(store, next, w, r, id)
		})
	}
}

func attachSession(store *memory.Store, next http.Handler, w http.ResponseWriter, r *http.Request, id string) {
	sess, err := store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, memory.ErrBackendUnavailable) {
			http.Error(w, "session backend unavailable", http.StatusBadGateway)
			return
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if sess == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := context.WithValue(r.Context(), sessionContextKey{}, sess)
	next.ServeHTTP(w, r.WithContext(ctx))
}
