package identity

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

const HeaderUserID = "X-User-Id"

// Middleware authenticates the request and stores the Profile in its
// context. With a nil verifier it trusts the X-User-Id header set by an
// upstream gateway.
func Middleware(v *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := authenticate(v, r)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), p)))
		})
	}
}

func authenticate(v *Verifier, r *http.Request) (Profile, error) {
	if v == nil {
		uid := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if uid == "" {
			return Profile{}, errors.New("missing required header: X-User-Id")
		}
		return Profile{UserID: uid}, nil
	}

	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return Profile{}, errors.New("missing bearer token")
	}
	p, err := v.Verify(strings.TrimSpace(token))
	if err != nil {
		return Profile{}, ErrUnauthorized
	}
	return p, nil
}
