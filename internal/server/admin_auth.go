package server

import (
	"context"
	"crypto/subtle"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// AdminCredentials guard the /api/admin routes with HTTP Basic auth.
type AdminCredentials struct {
	Username     string
	PasswordHash []byte
}

func (c AdminCredentials) valid(user, pass string) bool {
	if len(c.PasswordHash) == 0 {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(c.Username)) == 1
	passOK := bcrypt.CompareHashAndPassword(c.PasswordHash, []byte(pass)) == nil
	return userOK && passOK
}

func adminAuthMiddleware(creds AdminCredentials) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || !creds.valid(user, pass) {
				w.Header().Set("WWW-Authenticate", `Basic realm="Admin Area"`)
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyAdmin, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func adminFrom(r *http.Request) string {
	user, _ := r.Context().Value(ctxKeyAdmin).(string)
	return user
}
