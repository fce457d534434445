package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/qrhunt/scavenger/internal/gate"
	"github.com/qrhunt/scavenger/internal/hunt"
	"github.com/qrhunt/scavenger/internal/session"
)

type ctxKey int

const (
	ctxKeyClueSession ctxKey = iota
	ctxKeyAdmin
)

const (
	sessionCookieName = "hunt_session"
	registrationTTL   = 30 * 24 * time.Hour
)

type cookieConfig struct {
	secure     bool
	sessionTTL time.Duration
}

func (c cookieConfig) set(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clueSessionMiddleware loads the visitor's clue session, issuing a
// hunt_session cookie on first visit, and saves it after the handler runs.
// A session left without clues is deleted instead.
func clueSessionMiddleware(logger *slog.Logger, sessions session.Store, cookies cookieConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
				id = c.Value
			} else {
				id = session.NewID()
				cookies.set(w, sessionCookieName, id, cookies.sessionTTL)
			}

			sess, err := sessions.Load(r.Context(), id)
			if err != nil {
				logger.Error("loading clue session", "error", err)
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyClueSession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))

			ctx = context.WithoutCancel(r.Context())
			if len(sess.Clues) == 0 {
				if err := sessions.Delete(ctx, id); err != nil {
					logger.Error("deleting clue session", "error", err)
				}
				return
			}
			if err := sessions.Save(ctx, id, sess); err != nil {
				logger.Error("saving clue session", "error", err)
			}
		})
	}
}

func clueSession(r *http.Request) *hunt.ClueSession {
	return r.Context().Value(ctxKeyClueSession).(*hunt.ClueSession)
}

// registrationID returns the registration_id cookie value, or "".
func registrationID(r *http.Request) string {
	c, err := r.Cookie(gate.CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
