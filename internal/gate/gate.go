// Package gate decides, per request, whether a visitor may see the hunt.
//
// Public paths always pass. Everything else requires either verification to
// be switched off or a registration_id cookie naming a verified
// registration. Nothing is cached between requests.
package gate

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	CookieName = "registration_id"

	// DeniedLocation is where denied visitors are sent.
	DeniedLocation = "/?error=not_verified"
)

// FlagSource reports whether payment verification is switched on.
type FlagSource interface {
	VerificationEnabled(ctx context.Context) (bool, error)
}

// Verifier reports whether a registration ID has been verified.
type Verifier interface {
	Verify(ctx context.Context, registrationID string) (bool, error)
}

type Decision uint8

// Unchecked is the zero Decision; Decide never returns it.
const (
	Unchecked Decision = iota
	Allowed
	Denied
)

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case Denied:
		return "denied"
	}
	return "unchecked"
}

var publicExact = []string{"/", "/verify", "/healthz", "/openapi.json"}

var publicPrefixes = []string{
	"/api",
	"/privacy-policy",
	"/terms-and-conditions",
	"/cancellation-refund",
	"/shipping-delivery",
	"/contact-us",
	"/docs",
}

// Public reports whether path bypasses the gate.
func Public(path string) bool {
	for _, p := range publicExact {
		if path == p {
			return true
		}
	}
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

type Gate struct {
	flags    FlagSource
	verifier Verifier
	timeout  time.Duration
	logger   *slog.Logger
}

// New returns a gate whose provider calls are bounded by timeout; zero
// means no bound beyond the request's own context.
func New(flags FlagSource, verifier Verifier, timeout time.Duration, logger *slog.Logger) *Gate {
	return &Gate{flags: flags, verifier: verifier, timeout: timeout, logger: logger}
}

// Decide runs the checks for one request. registrationID is the cookie
// value, empty when absent.
func (g *Gate) Decide(ctx context.Context, path, registrationID string) Decision {
	if Public(path) {
		return Allowed
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	enabled, err := g.flags.VerificationEnabled(ctx)
	if err != nil {
		g.logger.Warn("verification flag unavailable, treating as enabled", "error", err)
		enabled = true
	}
	if !enabled {
		return Allowed
	}

	if registrationID == "" {
		return Denied
	}

	ok, err := g.verifier.Verify(ctx, registrationID)
	if err != nil {
		g.logger.Error("verifying registration", "path", path, "error", err)
		return Denied
	}
	if !ok {
		return Denied
	}
	return Allowed
}

// Middleware redirects denied requests to DeniedLocation.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(CookieName); err == nil {
			id = c.Value
		}

		if g.Decide(r.Context(), r.URL.Path, id) != Allowed {
			http.Redirect(w, r, DeniedLocation, http.StatusTemporaryRedirect)
			return
		}
		next.ServeHTTP(w, r)
	})
}
