package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/qrhunt/scavenger/internal/gate"
	"github.com/qrhunt/scavenger/internal/hunt"
	"github.com/qrhunt/scavenger/internal/verification"
)

type VerificationStatusResponse struct {
	VerificationEnabled bool `json:"verificationEnabled"`
}

type VerifyStatusResponse struct {
	Verified bool `json:"verified"`
}

// VerifyRequest is the request body for POST /api/verify.
type VerifyRequest struct {
	RegistrationID string `json:"registrationId" validate:"required,registration_id"`
	Name           string `json:"name" validate:"max=200"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone" validate:"max=32"`
}

type VerifyResponse struct {
	Verified       bool   `json:"verified"`
	RegistrationID string `json:"registrationId"`
}

func handleVerificationStatus(v *verification.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, VerificationStatusResponse{
			VerificationEnabled: v.VerificationEnabled(r.Context()),
		})
	}
}

func handleVerifyStatus(v *verification.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("registrationId")
		if id == "" {
			writeError(w, http.StatusBadRequest, "registrationId is required")
			return
		}
		writeJSON(w, http.StatusOK, VerifyStatusResponse{Verified: v.IsVerified(r.Context(), id)})
	}
}

// handleVerify checks a registration against the payment records, records
// the visitor as verified, and hands out the registration_id cookie.
func handleVerify(logger *slog.Logger, v *verification.Store, cookies cookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VerifyRequest
		if err := readValid(r, &req); err != nil {
			switch failedTag(err) {
			case "registration_id", "required":
				writeError(w, http.StatusBadRequest, "invalid registration ID format")
			default:
				writeError(w, http.StatusBadRequest, "invalid request body")
			}
			return
		}

		ctx := r.Context()
		id := hunt.NormalizeRegistrationID(req.RegistrationID)

		if !v.IsVerified(ctx, id) {
			writeError(w, http.StatusForbidden, "no completed payment found for this registration ID")
			return
		}

		// Contact details missing from the form come from the payment.
		p, err := v.FindPaidPayment(ctx, id)
		switch {
		case err == nil:
			req.Name = fallback(req.Name, p.Name)
			req.Email = fallback(req.Email, p.Email)
			req.Phone = fallback(req.Phone, p.Phone)
		case !errors.Is(err, verification.ErrNotFound):
			logger.Warn("reading payment details", "registration_id", id, "error", err)
		}

		if !v.RecordVerifiedUser(ctx, id, req.Name, req.Email, req.Phone) {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		cookies.set(w, gate.CookieName, id, registrationTTL)
		writeJSON(w, http.StatusOK, VerifyResponse{Verified: true, RegistrationID: id})
	}
}

func fallback(v, def string) string {
	if v != "" || def == "N/A" {
		return v
	}
	return def
}
