package server

import (
	"log/slog"
	"net/http"

	"github.com/qrhunt/scavenger/internal/hunt"
	"github.com/qrhunt/scavenger/internal/verification"
)

// ListingError is the body of a failed admin listing.
type ListingError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type UsersResponse struct {
	Status string              `json:"status"`
	Users  []verification.User `json:"users"`
}

type PaymentsResponse struct {
	Status   string                 `json:"status"`
	Payments []verification.Payment `json:"payments"`
}

type VerifiedUsersResponse struct {
	Status string                      `json:"status"`
	Users  []verification.VerifiedUser `json:"users"`
}

type PaidUsersResponse struct {
	Status string                  `json:"status"`
	Users  []verification.PaidUser `json:"users"`
}

type QRCodesResponse struct {
	Status     string           `json:"status"`
	Components []hunt.Component `json:"components"`
	QRCodes    []hunt.QRCode    `json:"qrCodes"`
}

// SettingsRequest is the request body for PUT /api/admin/settings.
type SettingsRequest struct {
	VerificationEnabled *bool `json:"verificationEnabled" validate:"required"`
}

type SettingsResponse struct {
	VerificationEnabled bool `json:"verificationEnabled"`
}

func listingFailed(w http.ResponseWriter, logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	writeJSON(w, http.StatusInternalServerError, ListingError{Status: "error", Message: msg})
}

func handleAdminUsers(logger *slog.Logger, v *verification.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := v.ListAllUsers(r.Context())
		if err != nil {
			listingFailed(w, logger, "Failed to fetch users", err)
			return
		}
		if users == nil {
			users = []verification.User{}
		}
		writeJSON(w, http.StatusOK, UsersResponse{Status: "success", Users: users})
	}
}

func handleAdminPayments(logger *slog.Logger, v *verification.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payments, err := v.ListAllPayments(r.Context())
		if err != nil {
			listingFailed(w, logger, "Failed to fetch payments", err)
			return
		}
		if payments == nil {
			payments = []verification.Payment{}
		}
		writeJSON(w, http.StatusOK, PaymentsResponse{Status: "success", Payments: payments})
	}
}

func handleAdminVerifiedUsers(logger *slog.Logger, v *verification.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := v.ListAllVerifiedUsers(r.Context())
		if err != nil {
			listingFailed(w, logger, "Failed to fetch verified users", err)
			return
		}
		if users == nil {
			users = []verification.VerifiedUser{}
		}
		writeJSON(w, http.StatusOK, VerifiedUsersResponse{Status: "success", Users: users})
	}
}

func handleAdminPaidUsers(logger *slog.Logger, v *verification.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := v.ListPaidUsers(r.Context())
		if err != nil {
			listingFailed(w, logger, "Failed to fetch paid users", err)
			return
		}
		if users == nil {
			users = []verification.PaidUser{}
		}
		writeJSON(w, http.StatusOK, PaidUsersResponse{Status: "success", Users: users})
	}
}

func handleAdminGetSettings(v *verification.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, SettingsResponse{VerificationEnabled: v.VerificationEnabled(r.Context())})
	}
}

func handleAdminUpdateSettings(logger *slog.Logger, v *verification.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SettingsRequest
		if err := readValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "verificationEnabled is required")
			return
		}

		if err := v.SetVerificationEnabled(r.Context(), *req.VerificationEnabled); err != nil {
			logger.Error("updating settings", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		logger.Info("verification setting changed",
			"admin", adminFrom(r), "verification_enabled", *req.VerificationEnabled)

		writeJSON(w, http.StatusOK, SettingsResponse{VerificationEnabled: *req.VerificationEnabled})
	}
}

func handleAdminQRCodes(logger *slog.Logger, resolver *hunt.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components, err := resolver.Components(r.Context())
		if err != nil {
			listingFailed(w, logger, "Failed to fetch QR codes", err)
			return
		}
		codes, err := resolver.Codes(r.Context())
		if err != nil {
			listingFailed(w, logger, "Failed to fetch QR codes", err)
			return
		}
		writeJSON(w, http.StatusOK, QRCodesResponse{Status: "success", Components: components, QRCodes: codes})
	}
}
