package server

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/qrhunt/scavenger/internal/hunt"
	"github.com/qrhunt/scavenger/internal/verification"
)

type ProgressResponse struct {
	RegistrationID string `json:"registrationId"`
	ThreeCompleted bool   `json:"threeCompleted"`
	FullCompleted  bool   `json:"fullCompleted"`
}

func handleProgress(logger *slog.Logger, v *verification.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := registrationID(r)
		if id == "" {
			writeError(w, http.StatusUnauthorized, "not verified")
			return
		}
		id = hunt.NormalizeRegistrationID(id)

		resp := ProgressResponse{RegistrationID: id}
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() (err error) {
			resp.ThreeCompleted, err = v.HasThreeCompleted(ctx, id)
			return err
		})
		g.Go(func() (err error) {
			resp.FullCompleted, err = v.HasFullCompleted(ctx, id)
			return err
		})
		if err := g.Wait(); err != nil {
			logger.Error("reading progress", "registration_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// handleRecordProgress stores a milestone for the cookie's registration.
// Repeated calls are no-ops.
func handleRecordProgress(logger *slog.Logger, record func(context.Context, string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := registrationID(r)
		if id == "" {
			writeError(w, http.StatusUnauthorized, "not verified")
			return
		}

		if err := record(r.Context(), id); err != nil {
			logger.Error("recording progress", "path", r.URL.Path, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
