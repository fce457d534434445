package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/qrhunt/scavenger/internal/hunt"
	"github.com/qrhunt/scavenger/internal/verification"
)

// Ordinals at which scanning records a milestone.
const (
	threeOrdinal = 3
	fullOrdinal  = 5
)

type HuntStartResponse struct {
	Code hunt.QRCode `json:"code"`
	Clue hunt.Clue   `json:"clue"`
}

type ClueListResponse struct {
	Clues []hunt.Clue `json:"clues"`
}

func handleHuntStart(logger *slog.Logger, resolver *hunt.Resolver, catalog *hunt.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, err := resolver.FirstCode(r.Context())
		if err != nil {
			logger.Error("loading first code", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		clue, err := catalog.Clue(clueSession(r), 1)
		if err != nil {
			writeError(w, http.StatusNotFound, "clue not found")
			return
		}

		writeJSON(w, http.StatusOK, HuntStartResponse{Code: code, Clue: clue})
	}
}

func handleScan(logger *slog.Logger, resolver *hunt.Resolver, v *verification.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qrID := chi.URLParam(r, "qrID")

		res, err := resolver.Scan(r.Context(), qrID, clueSession(r))
		if errors.Is(err, hunt.ErrNotFound) {
			writeError(w, http.StatusNotFound, "unknown QR code")
			return
		}
		if err != nil {
			logger.Error("resolving scan", "qr_id", qrID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if id := registrationID(r); id != "" {
			if err := recordMilestone(r.Context(), v, res.Ordinal, id); err != nil {
				logger.Error("recording milestone", "ordinal", res.Ordinal, "error", err)
			}
		}

		writeJSON(w, http.StatusOK, res)
	}
}

func recordMilestone(ctx context.Context, v *verification.Store, ordinal int, id string) error {
	switch ordinal {
	case threeOrdinal:
		return v.RecordThreeCompleted(ctx, id)
	case fullOrdinal:
		return v.RecordFullCompleted(ctx, id)
	}
	return nil
}

func handleListClues(catalog *hunt.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := clueSession(r)
		resp := ClueListResponse{Clues: []hunt.Clue{}}
		for _, n := range catalog.Ordinals() {
			clue, err := catalog.Clue(sess, n)
			if err != nil {
				continue
			}
			resp.Clues = append(resp.Clues, clue)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleClue(catalog *hunt.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ordinal, err := strconv.Atoi(chi.URLParam(r, "ordinal"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid clue number")
			return
		}

		clue, err := catalog.Clue(clueSession(r), ordinal)
		if errors.Is(err, hunt.ErrNotFound) {
			writeError(w, http.StatusNotFound, "clue not found")
			return
		}
		writeJSON(w, http.StatusOK, clue)
	}
}

func handleClearClues(catalog *hunt.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog.ClearAll(clueSession(r))
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleResetClue(catalog *hunt.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ordinal, err := strconv.Atoi(chi.URLParam(r, "ordinal"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid clue number")
			return
		}
		catalog.Reset(clueSession(r), ordinal)
		w.WriteHeader(http.StatusNoContent)
	}
}
