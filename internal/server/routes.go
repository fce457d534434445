package server

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/swaggest/swgui/v5emb"

	"github.com/qrhunt/scavenger/internal/handler/health"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	cookies := cookieConfig{secure: deps.CookieSecure, sessionTTL: deps.SessionTTL}
	v := deps.Verification

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("QR Hunt API", "/openapi.json", "/docs"))
	r.Mount("/healthz", health.NewHandler(logger, deps.Health).Routes())

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.New(cors.Options{
			AllowedOrigins:   deps.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
		}).Handler)
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not found")
		})

		r.Get("/verification-status", handleVerificationStatus(v))
		r.Get("/verify", handleVerifyStatus(v))
		r.Post("/verify", handleVerify(logger, v, cookies))

		r.Get("/progress", handleProgress(logger, v))
		r.Post("/progress/three", handleRecordProgress(logger, v.RecordThreeCompleted))
		r.Post("/progress/complete", handleRecordProgress(logger, v.RecordFullCompleted))

		r.Route("/admin", func(r chi.Router) {
			r.Use(adminAuthMiddleware(deps.Admin))
			r.Get("/users", handleAdminUsers(logger, v))
			r.Get("/payments", handleAdminPayments(logger, v))
			r.Get("/verified-users", handleAdminVerifiedUsers(logger, v))
			r.Get("/paid-users", handleAdminPaidUsers(logger, v))
			r.Get("/settings", handleAdminGetSettings(v))
			r.Put("/settings", handleAdminUpdateSettings(logger, v))
			r.Get("/qrcodes", handleAdminQRCodes(logger, deps.Resolver))
		})
	})

	// Hunt pages, behind the verification gate.
	r.Group(func(r chi.Router) {
		r.Use(deps.Gate.Middleware)
		r.Use(clueSessionMiddleware(logger, deps.Sessions, cookies))

		r.Get("/hunt/start", handleHuntStart(logger, deps.Resolver, deps.Catalog))
		r.Get("/scan/{qrID}", handleScan(logger, deps.Resolver, v))
		r.Get("/clues", handleListClues(deps.Catalog))
		r.Get("/clues/{ordinal}", handleClue(deps.Catalog))
		r.Delete("/clues", handleClearClues(deps.Catalog))
		r.Delete("/clues/{ordinal}", handleResetClue(deps.Catalog))
	})

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(deps.Gate.Middleware(handleSPA(deps.SPADir)).ServeHTTP)
		}
	}
}
