package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/qrhunt/scavenger/internal/hunt"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse documents GET /healthz.
type HealthResponse struct {
	Status string                       `json:"status"`
	Checks map[string]map[string]string `json:"checks"`
}

type verifyQuery struct {
	RegistrationID string `query:"registrationId" required:"true"`
}

type qrPath struct {
	QRID string `path:"qrID"`
}

type ordinalPath struct {
	Ordinal int `path:"ordinal"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "QR Hunt API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the QR code scavenger hunt.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of the document store and session store.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/verification-status
	getStatus, _ := r.NewOperationContext(http.MethodGet, "/api/verification-status")
	getStatus.SetSummary("Verification status")
	getStatus.SetDescription("Reports whether payment verification is switched on.")
	getStatus.AddRespStructure(VerificationStatusResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getStatus)

	// GET /api/verify
	getVerify, _ := r.NewOperationContext(http.MethodGet, "/api/verify")
	getVerify.SetSummary("Check registration")
	getVerify.SetDescription("Reports whether a registration ID may access the hunt.")
	getVerify.AddReqStructure(verifyQuery{})
	getVerify.AddRespStructure(VerifyStatusResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getVerify.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(getVerify)

	// POST /api/verify
	postVerify, _ := r.NewOperationContext(http.MethodPost, "/api/verify")
	postVerify.SetSummary("Verify registration")
	postVerify.SetDescription("Verifies a paid registration and sets the registration_id cookie.")
	postVerify.AddReqStructure(VerifyRequest{})
	postVerify.AddRespStructure(VerifyResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postVerify.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postVerify.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	_ = r.AddOperation(postVerify)

	// GET /api/progress
	getProgress, _ := r.NewOperationContext(http.MethodGet, "/api/progress")
	getProgress.SetSummary("Hunt progress")
	getProgress.SetDescription("Milestones reached by the registration in the registration_id cookie.")
	getProgress.AddRespStructure(ProgressResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getProgress.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getProgress)

	for _, path := range []string{"/api/progress/three", "/api/progress/complete"} {
		op, _ := r.NewOperationContext(http.MethodPost, path)
		op.SetSummary("Record milestone")
		op.SetDescription("Idempotently records a milestone for the registration_id cookie.")
		op.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
		op.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
		_ = r.AddOperation(op)
	}

	// GET /api/admin/users
	getUsers, _ := r.NewOperationContext(http.MethodGet, "/api/admin/users")
	getUsers.SetSummary("List users")
	getUsers.SetDescription("All registered users. Requires Basic auth.")
	getUsers.AddRespStructure(UsersResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getUsers.AddRespStructure(ListingError{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	getUsers.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getUsers)

	// GET /api/admin/payments
	getPayments, _ := r.NewOperationContext(http.MethodGet, "/api/admin/payments")
	getPayments.SetSummary("List payments")
	getPayments.SetDescription("All payment records. Requires Basic auth.")
	getPayments.AddRespStructure(PaymentsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getPayments.AddRespStructure(ListingError{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(getPayments)

	// GET /api/admin/verified-users
	getVerified, _ := r.NewOperationContext(http.MethodGet, "/api/admin/verified-users")
	getVerified.SetSummary("List verified users")
	getVerified.SetDescription("Users who verified a registration. Requires Basic auth.")
	getVerified.AddRespStructure(VerifiedUsersResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getVerified.AddRespStructure(ListingError{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(getVerified)

	// GET /api/admin/paid-users
	getPaid, _ := r.NewOperationContext(http.MethodGet, "/api/admin/paid-users")
	getPaid.SetSummary("List paid users")
	getPaid.SetDescription("PAID payments projected per participant. Requires Basic auth.")
	getPaid.AddRespStructure(PaidUsersResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getPaid.AddRespStructure(ListingError{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(getPaid)

	// GET /api/admin/settings
	getSettings, _ := r.NewOperationContext(http.MethodGet, "/api/admin/settings")
	getSettings.SetSummary("Get settings")
	getSettings.AddRespStructure(SettingsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getSettings)

	// PUT /api/admin/settings
	putSettings, _ := r.NewOperationContext(http.MethodPut, "/api/admin/settings")
	putSettings.SetSummary("Update settings")
	putSettings.SetDescription("Switches payment verification on or off. Requires Basic auth.")
	putSettings.AddReqStructure(SettingsRequest{})
	putSettings.AddRespStructure(SettingsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	putSettings.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(putSettings)

	// GET /api/admin/qrcodes
	getCodes, _ := r.NewOperationContext(http.MethodGet, "/api/admin/qrcodes")
	getCodes.SetSummary("List QR codes")
	getCodes.SetDescription("Components and the QR codes placed at them. Requires Basic auth.")
	getCodes.AddRespStructure(QRCodesResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getCodes)

	// GET /hunt/start
	getStart, _ := r.NewOperationContext(http.MethodGet, "/hunt/start")
	getStart.SetSummary("Start the hunt")
	getStart.SetDescription("The entry QR code and the first clue. Gated by verification.")
	getStart.AddRespStructure(HuntStartResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getStart.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusTemporaryRedirect))
	_ = r.AddOperation(getStart)

	// GET /scan/{qrID}
	getScan, _ := r.NewOperationContext(http.MethodGet, "/scan/{qrID}")
	getScan.SetSummary("Scan a QR code")
	getScan.SetDescription("Resolves a scanned code to its component and clue. Gated by verification.")
	getScan.AddReqStructure(qrPath{})
	getScan.AddRespStructure(hunt.ScanResult{}, openapi.WithHTTPStatus(http.StatusOK))
	getScan.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getScan.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusTemporaryRedirect))
	_ = r.AddOperation(getScan)

	// GET /clues
	getClues, _ := r.NewOperationContext(http.MethodGet, "/clues")
	getClues.SetSummary("List clues")
	getClues.SetDescription("Every clue as chosen for this visitor's session.")
	getClues.AddRespStructure(ClueListResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getClues)

	// DELETE /clues
	deleteClues, _ := r.NewOperationContext(http.MethodDelete, "/clues")
	deleteClues.SetSummary("Forget clue choices")
	deleteClues.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	_ = r.AddOperation(deleteClues)

	// GET /clues/{ordinal}
	getClue, _ := r.NewOperationContext(http.MethodGet, "/clues/{ordinal}")
	getClue.SetSummary("Get clue")
	getClue.SetDescription("The clue for one component, stable for the rest of the session.")
	getClue.AddReqStructure(ordinalPath{})
	getClue.AddRespStructure(hunt.Clue{}, openapi.WithHTTPStatus(http.StatusOK))
	getClue.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getClue)

	// DELETE /clues/{ordinal}
	resetClue, _ := r.NewOperationContext(http.MethodDelete, "/clues/{ordinal}")
	resetClue.SetSummary("Reset clue")
	resetClue.AddReqStructure(ordinalPath{})
	resetClue.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	_ = r.AddOperation(resetClue)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
