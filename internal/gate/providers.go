package gate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/qrhunt/scavenger/internal/verification"
)

// StoreFlags reads the flag straight from the verification store, which
// already folds storage errors into "enabled".
type StoreFlags struct {
	Store *verification.Store
}

func (f StoreFlags) VerificationEnabled(ctx context.Context) (bool, error) {
	return f.Store.VerificationEnabled(ctx), nil
}

type StoreVerifier struct {
	Store *verification.Store
}

func (v StoreVerifier) Verify(ctx context.Context, registrationID string) (bool, error) {
	return v.Store.IsVerified(ctx, registrationID), nil
}

// HTTPClient asks a running instance's public API, for gates deployed in
// front of the service rather than inside it.
type HTTPClient struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{BaseURL: strings.TrimRight(baseURL, "/"), Client: http.DefaultClient}
}

func (c *HTTPClient) VerificationEnabled(ctx context.Context) (bool, error) {
	// A body without the field keeps verification on.
	body := struct {
		VerificationEnabled *bool `json:"verificationEnabled"`
	}{}
	if err := c.get(ctx, "/api/verification-status", &body); err != nil {
		return true, err
	}
	if body.VerificationEnabled == nil {
		return true, nil
	}
	return *body.VerificationEnabled, nil
}

func (c *HTTPClient) Verify(ctx context.Context, registrationID string) (bool, error) {
	var body struct {
		Verified bool `json:"verified"`
	}
	path := "/api/verify?registrationId=" + url.QueryEscape(registrationID)
	if err := c.get(ctx, path, &body); err != nil {
		return false, err
	}
	return body.Verified, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("calling %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
