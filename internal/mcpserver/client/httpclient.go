package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rangelab/rangebridge/internal/mcpserver/config"
	"github.com/rangelab/rangebridge/internal/mcpserver/creds"
	"github.com/rs/zerolog/log"
)

// HTTPClient implements RangeAPI against the backend's REST surface.
// Automatically injects:
// - Authorization: Bearer <token> (when a credential is present)
// - X-Correlation-ID: <uuid>
//
// The client is immutable once constructed; the auth-state reconciler swaps
// in a whole new client when credentials change rather than mutating this one.
type HTTPClient struct {
	baseURL     string
	credentials creds.Credentials
	httpClient  *http.Client
}

// NewHTTPClient creates an authenticated HTTP client bound to one credential
// pair. Zero credentials produce an anonymous client that can only login.
func NewHTTPClient(baseURL string, credentials creds.Credentials) *HTTPClient {
	return &HTTPClient{
		baseURL:     baseURL,
		credentials: credentials,
		httpClient:  &http.Client{Timeout: config.RequestTimeout()},
	}
}

// IsAuthenticated reports whether a usable credential is loaded. A token
// with a decodable exp claim in the past counts as unusable.
func (c *HTTPClient) IsAuthenticated() bool {
	if c.credentials.IsZero() {
		return false
	}
	return !DecodeIdentity(c.credentials.AuthToken).Expired()
}

// Login exchanges email/password for a bearer credential. Public: works on
// an anonymous client.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout invalidates the current credential on the backend
func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
}

// GetUserInfo resolves the identity behind the current credential
func (c *HTTPClient) GetUserInfo(ctx context.Context) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListRanges returns all ranges visible to the current user
func (c *HTTPClient) ListRanges(ctx context.Context) ([]Range, error) {
	var ranges []Range
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/ranges", nil, &ranges); err != nil {
		return nil, err
	}
	return ranges, nil
}

// GetRange returns one range by id
func (c *HTTPClient) GetRange(ctx context.Context, id int) (*Range, error) {
	var r Range
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/v1/ranges/%d", id), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetRangeKey returns the SSH/RDP access key for a deployed range
func (c *HTTPClient) GetRangeKey(ctx context.Context, id int) (string, error) {
	var resp struct {
		Key string `json:"key"`
	}
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/v1/ranges/%d/key", id), nil, &resp); err != nil {
		return "", err
	}
	return resp.Key, nil
}

// DeployRange submits a deployment and returns the tracking job
func (c *HTTPClient) DeployRange(ctx context.Context, req DeployRequest) (*Job, error) {
	var job Job
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/ranges/deploy", req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteRange submits a teardown and returns the tracking job
func (c *HTTPClient) DeleteRange(ctx context.Context, id int) (*Job, error) {
	var job Job
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/ranges/%d", id), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ListBlueprintRanges returns all blueprints visible to the current user
func (c *HTTPClient) ListBlueprintRanges(ctx context.Context) ([]Blueprint, error) {
	var blueprints []Blueprint
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/blueprints", nil, &blueprints); err != nil {
		return nil, err
	}
	return blueprints, nil
}

// GetBlueprintRange returns one blueprint by id
func (c *HTTPClient) GetBlueprintRange(ctx context.Context, id int) (*Blueprint, error) {
	var b Blueprint
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/v1/blueprints/%d", id), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBlueprintRange uploads a new blueprint definition
func (c *HTTPClient) CreateBlueprintRange(ctx context.Context, blueprint map[string]any) (*Blueprint, error) {
	var b Blueprint
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/blueprints", blueprint, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// DeleteBlueprintRange removes a blueprint
func (c *HTTPClient) DeleteBlueprintRange(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/blueprints/%d", id), nil, nil)
}

// UpdateAWSSecrets replaces the stored AWS credential pair
func (c *HTTPClient) UpdateAWSSecrets(ctx context.Context, accessKey, secretKey string) error {
	body := map[string]string{"accessKey": accessKey, "secretKey": secretKey}
	return c.doJSON(ctx, http.MethodPut, "/api/v1/user/secrets/aws", body, nil)
}

// UpdateAzureSecrets replaces the stored Azure service principal
func (c *HTTPClient) UpdateAzureSecrets(ctx context.Context, secrets AzureSecrets) error {
	return c.doJSON(ctx, http.MethodPut, "/api/v1/user/secrets/azure", secrets, nil)
}

// GetJob returns the current state of an asynchronous job
func (c *HTTPClient) GetJob(ctx context.Context, id string) (*Job, error) {
	var job Job
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/jobs/"+url.PathEscape(id), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ListJobs returns jobs, optionally filtered by status
func (c *HTTPClient) ListJobs(ctx context.Context, statusFilter string) ([]Job, error) {
	path := "/api/v1/jobs"
	if statusFilter != "" {
		path += "?status=" + url.QueryEscape(statusFilter)
	}
	var jobs []Job
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// doJSON executes one request/response round trip. No retries happen at this
// layer; each bridge tool call maps to exactly one backend call.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	correlationID := uuid.New().String()

	logger := log.With().
		Str("method", method).
		Str("path", path).
		Str("correlationId", correlationID).
		Logger()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("X-Correlation-ID", correlationID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.credentials.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.credentials.AuthToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("backend request failed")
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("backend request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

// decodeAPIError turns a non-2xx response into an *APIError, preferring the
// backend's own message when one is present
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return apiErr
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			apiErr.Message = payload.Message
		} else if payload.Error != "" {
			apiErr.Message = payload.Error
		}
	}
	if apiErr.Message == "" && len(data) > 0 {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
