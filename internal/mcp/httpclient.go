package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/fitcoach/internal/apperr"
	"github.com/claude/fitcoach/internal/healthrules"
	"github.com/claude/fitcoach/internal/models"
	"github.com/claude/fitcoach/internal/service"
)

// HTTPClient implements Backend by calling the fitcoach REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale). The server
// resolves the user from the connection, so the userID arguments are unused.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies Backend.
var _ Backend = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// apiError is the error body written by the REST API.
type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field"`
}

// do sends a request and decodes a 2xx JSON response into out. Error bodies
// carrying an error code are returned as *apperr.Error.
func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, in, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ae apiError
		if json.Unmarshal(data, &ae) == nil && ae.Code != "" {
			return &apperr.Error{Code: apperr.Code(ae.Code), Message: ae.Error, Field: ae.Field}
		}
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) GenerateWorkout(ctx context.Context, _ int, req models.WorkoutRequest) (*service.WorkoutResult, error) {
	var res service.WorkoutResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/workouts/generate", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CalculateNutrition uses the inline endpoint when measurements are given
// and the stored-profile endpoint otherwise.
func (c *HTTPClient) CalculateNutrition(ctx context.Context, _ int, req service.NutritionRequest) (*service.NutritionResult, error) {
	var res service.NutritionResult
	var err error
	if req.Input != nil {
		err = c.do(ctx, http.MethodPost, "/api/v1/nutrition/calculate", nil, req, &res)
	} else {
		err = c.do(ctx, http.MethodGet, "/api/v1/nutrition", nil, nil, &res)
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) AssessInjuryRisk(ctx context.Context, _ int, planned int) (*models.InjuryReport, error) {
	params := url.Values{}
	if planned >= 0 {
		params.Set("planned_frequency", strconv.Itoa(planned))
	}

	var report models.InjuryReport
	if err := c.do(ctx, http.MethodGet, "/api/v1/injury-risk", params, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *HTTPClient) LogMuscleUsage(ctx context.Context, _ int, entry models.MuscleUsageLog) (*models.MuscleUsageRecord, error) {
	var rec models.MuscleUsageRecord
	if err := c.do(ctx, http.MethodPost, "/api/v1/muscles/usage", nil, entry, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) HealthRules(ctx context.Context) (*healthrules.Summary, error) {
	var sum healthrules.Summary
	if err := c.do(ctx, http.MethodGet, "/api/v1/catalog", nil, nil, &sum); err != nil {
		return nil, err
	}
	return &sum, nil
}
