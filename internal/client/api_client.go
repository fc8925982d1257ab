package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jinji/attendance-sync/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// APIClient talks to the record store. It never retries; wrap calls with the
// retry package for that.
type APIClient struct {
	baseURL           string
	unavailableMarker string
	httpClient        *http.Client
	logger            *zap.Logger
}

// NewAPIClient creates a new API client. unavailableMarker is looked for in
// error bodies from servers that do not send a structured error code; pass
// "" to rely on the code only.
func NewAPIClient(baseURL string, timeout time.Duration, unavailableMarker string, logger *zap.Logger) *APIClient {
	return &APIClient{
		baseURL:           strings.TrimRight(baseURL, "/"),
		unavailableMarker: unavailableMarker,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Login exchanges an employee id and password for a bearer token.
func (c *APIClient) Login(ctx context.Context, employeeID int, password string) (*models.LoginResponse, error) {
	body := models.LoginRequest{EmployeeID: employeeID, Password: password}
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchMonthlyAttendance returns attendances and leaves for a YYYYMM month.
func (c *APIClient) FetchMonthlyAttendance(ctx context.Context, cred models.Credential, month string) (*models.MonthlyAttendance, error) {
	path := fmt.Sprintf("/attendance/%d?month=%s", cred.EmployeeID, url.QueryEscape(month))
	var data models.MonthlyAttendance
	if err := c.do(ctx, http.MethodGet, path, cred.Token, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// FetchDailyAttendance returns the record for a YYYY-MM-DD date, or nil when
// the store has none.
func (c *APIClient) FetchDailyAttendance(ctx context.Context, cred models.Credential, date string) (*models.AttendanceRecord, error) {
	path := fmt.Sprintf("/attendance/%d/%s", cred.EmployeeID, url.PathEscape(date))
	var rec *models.AttendanceRecord
	if err := c.do(ctx, http.MethodGet, path, cred.Token, nil, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateAttendance creates or replaces the record for rec.Date.
func (c *APIClient) UpdateAttendance(ctx context.Context, cred models.Credential, rec models.AttendanceRecord) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.do(ctx, http.MethodPut, "/attendance", cred.Token, rec, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateLeave records a leave day.
func (c *APIClient) CreateLeave(ctx context.Context, cred models.Credential, leave models.LeaveRecord) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/leave", cred.Token, leave, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteLeave removes the leave recorded for date.
func (c *APIClient) DeleteLeave(ctx context.Context, cred models.Credential, employeeID int, date string) (*models.MessageResponse, error) {
	path := fmt.Sprintf("/leave/%d/%s", employeeID, url.PathEscape(date))
	var resp models.MessageResponse
	if err := c.do(ctx, http.MethodDelete, path, cred.Token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchSalary returns the salary statement for a YYYYMM month.
func (c *APIClient) FetchSalary(ctx context.Context, cred models.Credential, month string) (*models.SalaryStatement, error) {
	path := fmt.Sprintf("/salary/%d?month=%s", cred.EmployeeID, url.QueryEscape(month))
	var st models.SalaryStatement
	if err := c.do(ctx, http.MethodGet, path, cred.Token, nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// FetchPerformance returns the review for employeeID and a YYYYMM month, or
// nil when none exists yet.
func (c *APIClient) FetchPerformance(ctx context.Context, cred models.Credential, employeeID int, month string) (*models.PerformanceReview, error) {
	path := fmt.Sprintf("/performance/%d?month=%s", employeeID, url.QueryEscape(month))
	var review *models.PerformanceReview
	if err := c.do(ctx, http.MethodGet, path, cred.Token, nil, &review); err != nil {
		return nil, err
	}
	return review, nil
}

// SubmitPerformance creates or replaces a review.
func (c *APIClient) SubmitPerformance(ctx context.Context, cred models.Credential, review models.PerformanceReview) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/performance", cred.Token, review, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HealthCheck checks if the backend is reachable
func (c *APIClient) HealthCheck(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

func (c *APIClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return &APIError{Kind: Terminal, Message: "failed to marshal request", Err: err}
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &APIError{Kind: Terminal, Message: "failed to create request", Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &APIError{Kind: Terminal, Message: "request cancelled", Err: ctxErr}
		}
		c.logger.Warn("Request failed without response",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return &APIError{Kind: NetworkUnreachable, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Kind: NetworkUnreachable, StatusCode: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Debug("Request succeeded",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Int("status_code", resp.StatusCode),
			zap.Duration("duration", duration),
		)
		if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return &APIError{Kind: Terminal, StatusCode: resp.StatusCode, Message: "malformed response body", Err: err}
		}
		return nil
	}

	apiErr := c.classify(resp.StatusCode, respBody)
	c.logger.Warn("Backend error",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status_code", resp.StatusCode),
		zap.Stringer("kind", apiErr.Kind),
		zap.String("response", apiErr.Message),
	)
	return apiErr
}

// classify maps an error response to a failure kind. Only a store
// unavailability signal is transient; every other status is terminal.
func (c *APIClient) classify(status int, body []byte) *APIError {
	var payload models.ErrorResponse
	message := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		message = payload.Error
	}
	if message == "" {
		message = http.StatusText(status)
	}

	kind := Terminal
	switch {
	case payload.Code == models.CodeStoreUnavailable:
		kind = Transient
	case c.unavailableMarker != "" && strings.Contains(string(body), c.unavailableMarker):
		kind = Transient
	}

	return &APIError{Kind: kind, StatusCode: status, Message: message}
}

// IsNotFound reports whether err is a 404 from the record store.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized reports whether err is an authentication failure.
func IsUnauthorized(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}
