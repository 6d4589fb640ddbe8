// Package shiftapi is the HTTP client for the remote shift store.
package shiftapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shiftcal/internal/metrics"
	"shiftcal/internal/model"
)

// RequestError reports a failed API operation. Every non-2xx response and
// every transport failure surfaces as one of these; the operation name makes
// the message actionable without inspecting the body.
type RequestError struct {
	Op     string
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: http %d", e.Op, e.Status)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Client calls the shift store's REST endpoints. One method per
// (resource, verb) pair; single attempt, no retries, no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// New constructs a client for the given base URL.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// ListShifts fetches every stored shift with its lookup values resolved.
func (c *Client) ListShifts(ctx context.Context) ([]model.ShiftWithDetails, error) {
	var shifts []model.ShiftWithDetails
	if err := c.do(ctx, "list shifts", http.MethodGet, "/api/shifts", nil, &shifts); err != nil {
		return nil, err
	}
	return shifts, nil
}

// CreateShift stores a new shift and returns it with its assigned id.
func (c *Client) CreateShift(ctx context.Context, fields model.ShiftFields) (model.Shift, error) {
	var created model.Shift
	body := map[string]any{"shift": fields}
	if err := c.do(ctx, "create shift", http.MethodPost, "/api/shifts", body, &created); err != nil {
		return model.Shift{}, err
	}
	return created, nil
}

// UpdateShift patches an arbitrary subset of a shift's fields.
func (c *Client) UpdateShift(ctx context.Context, id int64, fields model.ShiftFields) (model.Shift, error) {
	var updated model.Shift
	body := map[string]any{"shift": fields}
	path := fmt.Sprintf("/api/shifts/%d", id)
	if err := c.do(ctx, "update shift", http.MethodPatch, path, body, &updated); err != nil {
		return model.Shift{}, err
	}
	return updated, nil
}

// DeleteShift removes a shift. Deleting an unknown id is a failure, not a
// silent success.
func (c *Client) DeleteShift(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/shifts/%d", id)
	return c.do(ctx, "delete shift", http.MethodDelete, path, nil, nil)
}

// ListShiftTypes fetches the shift-type lookup list.
func (c *Client) ListShiftTypes(ctx context.Context) ([]model.ShiftType, error) {
	var types []model.ShiftType
	if err := c.do(ctx, "list shift types", http.MethodGet, "/api/shift_types", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// CreateShiftType adds a shift-type label.
func (c *Client) CreateShiftType(ctx context.Context, label string) (model.ShiftType, error) {
	var created model.ShiftType
	body := map[string]any{"shift_type": map[string]any{"shift_type": label}}
	if err := c.do(ctx, "create shift type", http.MethodPost, "/api/shift_types", body, &created); err != nil {
		return model.ShiftType{}, err
	}
	return created, nil
}

// DeleteShiftType removes a shift-type label. Fails when the store still has
// shifts referencing it.
func (c *Client) DeleteShiftType(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/shift_types/%d", id)
	return c.do(ctx, "delete shift type", http.MethodDelete, path, nil, nil)
}

// ListNames fetches the person-name lookup list.
func (c *Client) ListNames(ctx context.Context) ([]model.UserName, error) {
	var names []model.UserName
	if err := c.do(ctx, "list names", http.MethodGet, "/api/names", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// CreateName adds a person name.
func (c *Client) CreateName(ctx context.Context, name string) (model.UserName, error) {
	var created model.UserName
	body := map[string]any{"name": map[string]any{"name": name}}
	if err := c.do(ctx, "create name", http.MethodPost, "/api/names", body, &created); err != nil {
		return model.UserName{}, err
	}
	return created, nil
}

// DeleteName removes a person name. Fails when the store still has shifts
// referencing it.
func (c *Client) DeleteName(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/names/%d", id)
	return c.do(ctx, "delete name", http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader *strings.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Op: op, Err: err}
		}
		reader = strings.NewReader(string(data))
	} else {
		reader = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	l := c.logger.With().Str("op", op).Str("request_id", requestID).Logger()
	l.Debug().Str("method", method).Str("path", path).Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.IncAPIRequest(op, "error")
		l.Debug().Err(err).Msg("api transport failure")
		return &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		metrics.IncAPIRequest(op, "failure")
		l.Debug().Int("status", resp.StatusCode).Msg("api failure")
		return &RequestError{Op: op, Status: resp.StatusCode}
	}

	metrics.IncAPIRequest(op, "success")
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Op: op, Err: err}
	}
	return nil
}
