// Package drawengine is the HTTP client for the remote draw-execution
// service. The engine is the sole owner of the random-selection algorithm
// and of the at-most-one-draw-per-date rule; this client only speaks its
// wire contract.
package drawengine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bridgetunes/draw-console-backend/internal/models"
	"github.com/bridgetunes/draw-console-backend/pkg/remote"
)

const dateLayout = "2006-01-02"

// Client represents a draw-execution engine client
type Client struct {
	BaseURL    string
	APIKey     string
	httpClient *http.Client
}

// NewClient creates a new draw engine client
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ScheduleRequest is the engine's schedule payload. EligibleDigits is
// omitted entirely when the draw tracks the weekday defaults.
type ScheduleRequest struct {
	DrawDate       string          `json:"draw_date"`
	DrawType       models.DrawType `json:"draw_type"`
	EligibleDigits []int           `json:"eligible_digits,omitempty"`
	UseDefault     bool            `json:"use_default"`
}

// Schedule creates a draw for the given date. The engine answers 409 when a
// draw already exists for that date, surfaced as a Conflict error.
func (c *Client) Schedule(ctx context.Context, date time.Time, drawType models.DrawType, digits models.DigitSelection) (*models.Draw, error) {
	const op = "drawengine.Schedule"
	req := ScheduleRequest{
		DrawDate:   date.Format(dateLayout),
		DrawType:   drawType,
		UseDefault: digits.IsDefault(),
	}
	if !digits.IsDefault() {
		req.EligibleDigits = digits.Digits()
	}

	var draw models.Draw
	if err := c.doJSON(ctx, op, http.MethodPost, "/schedule", req, &draw); err != nil {
		return nil, err
	}
	return &draw, nil
}

// FindByDate looks up the draw for a calendar date. A 404 comes back as a
// NotFound error, which callers usually absorb rather than surface.
func (c *Client) FindByDate(ctx context.Context, date time.Time) (*models.Draw, error) {
	const op = "drawengine.FindByDate"
	var draw models.Draw
	path := fmt.Sprintf("/date/%s", date.Format(dateLayout))
	if err := c.doJSON(ctx, op, http.MethodGet, path, nil, &draw); err != nil {
		return nil, err
	}
	return &draw, nil
}

// FindByID looks up a draw by its engine-assigned identifier
func (c *Client) FindByID(ctx context.Context, id string) (*models.Draw, error) {
	const op = "drawengine.FindByID"
	var draw models.Draw
	if err := c.doJSON(ctx, op, http.MethodGet, "/"+id, nil, &draw); err != nil {
		return nil, err
	}
	return &draw, nil
}

// ExecuteAck is the engine's acknowledgement of an execution trigger
type ExecuteAck struct {
	Message string `json:"message"`
}

// Execute triggers the engine's selection run for a scheduled draw. This is
// an asynchronous trigger: the acknowledgement carries no winners.
func (c *Client) Execute(ctx context.Context, id string) (*ExecuteAck, error) {
	const op = "drawengine.Execute"
	var ack ExecuteAck
	path := fmt.Sprintf("/%s/execute", id)
	if err := c.doJSON(ctx, op, http.MethodPost, path, struct{}{}, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// DefaultDigits fetches the default eligible digits for a weekday
func (c *Client) DefaultDigits(ctx context.Context, weekday time.Weekday) ([]int, error) {
	const op = "drawengine.DefaultDigits"
	var digits []int
	path := fmt.Sprintf("/default-digits/%s", weekday.String())
	if err := c.doJSON(ctx, op, http.MethodGet, path, nil, &digits); err != nil {
		return nil, err
	}
	return digits, nil
}

// doJSON performs one request/response round trip against the engine
func (c *Client) doJSON(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return remote.NewError(op, remote.KindTransport, 0, "failed to marshal request body", err)
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return remote.NewError(op, remote.KindTransport, 0, "failed to create request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("X-API-Key", c.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return remote.NewError(op, remote.KindTransport, 0, "request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return remote.NewError(op, remote.KindTransport, resp.StatusCode, "failed to read response body", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return remote.NewError(op, remote.KindNotFound, resp.StatusCode, "", nil)
	case resp.StatusCode == http.StatusConflict:
		return remote.NewError(op, remote.KindConflict, resp.StatusCode, string(respBody), nil)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg := fmt.Sprintf("request failed with status %d: %s", resp.StatusCode, string(respBody))
		return remote.NewError(op, remote.KindTransport, resp.StatusCode, msg, nil)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return remote.NewError(op, remote.KindTransport, resp.StatusCode, "failed to parse response", err)
		}
	}
	return nil
}
