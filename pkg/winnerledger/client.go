// Package winnerledger is the HTTP client for the remote winner-ledger
// service, which records who won each draw and tracks payment state.
package winnerledger

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

// Client represents a winner-ledger client
type Client struct {
	BaseURL    string
	APIKey     string
	httpClient *http.Client
}

// NewClient creates a new winner ledger client
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

// FindByDraw fetches all winners recorded for a draw. An empty list is a
// valid result: the draw completed with no eligible winners.
func (c *Client) FindByDraw(ctx context.Context, drawID string) ([]models.Winner, error) {
	const op = "winnerledger.FindByDraw"
	var winners []models.Winner
	path := fmt.Sprintf("/%s/winners", drawID)
	if err := c.doJSON(ctx, op, http.MethodGet, path, nil, &winners); err != nil {
		return nil, err
	}
	if winners == nil {
		winners = []models.Winner{}
	}
	return winners, nil
}

type updateStatusRequest struct {
	Status models.ClaimStatus `json:"status"`
}

// UpdateStatus sets a winner's claim status. The status set is closed
// (PENDING, PAID, FAILED) but there is no ordering between them: moving
// PAID or FAILED back to PENDING is how mistaken payment records are
// corrected. Anything outside the set is rejected before any network I/O.
func (c *Client) UpdateStatus(ctx context.Context, winnerID string, status models.ClaimStatus) (*models.Winner, error) {
	const op = "winnerledger.UpdateStatus"
	if !models.ValidClaimStatus(status) {
		msg := fmt.Sprintf("invalid claim status %q", status)
		return nil, remote.NewError(op, remote.KindInvalidTransition, 0, msg, nil)
	}

	var winner models.Winner
	path := fmt.Sprintf("/winners/%s/status", winnerID)
	if err := c.doJSON(ctx, op, http.MethodPut, path, updateStatusRequest{Status: status}, &winner); err != nil {
		return nil, err
	}
	return &winner, nil
}

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
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return remote.NewError(op, remote.KindInvalidTransition, resp.StatusCode, string(respBody), nil)
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
