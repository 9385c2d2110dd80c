// Package api is the HTTP client for the remote Food resource.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"foodctl/internal/model"
)

// DefaultBaseURL is the public demo backend.
const DefaultBaseURL = "https://6852821e0594059b23cdd834.mockapi.io"

const foodPath = "/Food"

// Client wraps the Food REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Food API client. A zero timeout uses 10 seconds; a nil logger discards.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "api"),
	}
}

// BaseURL returns the base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches every food record.
func (c *Client) List(ctx context.Context) ([]model.FoodRecord, error) {
	items := []model.FoodRecord{}
	if err := c.do(ctx, http.MethodGet, foodPath, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches a single food record by id.
func (c *Client) Get(ctx context.Context, id string) (model.FoodRecord, error) {
	var item model.FoodRecord
	if err := c.do(ctx, http.MethodGet, itemPath(id), nil, &item); err != nil {
		return model.FoodRecord{}, err
	}
	return item, nil
}

// Create posts a new food record and returns the server's copy.
func (c *Client) Create(ctx context.Context, sub model.FoodFormSubmission) (model.FoodRecord, error) {
	var item model.FoodRecord
	if err := c.do(ctx, http.MethodPost, foodPath, sub, &item); err != nil {
		return model.FoodRecord{}, err
	}
	return item, nil
}

// Update replaces the food record id with sub.
func (c *Client) Update(ctx context.Context, id string, sub model.FoodFormSubmission) (model.FoodRecord, error) {
	var item model.FoodRecord
	if err := c.do(ctx, http.MethodPut, itemPath(id), sub, &item); err != nil {
		return model.FoodRecord{}, err
	}
	return item, nil
}

// Delete removes the food record id.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, itemPath(id), nil, nil)
}

func itemPath(id string) string {
	return foodPath + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("JSON decode error: %w", err)
	}
	return nil
}
