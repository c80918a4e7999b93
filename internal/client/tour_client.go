// Package client talks to the tour backend over HTTP.
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

	"go.uber.org/zap"

	"tourdesk/internal/models/request_models"
	"tourdesk/internal/models/response_models"
	"tourdesk/internal/schema"
	"tourdesk/pkg/utils"
)

const IdempotencyHeader = utils.IdempotencyHeader

// APIError is returned for every non-success answer of the backend.
type APIError struct {
	Status  int
	Message string
	Fields  []schema.FieldError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend answered %d", e.Status)
	}
	return fmt.Sprintf("backend answered %d: %s", e.Status, e.Message)
}

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	TraceID string          `json:"trace_id"`
	Data    json.RawMessage `json:"data"`
}

type TourClient struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

func NewTourClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *TourClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TourClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *TourClient) tourPath(id string) string {
	return "/api/v1/tours/" + url.PathEscape(id)
}

func (c *TourClient) FetchTour(ctx context.Context, id string) (*request_models.TourPayload, error) {
	var out response_models.TourResponse
	if err := c.do(ctx, http.MethodGet, c.tourPath(id), nil, "", &out); err != nil {
		return nil, err
	}
	return &out.Tour, nil
}

func (c *TourClient) CreateTour(ctx context.Context, payload request_models.TourPayload, idempotencyKey string) (string, error) {
	var out response_models.TourResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/tours", payload, idempotencyKey, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *TourClient) UpdateTour(ctx context.Context, id string, payload, baseline request_models.TourPayload, idempotencyKey string) error {
	body := request_models.UpdateTourRequest{Tour: payload, Baseline: baseline}
	return c.do(ctx, http.MethodPut, c.tourPath(id), body, idempotencyKey, nil)
}

func (c *TourClient) DeleteTour(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.tourPath(id), nil, "", nil)
}

func (c *TourClient) JoinTour(ctx context.Context, id string, req request_models.JoinTourRequest) (*response_models.JoinTourResponse, error) {
	var out response_models.JoinTourResponse
	if err := c.do(ctx, http.MethodPost, c.tourPath(id)+"/members", req, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *TourClient) do(ctx context.Context, method, path string, body any, idempotencyKey string, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if idempotencyKey != "" {
		req.Header.Set(IdempotencyHeader, idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && err != io.EOF {
		return &APIError{Status: resp.StatusCode, Message: "unreadable response body"}
	}
	c.logger.Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("trace_id", env.TraceID))

	if resp.StatusCode < 200 || resp.StatusCode > 299 || (env.Status != "" && env.Status != "success") {
		apiErr := &APIError{Status: resp.StatusCode, Message: env.Message}
		if len(env.Data) > 0 {
			_ = json.Unmarshal(env.Data, &apiErr.Fields)
		}
		return apiErr
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}
