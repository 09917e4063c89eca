package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/taskbench/taskbench-go/internal/domain"
)

// StatusError is a non-2xx response from the Taskbench API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("taskbench API error (HTTP %d): %s", e.Code, e.Body)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// IsUnauthorized reports whether err is the HTTP 401 signal that drives the
// gateway's refresh-and-retry protocol.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// Client talks to the remote Taskbench API. It is a thin data source: JSON in,
// JSON out, no token handling beyond attaching the bearer header it is given.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// do executes one JSON request. A non-nil out is filled from the response
// body; access, when non-empty, is sent as a bearer credential.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, access string, in, out any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid request URL: %w", err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	log.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Msg("taskbench API request")

	resp, err := c.client.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransport(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Debug().
			Int("status", resp.StatusCode).
			Str("request_id", requestID).
			Msg("taskbench API error response")
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// classifyTransport maps transport failures onto the domain taxonomy.
// Cancellation passes through untouched so callers can recognize it.
func classifyTransport(err error) error {
	var nerr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	case errors.As(err, &nerr) && nerr.Timeout():
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrCouldNotConnect, err)
	}
}
