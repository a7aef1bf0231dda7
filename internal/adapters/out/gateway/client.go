// Package gateway implements the remote collaborator ports over HTTP+JSON
// against the platform gateway. All endpoints share one base client that
// attaches the bearer token, decodes error envelopes into errs.RemoteError,
// and reports session expiry through an explicit injected callback.
package gateway

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

	"console/internal/pkg/errs"
)

// TokenProvider returns the current bearer token from the session store.
// It is called per request so a refreshed token is picked up immediately.
type TokenProvider func() string

// Client is the shared HTTP layer under every gateway adapter.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	token          TokenProvider
	onUnauthorized func()
	logger         *slog.Logger
}

// NewClient creates a gateway client for the given base URL. onUnauthorized,
// when non-nil, is invoked once per 401 response so the host application can
// end the session; there is no ambient global signal for this.
func NewClient(baseURL string, token TokenProvider, onUnauthorized func(), logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		token:          token,
		onUnauthorized: onUnauthorized,
		logger:         logger.With("component", "gateway_client"),
	}
}

// errorEnvelope is the backend's error body shape.
type errorEnvelope struct {
	Message string `json:"message"`
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return errs.NewRemoteErrorWithCause("could not build request", 0, err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return err
	}
	return decodeBody(body, out)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := c.postRaw(ctx, path, payload)
	if err != nil {
		return err
	}
	return decodeBody(body, out)
}

// postRaw posts a JSON payload and returns the raw response body. Callers
// that must distinguish multiple response envelopes decode it themselves.
func (c *Client) postRaw(ctx context.Context, path string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.NewRemoteErrorWithCause("could not encode request", 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, errs.NewRemoteErrorWithCause("could not build request", 0, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// postMultipart posts a pre-assembled multipart form body.
func (c *Client) postMultipart(ctx context.Context, path, contentType string, form io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, form)
	if err != nil {
		return errs.NewRemoteErrorWithCause("could not build request", 0, err)
	}
	req.Header.Set("Content-Type", contentType)

	body, err := c.do(req)
	if err != nil {
		return err
	}
	return decodeBody(body, out)
}

// do executes the request with auth attached and maps failures to
// errs.RemoteError. Non-2xx responses prefer the backend's message field
// over a generic status description.
func (c *Client) do(req *http.Request) ([]byte, error) {
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("gateway request failed", "url", req.URL.Path, "error", err)
		return nil, errs.NewRemoteErrorWithCause("the server could not be reached", 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewRemoteErrorWithCause("response could not be read", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}

		message := fmt.Sprintf("request failed with status %d", resp.StatusCode)
		var envelope errorEnvelope
		if jsonErr := json.Unmarshal(body, &envelope); jsonErr == nil && envelope.Message != "" {
			message = envelope.Message
		}
		return nil, errs.NewRemoteError(message, resp.StatusCode)
	}

	return body, nil
}

// decodeBody tolerates empty response bodies, mirroring how the gateway
// answers some calls with no content.
func decodeBody(body []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errs.NewRemoteErrorWithCause("response could not be decoded", 0, err)
	}
	return nil
}
