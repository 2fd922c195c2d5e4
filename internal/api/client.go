// Package api is the typed HTTP client for the ordering backend. Every
// request carries the stored access token; a 401 answer triggers exactly one
// silent token refresh followed by one retry of the original request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"tastebite/internal/storage"
)

type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  *storage.Store
}

func New(baseURL string, timeout time.Duration, tokens *storage.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", body, out)
}

func (c *Client) putJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPut, path, "application/json", body, out)
}

func (c *Client) deleteReq(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, "", nil, nil)
}

// do issues one request and applies the single-retry refresh policy: on a 401
// it refreshes the access token once and replays the request; a second 401 is
// propagated as a final failure. The body is held as a byte slice so the
// replay sends identical content.
func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte, out any) error {
	requestID := uuid.NewString()

	status, data, err := c.send(ctx, method, path, contentType, body, requestID)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		refresh := c.tokens.RefreshToken()
		if refresh == "" {
			c.tokens.ClearTokens()
			return decodeError(status, data)
		}

		access, refreshErr := c.refreshAccessToken(ctx, refresh)
		if refreshErr != nil {
			c.tokens.ClearTokens()
			return refreshErr
		}
		c.tokens.SetAccessToken(access)
		log.Println("[API] [INFO] access token refreshed, retrying request:", method, path)

		status, data, err = c.send(ctx, method, path, contentType, body, requestID)
		if err != nil {
			return err
		}
	}

	if status < 200 || status > 299 {
		return decodeError(status, data)
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path, contentType string, body []byte, requestID string) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", requestID)
	if token := c.tokens.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: read response: %w", method, path, err)
	}
	return resp.StatusCode, data, nil
}

// refreshAccessToken exchanges the refresh token for a new access token. The
// request carries no bearer header so an expired access token cannot poison
// the refresh call itself.
func (c *Client) refreshAccessToken(ctx context.Context, refresh string) (string, error) {
	body, err := json.Marshal(map[string]string{"refresh": refresh})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token/refresh/", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("token refresh: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("token refresh: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Println("[API] [ERROR] token refresh rejected with status", resp.StatusCode)
		return "", decodeError(resp.StatusCode, data)
	}

	var out struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("token refresh: decode response: %w", err)
	}
	if out.Access == "" {
		return "", errors.New("token refresh: response missing access token")
	}
	return out.Access, nil
}
