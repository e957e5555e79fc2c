package api

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

	"github.com/google/uuid"
)

const DefaultTimeout = 30 * time.Second

// KeyValueSource is the read-only view of the durable session storage the
// client pulls credentials from before each request.
type KeyValueSource interface {
	Get(key string) (string, bool)
}

const (
	credentialKeyAccess       = "access"
	credentialKeyOrganization = "organization_id"
)

// Client is a thin wrapper over the backend REST API. Every authenticated
// request carries a bearer token and, when configured, an organization scope
// header.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      KeyValueSource
}

func NewClient(baseURL string, timeout time.Duration, creds KeyValueSource) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
		creds:      creds,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	op := method + " " + path

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &NetworkError{Op: op, Err: fmt.Errorf("encode request body: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		if token, ok := c.creds.Get(credentialKeyAccess); ok && strings.TrimSpace(token) != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		if org, ok := c.creds.Get(credentialKeyOrganization); ok && strings.TrimSpace(org) != "" {
			req.Header.Set("X-Organization-ID", org)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFromResponse(op, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) errorFromResponse(op string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{Message: messageFromBody(data, "invalid or expired credentials")}
	case http.StatusNotFound:
		return &NotFoundError{Resource: "resource"}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &ValidationError{
			Message: messageFromBody(data, ""),
			Fields:  fieldsFromBody(data),
		}
	default:
		return &NetworkError{
			Op:  op,
			Err: fmt.Errorf("request failed (%d): %s", resp.StatusCode, messageFromBody(data, strings.TrimSpace(string(data)))),
		}
	}
}

// messageFromBody pulls a human-readable message out of the common error
// body shapes: {"message": ...}, {"detail": ...}, {"error": {"message": ...}}.
func messageFromBody(data []byte, fallback string) string {
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return fallback
	}
	for _, key := range []string{"message", "detail", "error"} {
		switch v := body[key].(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return v
			}
		case map[string]any:
			if msg, ok := v["message"].(string); ok && strings.TrimSpace(msg) != "" {
				return msg
			}
		}
	}
	return fallback
}

// fieldsFromBody collects DRF-style field error lists, e.g.
// {"email": ["user with this email already exists."]}.
func fieldsFromBody(data []byte) map[string][]string {
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return nil
	}
	fields := make(map[string][]string)
	for key, raw := range body {
		list, ok := raw.([]any)
		if !ok {
			continue
		}
		msgs := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				msgs = append(msgs, s)
			}
		}
		if len(msgs) > 0 {
			fields[key] = msgs
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
