package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "curoo/pkg/errors"

	"github.com/goccy/go-json"
)

type HttpClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewHttpClient(baseURL string, timeout time.Duration) *HttpClient {
	return &HttpClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// DecodeData decodes the response payload into target. Bodies wrapped in a
// {"data": ...} envelope are unwrapped first.
func (r *Response) DecodeData(target any) error {
	payload := r.Body

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(r.Body, &envelope); err == nil {
		if data, ok := envelope["data"]; ok {
			payload = data
		}
	}

	if err := json.Unmarshal(payload, target); err != nil {
		return apperrors.RemoteCall("Invalid response from persistence service", r.StatusCode, err)
	}
	return nil
}

// Do sends the request and returns the response when the status is 2xx.
// Transport failures and every other status come back as a REMOTE_CALL_ERROR
// carrying the service's own message when it supplied one.
func (c *HttpClient) Do(ctx context.Context, method, path string, body any, headers map[string]string) (*Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, apperrors.RemoteCall(fmt.Sprintf("%s %s failed", method, path), 0, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.RemoteCall("Failed to read response body", resp.StatusCode, err)
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.RemoteCall(errorMessage(out), resp.StatusCode, nil)
	}
	return out, nil
}

func (c *HttpClient) WaitForHealthy(ctx context.Context, maxWait time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, maxWait)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		if _, err := c.Do(ctx, http.MethodGet, "/health", nil, nil); err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("service did not become healthy within %v", maxWait)
		case <-ticker.C:
		}
	}
}

func errorMessage(resp *Response) string {
	var errResp struct {
		Detail  any    `json:"detail"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body, &errResp); err == nil {
		switch detail := errResp.Detail.(type) {
		case string:
			if detail != "" {
				return detail
			}
		case nil:
		default:
			if raw, err := json.Marshal(detail); err == nil {
				return string(raw)
			}
		}
		if errResp.Error != "" {
			return errResp.Error
		}
		if errResp.Message != "" {
			return errResp.Message
		}
	}
	return fmt.Sprintf("persistence service returned %d", resp.StatusCode)
}
