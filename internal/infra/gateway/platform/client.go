package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/rakatama/koperasi-admin/pkg/logger"
)

const requestTimeout = 30 * time.Second

// Client is an HTTP client for the platform's back-office REST API. Every
// call is scoped to a caller-supplied bearer token; the client itself holds
// no session state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a new platform API client
func NewClient(baseURL string, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: log.WithField("component", "platform"),
	}
}

// SetBaseURL overrides the base URL (useful for testing)
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// do performs a JSON request and returns the envelope's data payload.
// Responses that do not follow the envelope convention pass through as-is.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body any) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, method, path, token, query, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req)
}

// doMultipart performs a multipart write. Non-POST verbs are tunneled over
// POST with a _method override field; file parts are streamed with optional
// upload progress reporting.
func (c *Client) doMultipart(ctx context.Context, path, token, methodOverride string, fields map[string]string, files []Upload, progress ProgressFunc) (json.RawMessage, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if methodOverride != "" && methodOverride != http.MethodPost {
		if err := writer.WriteField("_method", methodOverride); err != nil {
			return nil, fmt.Errorf("failed to write method override: %w", err)
		}
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("failed to write field %s: %w", k, err)
		}
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.Field, f.FileName)
		if err != nil {
			return nil, fmt.Errorf("failed to create file part %s: %w", f.Field, err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return nil, fmt.Errorf("failed to copy file part %s: %w", f.Field, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	reqBody := io.Reader(&buf)
	total := int64(buf.Len())
	if progress != nil {
		reqBody = &progressReader{r: reqBody, total: total, progress: progress}
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, token, nil, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = total

	return c.send(req)
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, query url.Values, body io.Reader) (*http.Request, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request) (json.RawMessage, error) {
	start := time.Now()
	c.logger.Debug("API request", "method", req.Method, "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("API response",
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	var env Envelope
	enveloped := json.Unmarshal(body, &env) == nil && env.Code != 0

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if enveloped {
			apiErr.Code = env.Code
			apiErr.Message = env.Message
			apiErr.Fields = env.Errors
		}
		c.logger.Warn("API error", "status_code", resp.StatusCode, "message", apiErr.Error())
		return nil, apiErr
	}

	if !enveloped {
		return body, nil
	}
	if env.Code != http.StatusOK {
		return nil, &APIError{
			Status:  resp.StatusCode,
			Code:    env.Code,
			Message: env.Message,
			Fields:  env.Errors,
		}
	}
	return env.Data, nil
}
