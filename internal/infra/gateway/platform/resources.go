package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// ListResource fetches a resource collection, passing filters through as
// query parameters. Rows come back as raw JSON: the resources differ in
// shape and the panel renders them without interpretation.
func (c *Client) ListResource(ctx context.Context, token, path string, query url.Values) ([]json.RawMessage, error) {
	data, err := c.do(ctx, http.MethodGet, path, token, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}

	rows := unwrapList(data)
	if len(rows) == 0 {
		return []json.RawMessage{}, nil
	}
	var out []json.RawMessage
	if err := json.Unmarshal(rows, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s list: %w", path, err)
	}
	return out, nil
}

// GetResource fetches a single record
func (c *Client) GetResource(ctx context.Context, token, path, id string) (json.RawMessage, error) {
	data, err := c.do(ctx, http.MethodGet, path+"/"+id, token, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", path, id, err)
	}
	return data, nil
}

// CreateResource creates a record with a JSON body
func (c *Client) CreateResource(ctx context.Context, token, path string, body any) (json.RawMessage, error) {
	data, err := c.do(ctx, http.MethodPost, path, token, nil, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return data, nil
}

// UpdateResource updates a record with a JSON body
func (c *Client) UpdateResource(ctx context.Context, token, path, id string, body any) (json.RawMessage, error) {
	data, err := c.do(ctx, http.MethodPut, path+"/"+id, token, nil, body)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s/%s: %w", path, id, err)
	}
	return data, nil
}

// DeleteResource deletes a record
func (c *Client) DeleteResource(ctx context.Context, token, path, id string) error {
	if _, err := c.do(ctx, http.MethodDelete, path+"/"+id, token, nil, nil); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", path, id, err)
	}
	return nil
}

// DeleteResourceTunneled deletes a record on a multipart resource. Those
// endpoints only accept POST, so the verb rides a _method field.
func (c *Client) DeleteResourceTunneled(ctx context.Context, token, path, id string) error {
	if _, err := c.doMultipart(ctx, path+"/"+id, token, http.MethodDelete, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", path, id, err)
	}
	return nil
}

// CreateResourceMultipart creates a record with multipart form encoding, for
// resources that carry file uploads (business unit logos).
func (c *Client) CreateResourceMultipart(ctx context.Context, token, path string, fields map[string]string, files []Upload, progress ProgressFunc) (json.RawMessage, error) {
	data, err := c.doMultipart(ctx, path, token, "", fields, files, progress)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return data, nil
}

// UpdateResourceMultipart updates a record via multipart form encoding. The
// platform does not accept multipart PUT directly, so the verb is tunneled
// over POST with a _method field.
func (c *Client) UpdateResourceMultipart(ctx context.Context, token, path, id string, fields map[string]string, files []Upload, progress ProgressFunc) (json.RawMessage, error) {
	data, err := c.doMultipart(ctx, path+"/"+id, token, http.MethodPut, fields, files, progress)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s/%s: %w", path, id, err)
	}
	return data, nil
}
