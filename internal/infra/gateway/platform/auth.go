package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Login exchanges HTTP Basic credentials for a bearer token at
// POST /auth/account. The token is treated as opaque by the rest of the
// system.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/account", "", nil, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(username, password)

	data, err := c.send(req)
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}

	// Tolerate both { token: "..." } and a bare token string.
	var result LoginResult
	if json.Unmarshal(data, &result) == nil && result.Token != "" {
		return result.Token, nil
	}
	var bare string
	if json.Unmarshal(data, &bare) == nil && bare != "" {
		return bare, nil
	}
	if raw := strings.TrimSpace(string(data)); raw != "" && raw != "null" {
		return "", fmt.Errorf("login succeeded but token missing from response")
	}
	return "", fmt.Errorf("login succeeded but response was empty")
}
