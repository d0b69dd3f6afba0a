package genius

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// get makes an authenticated GET request to the Genius API and decodes the
// response block of the JSON envelope into out.
//
// It handles:
// - Bearer token authorization
// - Query string encoding
// - Meta status and OAuth error decoding
// - Context cancellation
func get[T any](ctx context.Context, c *Client, path string, query url.Values, out *T) error {
	endpoint := strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	c.logDebugf("genius: GET %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if env.ErrorCode != "" {
		msg := env.ErrorCode
		if env.ErrorDescription != "" {
			msg += ": " + env.ErrorDescription
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	status := env.Meta.Status
	if status == 0 {
		status = resp.StatusCode
	}
	if status != http.StatusOK {
		msg := env.Meta.Message
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &Error{Status: status, Message: msg}
	}

	c.logDebugf("genius: GET %s succeeded", path)
	*out = env.Response
	return nil
}
