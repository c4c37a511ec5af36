package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
)

// maxBodyBytes caps how much of a response is read
const maxBodyBytes = 8 << 20

// doURL sends one request and returns the body of a 2xx response. token overrides the
// session lookup when the caller already holds the credential.
func (c *client) doURL(ctx context.Context, method string, rel *url.URL, payload any, token *string) ([]byte, error) {
	reqURL := c.resolve(rel)

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, c.localShape(http.StatusBadRequest, fmt.Sprintf("encode request: %v", err))
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reqBody)
	if err != nil {
		return nil, c.transportShape(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", c.ids.Generate())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token == nil {
		stored, err := c.session.Token(ctx)
		if err != nil {
			c.logger.Warn("failed to read credential, sending without it", "error", err)
		}
		token = &stored
	}
	if *token != "" {
		req.Header.Set("Authorization", "Bearer "+*token)
	}

	if c.debug {
		c.logger.Debug("catalog request",
			"method", method,
			"url", reqURL.String(),
			"request_id", req.Header.Get("X-Request-ID"))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transportShape(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, c.transportShape(fmt.Errorf("read response: %w", err))
	}

	if c.debug {
		c.logger.Debug("catalog response",
			"method", method,
			"url", reqURL.String(),
			"status", resp.StatusCode,
			"bytes", len(body))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.statusShape(ctx, resp, body)
	}
	return body, nil
}

// resolve appends rel to the base URL, keeping any path prefix the base carries
func (c *client) resolve(rel *url.URL) *url.URL {
	u := *c.baseURL
	u.Path = strings.TrimRight(c.baseURL.Path, "/") + rel.Path
	if rel.RawPath != "" {
		u.RawPath = strings.TrimRight(c.baseURL.EscapedPath(), "/") + rel.RawPath
	} else {
		u.RawPath = ""
	}
	u.RawQuery = rel.RawQuery
	return &u
}

func (c *client) decodeOne(body []byte) (*calamity.Weapon, error) {
	w, err := decodeWeapon(body, c.schema)
	if err != nil {
		return nil, c.decodeShape(err)
	}
	return w, nil
}

func (c *client) decodeList(body []byte) ([]*calamity.Weapon, error) {
	weapons, err := decodeWeaponList(body, c.schema)
	if err != nil {
		return nil, c.decodeShape(err)
	}
	return weapons, nil
}

func (c *client) decodeJSON(body []byte, dest any) error {
	if err := json.Unmarshal(body, dest); err != nil {
		return c.decodeShape(err)
	}
	return nil
}
