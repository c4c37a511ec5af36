package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/KirkDiggler/calamity-catalog/internal/errors"
)

// Fixed messages for statuses whose server text is not shown to users
const (
	MessageForbidden   = "not authorized for this resource"
	MessageNotFound    = "resource not found"
	MessageServerError = "server error, retry later"
)

// serverError is the error body the catalog API sends
type serverError struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

// statusShape normalizes a non-2xx response. A 401 clears the stored credential and then
// signals OnUnauthorized before the shape is returned.
func (c *client) statusShape(ctx context.Context, resp *http.Response, body []byte) *errors.Shape {
	status := resp.StatusCode
	statusText := http.StatusText(status)
	message := ""

	var payload serverError
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
		message = strings.TrimSpace(payload.Message)
		if payload.Error != "" {
			statusText = payload.Error
		}
	}
	if message == "" {
		message = fmt.Sprintf("request failed with status code %d", status)
	}

	switch status {
	case http.StatusForbidden:
		message = MessageForbidden
	case http.StatusNotFound:
		message = MessageNotFound
	case http.StatusInternalServerError:
		message = MessageServerError
	}

	shape := errors.NewShape(status, message, statusText, c.clock.Now(), nil)

	if c.debug {
		c.logger.Debug("catalog error", "status", status, "message", message, "path", resp.Request.URL.Path)
	}

	if status == http.StatusUnauthorized {
		if err := c.session.Clear(ctx); err != nil {
			c.logger.Error("failed to clear credential after 401", "error", err)
		}
		c.unauthorized(shape)
	}
	return shape
}

// transportShape covers failures where no response reached the caller
func (c *client) transportShape(err error) *errors.Shape {
	shape := errors.NewTransportShape(err.Error(), c.clock.Now(), err)
	if c.debug {
		c.logger.Debug("catalog transport failure", "error", err)
	}
	return shape
}

// localShape reports a request that was refused before anything was sent
func (c *client) localShape(status int, message string) *errors.Shape {
	shape := errors.NewShape(status, message, http.StatusText(status), c.clock.Now(), nil)
	if status == http.StatusUnauthorized {
		c.unauthorized(shape)
	}
	return shape
}

// decodeShape reports a 2xx response whose body could not be read as a catalog payload
func (c *client) decodeShape(err error) *errors.Shape {
	return errors.NewShape(http.StatusInternalServerError, "decode response: "+err.Error(), "", c.clock.Now(), err)
}

func (c *client) unauthorized(shape *errors.Shape) {
	c.logger.Info("catalog session is not authorized", "status", shape.StatusCode)
	if c.onUnauthorized != nil {
		c.onUnauthorized(shape)
	}
}
