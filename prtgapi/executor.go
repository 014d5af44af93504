package prtgapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"prtgctl/data/response"
)

// Executor performs a fully built PRTG request and returns the response
// body. Implementations must honor ctx.
type Executor interface {
	Execute(ctx context.Context, url string) (string, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, url string) (string, error)

func (f ExecutorFunc) Execute(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// RequestError is an error reported by the PRTG server, either through the
// HTTP status or in the response body.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	if e.Message == "" {
		return fmt.Sprintf("PRTG request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("PRTG request failed with status %d: %s", e.StatusCode, e.Message)
}

// HTTPExecutor sends requests as GETs over HTTP.
type HTTPExecutor struct {
	Client *http.Client
}

func NewHTTPExecutor(client *http.Client) *HTTPExecutor {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPExecutor{Client: client}
}

func (e *HTTPExecutor) Execute(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := e.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, ok := response.ErrorMessage(body)
		if !ok {
			msg = strings.TrimSpace(string(body))
			if len(msg) > 200 {
				msg = msg[:200]
			}
		}
		return "", &RequestError{StatusCode: resp.StatusCode, Message: msg}
	}
	return string(body), nil
}
