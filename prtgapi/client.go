// Package prtgapi is a thin client for the PRTG HTTP API.
//
// # Requests
//
// Every request is a GET against the server's base URL. Parameters keep the
// order they were added in and credentials are always appended last:
//
//	https://prtg.example.com/editsettings?id=1001,1002&name_=ping&username=u&passhash=1234
//
// Requests are executed through an Executor so callers can swap the HTTP
// transport for a recording double in tests.
//
// # Server version
//
// Some behavior depends on the PRTG version. Client.Version probes
// api/getstatus.htm once and caches the answer; concurrent callers share the
// same probe.
package prtgapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"prtgctl/auth"
	"prtgctl/data/model"
)

// ErrNotFound is returned when a lookup by name matches no object.
var ErrNotFound = errors.New("object not found")

// Observer is told about every request the client executes.
type Observer interface {
	ObserveRequest(endpoint string, elapsed time.Duration, err error)
}

type Client struct {
	server   string
	creds    auth.Credentials
	exec     Executor
	logger   *slog.Logger
	observer Observer

	mu      sync.Mutex
	version model.Version
	probe   singleflight.Group
}

type Option func(*Client)

// WithExecutor replaces the HTTP transport.
func WithExecutor(e Executor) Option {
	return func(c *Client) { c.exec = e }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.exec = NewHTTPExecutor(hc) }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithVersion pins the server version and skips the status probe.
func WithVersion(v model.Version) Option {
	return func(c *Client) { c.version = v }
}

// New returns a client for the PRTG server at addr.
func New(addr string, creds auth.Credentials, opts ...Option) (*Client, error) {
	server, err := auth.Server(addr)
	if err != nil {
		return nil, err
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		server: server,
		creds:  creds,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.exec == nil {
		c.exec = NewHTTPExecutor(nil)
	}
	return c, nil
}

// Server is the base URL requests are sent to.
func (c *Client) Server() string { return c.server }

func (c *Client) Logger() *slog.Logger { return c.logger }

// URL builds the full request URL for endpoint.
func (c *Client) URL(endpoint string, params model.Parameters) string {
	q := params.Encode()
	if q != "" {
		q += "&"
	}
	return c.server + endpoint + "?" + q + c.creds.Query()
}

// Do executes a request and returns the response body.
func (c *Client) Do(ctx context.Context, endpoint string, params model.Parameters) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()
	body, err := c.exec.Execute(ctx, c.URL(endpoint, params))
	elapsed := time.Since(start)

	if c.observer != nil {
		c.observer.ObserveRequest(endpoint, elapsed, err)
	}
	if err != nil {
		c.logger.Debug("prtg request failed", "endpoint", endpoint, "elapsed", elapsed, "error", err)
		return "", err
	}
	c.logger.Debug("prtg request", "endpoint", endpoint, "elapsed", elapsed, "bytes", len(body))
	return body, nil
}

// Version returns the server version, probing the server on first use.
func (c *Client) Version(ctx context.Context) (model.Version, error) {
	c.mu.Lock()
	v := c.version
	c.mu.Unlock()
	if !v.IsZero() {
		return v, nil
	}

	// The probe outlives any single caller's cancellation so the others
	// sharing it still get an answer.
	probeCtx := context.WithoutCancel(ctx)
	ch := c.probe.DoChan("version", func() (interface{}, error) {
		v, err := c.fetchVersion(probeCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.version = v
		c.mu.Unlock()
		return v, nil
	})

	select {
	case <-ctx.Done():
		return model.Version{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return model.Version{}, res.Err
		}
		return res.Val.(model.Version), nil
	}
}

type statusResponse struct {
	Version string `json:"Version"`
}

func (c *Client) fetchVersion(ctx context.Context) (model.Version, error) {
	body, err := c.Do(ctx, statusEndpoint, model.Parameters{model.NewParameter("id", "0")})
	if err != nil {
		return model.Version{}, fmt.Errorf("get server version: %w", err)
	}
	var status statusResponse
	if err := json.UnmarshalFromString(body, &status); err != nil {
		return model.Version{}, fmt.Errorf("get server version: %w", err)
	}
	v, err := model.ParseVersion(status.Version)
	if err != nil {
		return model.Version{}, fmt.Errorf("get server version: %w", err)
	}
	c.logger.Debug("detected PRTG version", "version", v.String())
	return v, nil
}
