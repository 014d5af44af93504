// Package prtg modifies and queries objects on a PRTG server.
//
// It sits on top of prtgapi: values are checked and serialized by the
// property package, channel limit changes are planned and split by the
// limits package, and addresses are geocoded through the server before
// they are written.
package prtg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"prtgctl/location"
	"prtgctl/notify"
	"prtgctl/property"
	"prtgctl/prtgapi"
)

// ErrNoObjects is returned when a set operation is given no object IDs.
var ErrNoObjects = errors.New("at least one object ID must be specified")

// Notifier is told about every request that changed the server.
type Notifier interface {
	Notify(ctx context.Context, c notify.Change) error
}

type Client struct {
	api      *prtgapi.Client
	resolver *location.Resolver
	locale   property.Locale
	logger   *slog.Logger
	notifier Notifier

	// Set operations are applied one at a time so the requests of two
	// batches never interleave.
	operationLock sync.Mutex
}

type Option func(*Client)

// WithLocale sets the locale decimal values are written in.
func WithLocale(l property.Locale) Option {
	return func(c *Client) { c.locale = l }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

func New(api *prtgapi.Client, opts ...Option) *Client {
	c := &Client{
		api:      api,
		resolver: location.NewResolver(api),
		locale:   property.Invariant,
		logger:   api.Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// API exposes the underlying request client.
func (c *Client) API() *prtgapi.Client { return c.api }

func (c *Client) Locale() property.Locale { return c.locale }

// PartialError is returned when a change needed several requests and only
// some of them were applied. Pending groups were never sent.
type PartialError struct {
	Applied [][]int
	Failed  []int
	Pending [][]int
	Err     error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("applied %d of %d requests, failed on objects %s: %v",
		len(e.Applied), len(e.Applied)+1+len(e.Pending), joinIDs(e.Failed), e.Err)
}

func (e *PartialError) Unwrap() error { return e.Err }

func joinIDs(ids []int) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = strconv.Itoa(id)
	}
	return strings.Join(s, ",")
}

func checkIDs(ids []int) error {
	if len(ids) == 0 {
		return ErrNoObjects
	}
	for _, id := range ids {
		if id < 0 {
			return fmt.Errorf("invalid object ID %d", id)
		}
	}
	return nil
}
