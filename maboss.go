package maboss

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/maboss/pkg/domain"
	"github.com/aretw0/maboss/pkg/ports"
	"github.com/aretw0/maboss/pkg/transport"
)

// Version of the client. Overridden at link time for releases.
var Version = "0.3.0"

// Client is the high-level entry point for submitting jobs to a MaBoSS server.
// Each Submit opens its own Session, so a Client is safe for concurrent use.
type Client struct {
	endpoint transport.Endpoint
	dialer   transport.Dialer
	logger   *slog.Logger
	verbose  bool
	observer ports.ExchangeObserver
}

var _ ports.Submitter = (*Client)(nil)

// Option defines a functional option for configuring the Client.
type Option func(*Client)

// WithEndpoint sets the server to talk to.
func WithEndpoint(ep transport.Endpoint) Option {
	return func(c *Client) {
		c.endpoint = ep
	}
}

// WithLogger sets a custom structured logger for exchange diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithVerbose raises exchange diagnostics from Debug to Info.
func WithVerbose(verbose bool) Option {
	return func(c *Client) {
		c.verbose = verbose
	}
}

// WithObserver registers an observer notified after every exchange.
func WithObserver(o ports.ExchangeObserver) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithDialer replaces the default net.Dialer (tests, proxies).
func WithDialer(d transport.Dialer) Option {
	return func(c *Client) {
		c.dialer = d
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the configured server endpoint.
func (c *Client) Endpoint() transport.Endpoint { return c.endpoint }

// Submit performs one exchange and returns the server reply.
// A reply with a non-zero status is not an error here; see Reply.Err.
func (c *Client) Submit(ctx context.Context, req *domain.Request) (*domain.Reply, error) {
	if c.endpoint.IsZero() {
		return nil, &domain.ConfigurationError{Key: "port", Reason: "port is missing"}
	}

	opts := []transport.Option{
		transport.WithLogger(c.logger),
		transport.WithVerbose(c.verbose),
	}
	if c.dialer != nil {
		opts = append(opts, transport.WithDialer(c.dialer))
	}
	if c.observer != nil {
		opts = append(opts, transport.WithObserver(c.observer))
	}
	return transport.NewSession(c.endpoint, opts...).Send(ctx, req)
}

// Persist writes every non-empty artifact of reply to store, named by its suffix.
// Nothing is written for a failed reply; its *domain.ApplicationError is returned instead.
// The names written so far are returned even when a write fails.
func Persist(ctx context.Context, reply *domain.Reply, store ports.ArtifactStore) ([]string, error) {
	if err := reply.Err(); err != nil {
		return nil, err
	}

	var written []string
	for _, kind := range domain.ArtifactKinds {
		data, ok := reply.Artifact(kind)
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if err := store.Put(ctx, kind.Suffix(), data); err != nil {
			return written, fmt.Errorf("failed to write %s artifact: %w", kind, err)
		}
		written = append(written, kind.Suffix())
	}
	return written, nil
}
