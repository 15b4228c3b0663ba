package transport

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync/atomic"
	"time"

	"github.com/aretw0/maboss/pkg/domain"
	"github.com/aretw0/maboss/pkg/ports"
	"github.com/aretw0/maboss/pkg/protocol"
)

// ErrSessionUsed is returned by Send on a Session that already performed its exchange.
var ErrSessionUsed = errors.New("transport: session already used")

// Dialer opens connections. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Session performs exactly one request/response exchange with an Endpoint.
type Session struct {
	endpoint Endpoint
	dialer   Dialer
	logger   *slog.Logger
	verbose  bool
	observer ports.ExchangeObserver
	used     atomic.Bool
}

// Option defines a functional option for configuring a Session.
type Option func(*Session)

// WithDialer replaces the default net.Dialer.
func WithDialer(d Dialer) Option {
	return func(s *Session) {
		s.dialer = d
	}
}

// WithLogger sets the structured logger used for exchange diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithVerbose logs the exchange at Info level instead of Debug.
func WithVerbose(verbose bool) Option {
	return func(s *Session) {
		s.verbose = verbose
	}
}

// WithObserver registers an observer notified when the exchange ends.
func WithObserver(o ports.ExchangeObserver) Option {
	return func(s *Session) {
		s.observer = o
	}
}

// NewSession creates a session bound to ep.
func NewSession(ep Endpoint, opts ...Option) *Session {
	s := &Session{
		endpoint: ep,
		dialer:   &net.Dialer{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Endpoint returns the endpoint the session talks to.
func (s *Session) Endpoint() Endpoint { return s.endpoint }

// Send encodes req, writes it, and blocks until the reply is decoded or the
// exchange fails. The connection is closed before Send returns.
//
// A reply carrying a non-zero status is returned with a nil error. Failures are
// a *domain.ConfigurationError (nothing was dialed), a *domain.ConnectionError
// (including cancellation of ctx) or a *domain.ProtocolError.
func (s *Session) Send(ctx context.Context, req *domain.Request) (reply *domain.Reply, err error) {
	if !s.used.CompareAndSwap(false, true) {
		return nil, ErrSessionUsed
	}

	start := time.Now()
	var cc *countingConn
	defer func() {
		s.report(ctx, req, reply, err, time.Since(start), cc)
	}()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.endpoint.IsZero() {
		return nil, &domain.ConfigurationError{Key: "endpoint", Reason: "no endpoint configured"}
	}

	s.log(ctx, "dialing server", "endpoint", s.endpoint.String(), "command", req.Command().String())
	conn, err := s.dialer.DialContext(ctx, s.endpoint.Network(), s.endpoint.Address())
	if err != nil {
		return nil, s.connectionError(ctx, "dial", err)
	}
	defer conn.Close()

	// Unblock pending reads and writes as soon as ctx is done.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	cc = &countingConn{Conn: conn}
	if err := protocol.WriteRequest(cc, req); err != nil {
		return nil, s.ioError(ctx, "write", err)
	}
	if cw, ok := conn.(interface{ CloseWrite() error }); ok {
		_ = cw.CloseWrite()
	}
	s.log(ctx, "request sent", "bytes_sent", cc.written, "fragments", len(req.Fragments()), "flags", req.Flags().String())

	reply, err = protocol.ReadReply(cc)
	if err != nil {
		return nil, s.ioError(ctx, "read", err)
	}
	s.log(ctx, "reply received", "bytes_received", cc.read, "status", reply.Status())
	return reply, nil
}

func (s *Session) ioError(ctx context.Context, op string, err error) error {
	if ctx.Err() == nil && errors.Is(err, domain.ErrProtocol) {
		return err
	}
	return s.connectionError(ctx, op, err)
}

func (s *Session) connectionError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}
	return &domain.ConnectionError{Endpoint: s.endpoint.String(), Op: op, Err: err}
}

func (s *Session) log(ctx context.Context, msg string, args ...any) {
	level := slog.LevelDebug
	if s.verbose {
		level = slog.LevelInfo
	}
	s.logger.Log(ctx, level, msg, args...)
}

func (s *Session) report(ctx context.Context, req *domain.Request, reply *domain.Reply, err error, d time.Duration, cc *countingConn) {
	if errors.Is(err, ErrSessionUsed) {
		return
	}
	outcome := domain.KindOf(err)
	status := 0
	if reply != nil {
		status = reply.Status()
		if !reply.OK() {
			outcome = domain.KindApplication
		}
	}
	if err != nil {
		s.log(ctx, "exchange failed", "endpoint", s.endpoint.String(), "kind", string(outcome), "err", err)
	}
	if s.observer == nil {
		return
	}
	rep := ports.ExchangeReport{
		Endpoint: s.endpoint.String(),
		Command:  req.Command(),
		Outcome:  outcome,
		Status:   status,
		Duration: d,
	}
	if cc != nil {
		rep.BytesSent = cc.written
		rep.BytesReceived = cc.read
	}
	s.observer.ObserveExchange(ctx, rep)
}

// countingConn tracks traffic volume for diagnostics.
type countingConn struct {
	net.Conn
	read    int64
	written int64
}

func (c *countingConn) Read(p []byte) (int, error) {
	n, err := c.Conn.Read(p)
	c.read += int64(n)
	return n, err
}

func (c *countingConn) Write(p []byte) (int, error) {
	n, err := c.Conn.Write(p)
	c.written += int64(n)
	return n, err
}
