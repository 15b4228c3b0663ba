package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/aretw0/maboss/pkg/domain"
	"github.com/aretw0/maboss/pkg/protocol"
)

// StatusProtocolError is the reply status sent back for a request that could not be decoded.
const StatusProtocolError = 2

// Handler computes the reply for one decoded request.
type Handler interface {
	Handle(ctx context.Context, req *domain.Request) *domain.Reply
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, req *domain.Request) *domain.Reply

func (f HandlerFunc) Handle(ctx context.Context, req *domain.Request) *domain.Reply {
	return f(ctx, req)
}

// Server answers one request per connection.
type Server struct {
	handler Handler
	logger  *slog.Logger
	wg      sync.WaitGroup
}

type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a server dispatching decoded requests to h.
func New(h Handler, opts ...Option) *Server {
	s := &Server{
		handler: h,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Serve accepts connections on ln until ctx is cancelled or ln fails.
// It closes ln and waits for in-flight connections before returning.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() {
		_ = ln.Close()
	})
	defer stop()
	defer s.wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.ServeConn(ctx, conn)
		}()
	}
}

// ServeConn handles a single exchange on conn and closes it.
// Cancelling ctx unblocks any pending read or write on conn.
func (s *Server) ServeConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	var reply *domain.Reply
	req, err := protocol.ReadRequest(conn)
	if err != nil {
		s.logger.Warn("rejecting request", "remote", conn.RemoteAddr(), "err", err)
		reply = domain.NewErrorReply(StatusProtocolError, err.Error())
	} else {
		s.logger.Debug("request received", "command", req.Command().String(), "fragments", len(req.Fragments()))
		reply = s.handler.Handle(ctx, req)
		if reply == nil {
			reply = domain.NewErrorReply(1, "handler returned no reply")
		}
	}

	if err := protocol.WriteReply(conn, reply); err != nil {
		s.logger.Warn("writing reply", "err", err)
	}
}
