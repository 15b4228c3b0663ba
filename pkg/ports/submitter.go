package ports

import (
	"context"
	"time"

	"github.com/aretw0/maboss/pkg/domain"
)

// Submitter performs one request/response exchange with a simulation server.
// A reply with a non-zero status is a successful exchange: err is nil and the
// caller must check reply.Err().
type Submitter interface {
	Submit(ctx context.Context, req *domain.Request) (*domain.Reply, error)
}

// ExchangeReport summarizes one exchange for observers.
type ExchangeReport struct {
	Endpoint      string
	Command       domain.Command
	Outcome       domain.ErrorKind
	Status        int
	Duration      time.Duration
	BytesSent     int64
	BytesReceived int64
}

// ExchangeObserver is notified once per exchange, whatever its outcome.
type ExchangeObserver interface {
	ObserveExchange(ctx context.Context, report ExchangeReport)
}
