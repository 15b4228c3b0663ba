package metrics

import (
	"context"

	"github.com/aretw0/maboss/pkg/domain"
	"github.com/aretw0/maboss/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector records exchange and artifact metrics in a private registry.
// A one-shot CLI has no scrape endpoint, so the registry is dumped in the
// node-exporter textfile format at exit.
type Collector struct {
	registry  *prometheus.Registry
	exchanges *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	traffic   *prometheus.CounterVec
	artifacts *prometheus.CounterVec
}

// New creates a Collector with all metrics registered.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		exchanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "maboss_client_exchanges_total",
				Help: "Request/response exchanges by command and outcome",
			},
			[]string{"command", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "maboss_client_exchange_duration_seconds",
				Help:    "Wall time of an exchange, dial to last reply byte",
				Buckets: prometheus.ExponentialBuckets(0.005, 4, 10),
			},
			[]string{"command"},
		),
		traffic: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "maboss_client_bytes_total",
				Help: "Bytes exchanged with the server",
			},
			[]string{"direction"},
		),
		artifacts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "maboss_client_artifacts_written_total",
				Help: "Reply artifacts persisted, by kind",
			},
			[]string{"kind"},
		),
	}
	c.registry.MustRegister(c.exchanges, c.duration, c.traffic, c.artifacts)
	return c
}

// ObserveExchange implements ports.ExchangeObserver.
func (c *Collector) ObserveExchange(ctx context.Context, r ports.ExchangeReport) {
	cmd := r.Command.String()
	c.exchanges.WithLabelValues(cmd, string(r.Outcome)).Inc()
	c.duration.WithLabelValues(cmd).Observe(r.Duration.Seconds())
	c.traffic.WithLabelValues("sent").Add(float64(r.BytesSent))
	c.traffic.WithLabelValues("received").Add(float64(r.BytesReceived))
}

// ArtifactWritten counts one persisted artifact.
func (c *Collector) ArtifactWritten(kind domain.ArtifactKind) {
	c.artifacts.WithLabelValues(kind.String()).Inc()
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile dumps every metric to path atomically.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

var _ ports.ExchangeObserver = (*Collector)(nil)
