package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/maboss"
	"github.com/aretw0/maboss/internal/logging"
	"github.com/aretw0/maboss/internal/metrics"
	"github.com/aretw0/maboss/internal/presentation/tui"
	"github.com/aretw0/maboss/pkg/adapters/file"
	"github.com/aretw0/maboss/pkg/adapters/redis"
	"github.com/aretw0/maboss/pkg/domain"
	"github.com/aretw0/maboss/pkg/ports"
	"github.com/aretw0/maboss/pkg/transport"
)

// Run executes one job: build the request, submit it, persist the artifacts
// and report. Errors are printed on stderr before being returned.
func Run(ctx context.Context, opts RunOptions, stdout, stderr io.Writer) error {
	printer := tui.NewPrinter(stdout, stderr)
	logger := logging.New(stderr, logging.LevelFor(opts.Verbose, opts.Debug))

	err := run(ctx, opts, printer, logger)
	if err != nil {
		printer.Error(err)
	}
	return err
}

func run(ctx context.Context, opts RunOptions, printer *tui.Printer, logger *slog.Logger) error {
	ep, err := transport.ParseEndpoint(opts.Host, opts.Port)
	if err != nil {
		return err
	}
	req, err := BuildRequest(opts, file.NewReader())
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, opts)
	if err != nil {
		return err
	}
	defer closeStore()

	collector := metrics.New()
	if opts.MetricsFile != "" {
		defer func() {
			if err := collector.WriteTextfile(opts.MetricsFile); err != nil {
				printer.Warn("metrics not written: %v", err)
			}
		}()
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	client := maboss.New(
		maboss.WithEndpoint(ep),
		maboss.WithLogger(logger),
		maboss.WithVerbose(opts.Verbose),
		maboss.WithObserver(collector),
	)
	reply, err := client.Submit(ctx, req)
	if err != nil {
		return err
	}
	if err := reply.Err(); err != nil {
		return err
	}

	var entries []tui.ArtifactEntry
	if store == nil {
		for _, kind := range domain.ArtifactKinds {
			if _, ok := reply.Artifact(kind); ok {
				printer.Warn("%s artifact discarded: no output prefix", kind)
			}
		}
	} else {
		written, err := maboss.Persist(ctx, reply, store)
		entries = artifactEntries(reply, store, written, collector)
		if err != nil {
			return err
		}
	}

	logger.Debug("job complete", "command", req.Command().String(), "artifacts", len(entries))
	return printer.Report(req.Command(), ep.String(), entries)
}

// openStore selects the artifact sink. Redis replaces the filesystem when configured;
// with neither an output prefix nor Redis there is nowhere to write (CHECK only).
func openStore(ctx context.Context, opts RunOptions) (ports.ArtifactStore, func(), error) {
	noop := func() {}
	if opts.RedisURL != "" {
		var ropts []redis.Option
		if opts.RedisPrefix != "" {
			ropts = append(ropts, redis.WithPrefix(opts.RedisPrefix))
		}
		if opts.RedisTTL > 0 {
			ropts = append(ropts, redis.WithTTL(opts.RedisTTL))
		}
		store, err := redis.NewFromURL(opts.RedisURL, opts.Output, ropts...)
		if err != nil {
			return nil, noop, err
		}
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, noop, &domain.ConnectionError{Endpoint: opts.RedisURL, Op: "ping", Err: err}
		}
		return store, func() { _ = store.Close() }, nil
	}
	if opts.Output == "" {
		return nil, noop, nil
	}
	return file.New(opts.Output), noop, nil
}

func artifactEntries(reply *domain.Reply, store ports.ArtifactStore, written []string, collector *metrics.Collector) []tui.ArtifactEntry {
	done := make(map[string]bool, len(written))
	for _, name := range written {
		done[name] = true
	}

	var entries []tui.ArtifactEntry
	for _, kind := range domain.ArtifactKinds {
		data, ok := reply.Artifact(kind)
		if !ok || !done[kind.Suffix()] {
			continue
		}
		collector.ArtifactWritten(kind)
		entries = append(entries, tui.ArtifactEntry{
			Kind: kind,
			Name: location(store, kind.Suffix()),
			Size: len(data),
		})
	}
	return entries
}

func location(store ports.ArtifactStore, name string) string {
	switch s := store.(type) {
	case *file.Store:
		return s.Path(name)
	case *redis.Store:
		return s.Key(name)
	default:
		return name
	}
}
