// Package daemon wires the ledger, its event sinks and the HTTP server
// into a running process.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/brewpoint/brewpoint/internal/api"
	"github.com/brewpoint/brewpoint/internal/app/ledger"
	"github.com/brewpoint/brewpoint/internal/infra/observability"
	"github.com/brewpoint/brewpoint/internal/infra/sqlite"
)

const shutdownTimeout = 5 * time.Second

// Option customizes a Daemon.
type Option func(*Daemon)

// WithLogger sets the process logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Daemon) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithRegistry registers metrics on reg instead of the default registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(d *Daemon) {
		d.registerer = reg
		d.gatherer = reg
	}
}

// WithVersion sets the version reported by the API.
func WithVersion(v string) Option {
	return func(d *Daemon) { d.version = v }
}

// Daemon is one ledger session served over HTTP.
type Daemon struct {
	cfg        Config
	logger     *zap.Logger
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
	version    string

	Ledger  *ledger.Ledger
	Metrics *observability.Metrics
	Archive *sqlite.Archive // nil unless [archive].enabled
	Hub     *api.ActivityHub
	server  *api.Server
}

// New builds every component from cfg. Call Close when done.
func New(cfg Config, opts ...Option) (*Daemon, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Daemon{
		cfg:        cfg,
		logger:     zap.NewNop(),
		registerer: prometheus.DefaultRegisterer,
		gatherer:   prometheus.DefaultGatherer,
		version:    "dev",
	}
	for _, opt := range opts {
		opt(d)
	}

	lcfg, err := cfg.LedgerConfig()
	if err != nil {
		return nil, err
	}
	d.Ledger = ledger.New(lcfg, ledger.WithLogger(d.logger))

	if cfg.API.Metrics {
		d.Metrics = observability.NewMetrics(d.registerer)
		d.Metrics.SetBalance(d.Ledger.Balance())
		d.Ledger.AddSink(d.Metrics)
	}

	if cfg.Archive.Enabled {
		d.Archive, err = sqlite.Open(cfg.Archive.Path, sqlite.WithLogger(d.logger))
		if err != nil {
			return nil, fmt.Errorf("receipt archive: %w", err)
		}
		d.Ledger.AddSink(d.Archive)
	}

	d.server = api.NewServer(d.Ledger, d.logger)
	d.server.SetVersion(d.version)
	d.server.SetRequestTimeout(cfg.API.Timeout())
	if cfg.API.Metrics {
		d.server.EnableMetrics(d.gatherer)
	}
	if cfg.API.LiveFeed {
		d.Hub = api.NewActivityHub()
		d.Ledger.AddSink(d.Hub)
		d.server.SetActivityHub(d.Hub)
	}
	return d, nil
}

// Handler returns the HTTP handler.
func (d *Daemon) Handler() http.Handler {
	return d.server.Handler()
}

// Serve listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (d *Daemon) Serve(ctx context.Context) error {
	// Cancelled when shutdown starts so open SSE streams end.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	srv := &http.Server{
		Addr:              d.cfg.Addr(),
		Handler:           d.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelBase)

	errCh := make(chan error, 1)
	go func() {
		d.logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("version", d.version),
			zap.Bool("archive", d.Archive != nil),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	d.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the archive and flushes the logger.
func (d *Daemon) Close() error {
	var err error
	if d.Archive != nil {
		err = d.Archive.Close()
	}
	d.logger.Sync()
	return err
}
