package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/seqkit/config"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/observability"
	"github.com/kbukum/seqkit/seq"
	"github.com/kbukum/seqkit/version"
)

// App holds the ambient stack of one command invocation.
type App struct {
	Name    string
	Version string
	Cfg     *config.Config
	Logger  *logger.Logger
	// Metrics is nil unless observability is enabled.
	Metrics *observability.Metrics

	gracefulTimeout time.Duration
	onStop          []Hook
}

// New loads the configuration of name, initializes logging and, when
// enabled, tracing and metrics export.
func New(ctx context.Context, name string, opts ...Option) (*App, error) {
	o := resolveOptions(opts)

	cfg, err := config.Load(name, o.loader...)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return NewWithConfig(ctx, cfg, opts...)
}

// NewWithConfig builds an App from an already loaded configuration.
func NewWithConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := resolveOptions(opts)

	app := &App{
		Name:            cfg.Name,
		Version:         cfg.Version,
		Cfg:             cfg,
		gracefulTimeout: 15 * time.Second,
	}
	if o.version != "" {
		app.Version = o.version
	} else if v := version.Short(); v != "dev" {
		app.Version = v
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(cfg.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	shutdown, err := observability.Init(ctx, observability.ServiceInfo{
		Name:        app.Name,
		Version:     app.Version,
		Environment: cfg.Environment,
	}, cfg.Observability)
	if err != nil {
		return nil, fmt.Errorf("initializing observability: %w", err)
	}
	app.OnStop(shutdown)

	if cfg.Observability.Enabled {
		app.Metrics, err = observability.NewMetrics(observability.Meter(app.Name))
		if err != nil {
			return nil, fmt.Errorf("creating metrics: %w", err)
		}
	}
	return app, nil
}

// Instrument traces s under name when observability is enabled and returns
// it unchanged otherwise.
func Instrument[T any](a *App, s *seq.Seq[T], name string) *seq.Seq[T] {
	if !a.Cfg.Observability.Enabled {
		return s
	}
	return observability.Instrument(s, name, a.Metrics)
}

// RunTask executes a finite task. The task context carries the configured
// buffer limits and is canceled on SIGINT or SIGTERM. Stop hooks run when
// the task returns; a task error wins over a hook error.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	start := time.Now()
	a.Logger.Info("starting", logger.Fields(
		"name", a.Name,
		"version", a.Version,
		logger.FieldLimit, a.Cfg.Limits.MaxBuffer,
	))

	taskCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	taskCtx = a.Cfg.Limits.Context(taskCtx)

	taskErr := task(taskCtx)
	if taskErr != nil {
		a.Logger.WithError(taskErr).Error("task failed")
	}

	stopErr := a.stop()
	a.Logger.Debug("finished", logger.DurationFields(a.Name, time.Since(start)))
	if taskErr != nil {
		return taskErr
	}
	return stopErr
}

// Shutdown runs the stop hooks. Use when managing your own lifecycle.
func (a *App) Shutdown() error {
	return a.stop()
}

func (a *App) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	hooks := a.onStop
	a.onStop = nil
	if err := runHooks(ctx, hooks); err != nil {
		a.Logger.WithError(err).Error("shutdown completed with errors")
		return err
	}
	return nil
}
