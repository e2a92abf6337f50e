package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sundial-app/sundial/internal/api"
	"github.com/sundial-app/sundial/internal/app/checkin"
	"github.com/sundial-app/sundial/internal/app/engagement"
	"github.com/sundial-app/sundial/internal/app/insights"
	"github.com/sundial-app/sundial/internal/health"
	"github.com/sundial-app/sundial/internal/infra/logging"
	_ "github.com/sundial-app/sundial/internal/infra/metrics" // Register Prometheus metrics
	"github.com/sundial-app/sundial/internal/infra/reminder"
	"github.com/sundial-app/sundial/internal/infra/sqlite"
)

// Daemon is the core Sundial runtime. It wires together all services.
type Daemon struct {
	Config Config
	Log    *zap.Logger
	DB     *sqlite.DB
	Server *api.Server
	cancel context.CancelFunc

	Streaks   *engagement.StreakService
	Evaluator *engagement.Evaluator
	Notifier  *engagement.Notifier
	CheckIns  *checkin.Service
	Insights  *insights.Service
	Reminders *reminder.Scheduler
	Health    *health.Checker
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	log, err := logging.New(logging.Options{
		Level:     cfg.Logging.Level,
		File:      cfg.Logging.File,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	home := sundialHome()
	db, err := sqlite.Open(home)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &Daemon{
		Config: cfg,
		Log:    log,
		DB:     db,
	}

	// Engagement engine
	d.Streaks = engagement.NewStreakService(db)
	d.Evaluator = engagement.NewEvaluator(log)
	d.Notifier = engagement.NewNotifierWithPolicy(db, cfg.Notifications.Policy(), log)

	// Check-in pipeline and insights
	d.CheckIns = checkin.NewService(db, d.Streaks, d.Evaluator, d.Notifier, log)
	d.Insights = insights.NewService(db)

	// Daily reminder
	if cfg.Reminders.Enabled {
		d.Reminders = reminder.New(db, cfg.Reminders.Cron, log)
	}

	// Health checker
	d.Health = health.NewChecker(db, home)

	// API server
	srv := api.NewServer(db, d.CheckIns, d.Streaks, d.Evaluator, d.Notifier, d.Insights)
	srv.SetHealth(d.Health)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	d.Server = srv

	return d, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Health.Run(ctx)

	if d.Reminders != nil {
		if err := d.Reminders.Start(); err != nil {
			d.Log.Warn("reminder scheduler failed to start", zap.Error(err))
		}
	}

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if d.Reminders != nil {
			d.Reminders.Stop()
		}
		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
		_ = d.Log.Sync()
	}()

	fmt.Printf("Sundial serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.Reminders != nil {
		d.Reminders.Stop()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
	if d.Log != nil {
		_ = d.Log.Sync()
	}
}
