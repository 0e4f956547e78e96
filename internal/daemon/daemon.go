package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/motiva-learn/motiva/internal/api"
	"github.com/motiva-learn/motiva/internal/app/engagement"
	_ "github.com/motiva-learn/motiva/internal/infra/metrics" // Register Prometheus metrics
	"github.com/motiva-learn/motiva/internal/store"
)

// Daemon is the core Motiva runtime. It wires the in-memory store and
// every engine service together and serves them over HTTP. Gamification
// state is process-resident: it lives exactly as long as the daemon.
type Daemon struct {
	Config Config
	Store  *store.Memory
	Server *api.Server
	cancel context.CancelFunc

	Ledger       *engagement.Ledger
	Streaks      *engagement.Tracker
	Achievements *engagement.AchievementEngine
	Badges       *engagement.BadgeEngine
	Leaderboard  *engagement.LeaderboardBuilder
	Tiers        *engagement.TierCalculator
	Scorer       *engagement.Scorer
	Feed         *engagement.Feed
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg), nil
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) *Daemon {
	st := store.NewMemory()

	feedPolicy := engagement.DefaultFeedPolicy()
	if cfg.Feed.MaxPerUser > 0 {
		feedPolicy.MaxPerUser = cfg.Feed.MaxPerUser
	}
	if cfg.Feed.MaxPerDay > 0 {
		feedPolicy.MaxPerDay = cfg.Feed.MaxPerDay
	}
	feed := engagement.NewFeedWithPolicy(feedPolicy)

	achievements := engagement.NewAchievementEngine(st, feed)
	badges := engagement.NewBadgeEngine(st)
	leaderboard := engagement.NewLeaderboardBuilder(st, badges)

	d := &Daemon{
		Config:       cfg,
		Store:        st,
		Feed:         feed,
		Achievements: achievements,
		Badges:       badges,
		Leaderboard:  leaderboard,
		Ledger:       engagement.NewLedger(st, achievements, feed),
		Streaks:      engagement.NewTracker(st),
		Tiers:        engagement.NewTierCalculator(st),
		Scorer:       engagement.NewScorer(st, badges, leaderboard),
	}

	srv := api.NewServer(
		d.Ledger, d.Streaks, d.Achievements, d.Badges,
		d.Leaderboard, d.Tiers, d.Scorer, d.Feed,
	)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	d.Server = srv

	return d
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

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

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	fmt.Printf("Motiva serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close stops the daemon.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
}
