// Package scanner runs the pool polling loop: scan, report, wait, repeat.
package scanner

import (
	"context"
	"log/slog"
	"time"

	"github.com/brojonat/poolwatch/service/config"
	"github.com/brojonat/poolwatch/service/metrics"
	"github.com/brojonat/poolwatch/service/solana"
	solanago "github.com/gagliardetto/solana-go"
)

// PoolSource returns the pools currently matching the scan filters.
type PoolSource interface {
	ScanPools(ctx context.Context, program solanago.PublicKey) ([]*solana.Pool, error)
}

// Reporter renders scan results for the operator.
type Reporter interface {
	Banner()
	Found(pools []*solana.Pool)
	Error(err error)
}

// WaitFunc blocks for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Scanner polls a PoolSource at a fixed interval.
type Scanner struct {
	program  solanago.PublicKey
	interval time.Duration
	source   PoolSource
	reporter Reporter
	wait     WaitFunc
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// New creates a Scanner for cfg.ProgramID polling every cfg.PollInterval.
// If m is nil, no metrics will be recorded.
func New(cfg *config.Config, source PoolSource, reporter Reporter, m *metrics.Metrics, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		program:  cfg.ProgramID,
		interval: cfg.PollInterval,
		source:   source,
		reporter: reporter,
		wait:     Sleep,
		metrics:  m,
		logger:   logger.With("component", "pool_scanner"),
	}
}

// WithWait replaces the wait between iterations. Intended for tests.
func (s *Scanner) WithWait(wait WaitFunc) *Scanner {
	s.wait = wait
	return s
}

// Run prints the banner and polls until ctx is cancelled.
// Each iteration completes before the wait starts, and the wait is applied
// after both successful and failed scans. Scan errors never stop the loop.
func (s *Scanner) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "pool scanner started",
		"program", s.program.String(),
		"interval", s.interval,
	)
	s.reporter.Banner()

	for {
		if err := s.Poll(ctx); err != nil {
			s.logger.InfoContext(ctx, "pool scanner stopped", "reason", err)
			return err
		}
		if err := s.wait(ctx, s.interval); err != nil {
			s.logger.InfoContext(ctx, "pool scanner stopped", "reason", err)
			return err
		}
	}
}

// Poll runs a single scan and reports the result. It only returns an error
// when ctx is done; scan failures are reported and swallowed.
func (s *Scanner) Poll(ctx context.Context) error {
	start := time.Now()
	if s.metrics != nil {
		defer metrics.Timer(start, s.metrics.RecordScanDuration)()
	}

	pools, err := s.source.ScanPools(ctx, s.program)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if s.metrics != nil {
		s.metrics.RecordScan(err, len(pools), start)
	}

	if err != nil {
		s.logger.WarnContext(ctx, "pool scan failed, waiting for next poll",
			"class", solana.ClassifyError(err),
			"error", err,
		)
		s.reporter.Error(err)
		return nil
	}

	s.logger.DebugContext(ctx, "pool scan complete",
		"count", len(pools),
		"duration_seconds", time.Since(start).Seconds(),
	)
	s.reporter.Found(pools)
	return nil
}

// Sleep waits for d, returning early with ctx.Err() if ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
