package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"matchmill/internal/config"
	"matchmill/internal/game"
	"matchmill/internal/logging"
	"matchmill/internal/resolve"
	"matchmill/internal/sample"
	"matchmill/internal/segment"
)

// Store persists completed matches.
type Store interface {
	Save(ctx context.Context, m *game.Match) error
}

// Publisher forwards completed matches downstream.
type Publisher interface {
	Publish(ctx context.Context, m *game.Match) error
}

// Notifier reports match lifecycle events.
type Notifier interface {
	NotifyMatchStarted(ctx context.Context, key string) error
	NotifyMatchCompleted(ctx context.Context, m *game.Match) error
	NotifyMatchFailed(ctx context.Context, key, reason string, err error) error
	NotifyRunCompleted(ctx context.Context, matches, failed int, duration time.Duration) error
}

// Metrics records pipeline activity.
type Metrics interface {
	SampleConsumed()
	MatchStarted()
	MatchEmitted(m *game.Match, shutdown bool)
	WindowRejected()
	WindowFailed(reason string)
	SinkFailed(sink string)
}

// Dependencies holds the optional sinks. Nil fields are skipped.
type Dependencies struct {
	Store     Store
	Publisher Publisher
	Notifier  Notifier
	Metrics   Metrics
}

// Summary reports what a run produced.
type Summary struct {
	Samples  int
	Matches  []*game.Match
	Failures []error
	Rejected int
	Elapsed  time.Duration
}

// Runner drives one sample stream to completion.
type Runner struct {
	cfg    *config.Config
	deps   Dependencies
	logger *slog.Logger
	now    func() time.Time
}

// New constructs a Runner.
func New(cfg *config.Config, deps Dependencies, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		deps:   deps,
		logger: logging.NewComponentLogger(logger, "pipeline"),
		now:    time.Now,
	}
}

// Run consumes src until EOF or cancellation, flushing any open match at the
// end. Window failures are collected in the summary; the returned error is
// reserved for source read failures and cancellation.
func (r *Runner) Run(ctx context.Context, src sample.Source) (Summary, error) {
	started := r.now()
	var summary Summary

	resolver := resolve.New(resolve.OptionsFromConfig(r.cfg), r.logger)
	var seg *segment.Segmenter
	seg = segment.New(resolver, segment.Options{
		RestartGrace: r.cfg.Segmenter.RestartGrace,
		MinSamples:   r.cfg.Segmenter.MinWindowSamples,
		KeyFunc:      KeyGenerator(r.cfg.Segmenter.KeyPrefix),
		KeepMatches:  r.cfg.Segmenter.KeepMatches,
		OnStarted: []func(){func() {
			r.onStarted(ctx, seg.CurrentKey())
		}},
		OnComplete: []func(*game.Match, bool){func(m *game.Match, shutdown bool) {
			summary.Matches = append(summary.Matches, m)
			r.onComplete(ctx, m, shutdown)
		}},
		OnRejected: []func(string, int){func(string, int) {
			summary.Rejected++
			if r.deps.Metrics != nil {
				r.deps.Metrics.WindowRejected()
			}
		}},
	}, r.logger)

	var runErr error
	for {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		s, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			runErr = err
			break
		}
		summary.Samples++
		if r.deps.Metrics != nil {
			r.deps.Metrics.SampleConsumed()
		}
		if err := seg.OnSample(s); err != nil {
			summary.Failures = append(summary.Failures, err)
			r.onFailure(ctx, err)
		}
	}

	if err := seg.Finish(); err != nil {
		summary.Failures = append(summary.Failures, err)
		r.onFailure(ctx, err)
	}

	summary.Elapsed = r.now().Sub(started)
	attrs := []logging.Attr{
		logging.Int("samples", summary.Samples),
		logging.Int("matches", len(summary.Matches)),
		logging.Int("failures", len(summary.Failures)),
		logging.Int("rejected", summary.Rejected),
		logging.Duration("elapsed", summary.Elapsed),
	}
	if last, ok := seg.LastSample(); ok {
		attrs = append(attrs, logging.Float64("last_timestamp", last.Timestamp))
	}
	r.logger.Info("sample stream finished", logging.Args(attrs...)...)

	if r.deps.Notifier != nil && (len(summary.Matches) > 0 || len(summary.Failures) > 0) {
		if err := r.deps.Notifier.NotifyRunCompleted(context.WithoutCancel(ctx), len(summary.Matches), len(summary.Failures), summary.Elapsed); err != nil {
			r.sinkFailed(ctx, "notify", "", err)
		}
	}
	return summary, runErr
}

func (r *Runner) onStarted(ctx context.Context, key string) {
	if r.deps.Metrics != nil {
		r.deps.Metrics.MatchStarted()
	}
	if r.deps.Notifier != nil {
		if err := r.deps.Notifier.NotifyMatchStarted(ctx, key); err != nil {
			r.sinkFailed(ctx, "notify", key, err)
		}
	}
}

func (r *Runner) onComplete(ctx context.Context, m *game.Match, shutdown bool) {
	ctx = logging.WithMatchKey(context.WithoutCancel(ctx), m.Key)
	if r.deps.Metrics != nil {
		r.deps.Metrics.MatchEmitted(m, shutdown)
	}
	if r.deps.Store != nil {
		if err := r.deps.Store.Save(ctx, m); err != nil {
			r.sinkFailed(ctx, "store", m.Key, err)
		}
	}
	if r.deps.Publisher != nil {
		if err := r.deps.Publisher.Publish(ctx, m); err != nil {
			r.sinkFailed(ctx, "publish", m.Key, err)
		}
	}
	if r.deps.Notifier != nil {
		if err := r.deps.Notifier.NotifyMatchCompleted(ctx, m); err != nil {
			r.sinkFailed(ctx, "notify", m.Key, err)
		}
	}
}

func (r *Runner) onFailure(ctx context.Context, err error) {
	reason := resolve.Reason(err)
	var key string
	attrs := []logging.Attr{
		logging.String("reason", reason),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "inspect the recognizer output for this window"),
	}
	var werr *segment.WindowError
	if errors.As(err, &werr) {
		key = werr.Key
		attrs = append(attrs,
			logging.MatchKey(werr.Key),
			logging.Int("samples", werr.Samples),
			logging.Float64("window_start", werr.Start),
			logging.Float64("window_end", werr.End),
			logging.Bool("shutdown", werr.Shutdown),
		)
	}
	logging.ErrorWithContext(r.logger, "match window could not be resolved", "window_failed", attrs...)

	if r.deps.Metrics != nil {
		r.deps.Metrics.WindowFailed(reason)
	}
	if r.deps.Notifier != nil {
		if nerr := r.deps.Notifier.NotifyMatchFailed(context.WithoutCancel(ctx), key, reason, err); nerr != nil {
			r.sinkFailed(ctx, "notify", key, nerr)
		}
	}
}

func (r *Runner) sinkFailed(ctx context.Context, sink, key string, err error) {
	logger := logging.WithContext(ctx, r.logger)
	attrs := []logging.Attr{
		logging.String("sink", sink),
		logging.Error(err),
		logging.String(logging.FieldImpact, "match was resolved but not delivered to "+sink),
	}
	if _, ok := logging.MatchKeyFromContext(ctx); !ok && key != "" {
		attrs = append(attrs, logging.MatchKey(key))
	}
	logging.WarnWithContext(logger, "match sink failed", "sink_failed", attrs...)
	if r.deps.Metrics != nil {
		r.deps.Metrics.SinkFailed(sink)
	}
}
