package segment

import (
	"fmt"
	"log/slog"

	"matchmill/internal/game"
	"matchmill/internal/logging"
	"matchmill/internal/sample"
)

// EventAnomalousRestart tags warnings for a start marker seen mid-match.
const EventAnomalousRestart = "anomalous_restart"

// Resolver turns a closed window into a match.
type Resolver interface {
	Resolve(key string, window []sample.Sample) (*game.Match, error)
}

// Options configures a Segmenter.
type Options struct {
	// RestartGrace is how long after a match's first sample a repeated start
	// marker is still treated as part of the same match.
	RestartGrace float64
	// MinSamples is the smallest window that is resolved. Smaller windows
	// are dropped as noise.
	MinSamples int
	// KeyFunc names a match from its start timestamp. Nil leaves keys empty.
	KeyFunc func(start float64) string
	// KeepMatches retains every emitted match for Matches.
	KeepMatches bool

	OnStarted  []func()
	OnComplete []func(m *game.Match, shutdown bool)
	// OnRejected observes windows dropped for having too few samples.
	OnRejected []func(key string, samples int)
}

const (
	defaultRestartGrace = 10.0
	minWindowSamples    = 3
)

// Segmenter tracks the match in progress.
type Segmenter struct {
	resolver Resolver
	opts     Options
	logger   *slog.Logger

	inProgress bool
	currentKey string
	buffered   []sample.Sample
	lastSample *sample.Sample
	matches    []*game.Match
}

// New constructs a Segmenter.
func New(resolver Resolver, opts Options, logger *slog.Logger) *Segmenter {
	if opts.RestartGrace <= 0 {
		opts.RestartGrace = defaultRestartGrace
	}
	if opts.MinSamples < minWindowSamples {
		opts.MinSamples = minWindowSamples
	}
	return &Segmenter{
		resolver: resolver,
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "segmenter"),
	}
}

// OnSample advances the state machine by one sample. A non-nil error is a
// *WindowError for a window that was closed by this sample and failed to
// resolve; the segmenter has already recovered and may be fed the next sample.
func (s *Segmenter) OnSample(smp sample.Sample) error {
	current := smp
	s.lastSample = &current

	var err error
	if smp.MatchStart != nil {
		if s.inProgress && smp.Timestamp-s.buffered[0].Timestamp > s.opts.RestartGrace {
			logging.WarnWithContext(s.logger, "match start seen mid-match; closing current match", EventAnomalousRestart,
				logging.MatchKey(s.currentKey),
				logging.Float64("match_start", s.buffered[0].Timestamp),
				logging.StreamTime(smp.Timestamp),
				logging.Int("buffered_samples", len(s.buffered)),
				logging.String(logging.FieldErrorHint, "the end-of-match screen was probably missed"),
				logging.String(logging.FieldImpact, "previous match closed at the restart"),
			)
			err = s.close(false)
		}
		if !s.inProgress {
			s.start(smp.Timestamp)
		}
	} else if smp.MatchEnd != nil && s.inProgress {
		return s.close(false)
	}

	if s.inProgress {
		s.buffered = append(s.buffered, smp)
	}
	return err
}

// Finish closes the match in progress, if any, as an end-of-stream shutdown.
func (s *Segmenter) Finish() error {
	if !s.inProgress {
		return nil
	}
	return s.close(true)
}

func (s *Segmenter) start(ts float64) {
	s.inProgress = true
	s.buffered = nil
	if s.opts.KeyFunc != nil {
		s.currentKey = s.opts.KeyFunc(ts)
	}
	s.logger.Info("match started",
		logging.MatchKey(s.currentKey),
		logging.StreamTime(ts),
	)
	for _, fn := range s.opts.OnStarted {
		fn()
	}
}

// close ends the match in progress. Short windows are dropped; everything
// else is resolved.
func (s *Segmenter) close(shutdown bool) error {
	if len(s.buffered) < s.opts.MinSamples {
		s.logger.Info("discarding short match window",
			logging.MatchKey(s.currentKey),
			logging.Int("samples", len(s.buffered)),
			logging.Int("min_samples", s.opts.MinSamples),
			logging.Bool("shutdown", shutdown),
		)
		key, samples := s.currentKey, len(s.buffered)
		s.reset()
		for _, fn := range s.opts.OnRejected {
			fn(key, samples)
		}
		return nil
	}
	return s.finalize(shutdown)
}

func (s *Segmenter) finalize(shutdown bool) error {
	if !s.inProgress || len(s.buffered) < s.opts.MinSamples {
		panic(fmt.Sprintf("segment: finalize with in_progress=%v and %d buffered samples", s.inProgress, len(s.buffered)))
	}
	key := s.currentKey
	window := s.buffered
	defer s.reset()

	match, err := s.resolver.Resolve(key, window)
	if err != nil {
		return &WindowError{
			Key:      key,
			Start:    window[0].Timestamp,
			End:      window[len(window)-1].Timestamp,
			Samples:  len(window),
			Shutdown: shutdown,
			Err:      err,
		}
	}

	s.logger.Info("match complete",
		logging.MatchKey(key),
		logging.Int("samples", len(window)),
		logging.Bool("shutdown", shutdown),
	)
	if s.opts.KeepMatches {
		s.matches = append(s.matches, match)
	}
	for _, fn := range s.opts.OnComplete {
		fn(match, shutdown)
	}
	return nil
}

func (s *Segmenter) reset() {
	s.inProgress = false
	s.currentKey = ""
	s.buffered = nil
}

// InProgress reports whether a match window is open.
func (s *Segmenter) InProgress() bool {
	return s.inProgress
}

// Pending returns the number of samples buffered for the open match.
func (s *Segmenter) Pending() int {
	return len(s.buffered)
}

// CurrentKey returns the key of the open match, or "".
func (s *Segmenter) CurrentKey() string {
	return s.currentKey
}

// Matches returns the matches emitted so far when KeepMatches is set.
func (s *Segmenter) Matches() []*game.Match {
	return s.matches
}

// LastSample returns the most recent sample seen, if any.
func (s *Segmenter) LastSample() (sample.Sample, bool) {
	if s.lastSample == nil {
		return sample.Sample{}, false
	}
	return *s.lastSample, true
}
