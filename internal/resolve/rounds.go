package resolve

import (
	"log/slog"

	"matchmill/internal/game"
	"matchmill/internal/logging"
	"matchmill/internal/sample"
	"matchmill/internal/vote"
)

// trailingPad is how far past its last activity a round left open at the end
// of the window extends, so the final active sample stays inside it.
const trailingPad = 1.0

type openRound struct {
	start      float64
	lastStart  float64
	lastActive float64
	// next is the first sample time after lastActive, when one was seen.
	next    float64
	hasNext bool
	end     float64
	votes   *vote.Tally[bool]
}

func newOpenRound(t float64) *openRound {
	return &openRound{start: t, lastStart: t, lastActive: t, votes: vote.New[bool]()}
}

func (r *openRound) touch(t float64) {
	r.lastActive = t
	r.hasNext = false
}

// unresolvedEnd is where a round closed without a result marker ends: at the
// first sample after its last activity, or trailingPad past it when the
// window has no later sample. Rounds with no activity beyond their start
// stay degenerate.
func (r *openRound) unresolvedEnd() float64 {
	switch {
	case r.hasNext:
		return r.next
	case r.lastActive > r.start:
		return r.lastActive + trailingPad
	default:
		return r.lastActive
	}
}

func (r *openRound) won() *bool {
	top := r.votes.MostCommon(2)
	if len(top) == 0 {
		return nil
	}
	if len(top) == 2 && top[0].Count == top[1].Count {
		return nil
	}
	won := top[0].Value
	return &won
}

type timeline struct {
	gap    float64
	logger *slog.Logger
	rounds []game.Round
	// open is the round in progress; closing is the last closed round, which
	// still collects outcome votes until the next round opens.
	open    *openRound
	closing *openRound
}

// resolveRounds infers rounds from start and result markers. Times are
// relative to origin.
func resolveRounds(window []sample.Sample, origin, gap float64, logger *slog.Logger) []game.Round {
	tl := &timeline{gap: gap, logger: logger}
	for _, s := range window {
		tl.observe(s, s.Timestamp-origin)
	}
	tl.flushClosing()
	if tl.open != nil {
		tl.open.end = tl.open.unresolvedEnd()
		tl.append(tl.open)
		tl.open = nil
	}
	return tl.rounds
}

func (tl *timeline) observe(s sample.Sample, t float64) {
	if tl.open != nil && !tl.open.hasNext && t > tl.open.lastActive {
		tl.open.next = t
		tl.open.hasNext = true
	}
	if s.RoundStart != nil {
		switch {
		case tl.open == nil:
			tl.flushClosing()
			tl.open = newOpenRound(t)
		case t-tl.open.lastStart <= tl.gap:
			tl.open.lastStart = t
			tl.open.touch(t)
		default:
			tl.logger.Debug("round start without result; closing previous round",
				logging.Float64("previous_start", tl.open.start),
				logging.StreamTime(t),
			)
			tl.open.end = tl.open.unresolvedEnd()
			tl.append(tl.open)
			tl.open = newOpenRound(t)
		}
	}
	if tl.open != nil && (s.Roster != nil || s.KillFeed != nil) {
		tl.open.touch(t)
	}
	if s.RoundResult != nil {
		target := tl.closing
		if tl.open != nil {
			tl.open.end = t
			tl.closing = tl.open
			tl.open = nil
			target = tl.closing
		}
		if target == nil {
			tl.logger.Debug("round result before any round start", logging.StreamTime(t))
			return
		}
		if s.RoundResult.Won != nil {
			target.votes.Add(*s.RoundResult.Won)
		}
	}
}

func (tl *timeline) flushClosing() {
	if tl.closing == nil {
		return
	}
	tl.append(tl.closing)
	tl.closing = nil
}

func (tl *timeline) append(r *openRound) {
	if r.end <= r.start {
		tl.logger.Debug("discarding degenerate round",
			logging.Float64("start", r.start),
			logging.Float64("end", r.end),
		)
		return
	}
	tl.rounds = append(tl.rounds, game.Round{
		Index: len(tl.rounds),
		Start: r.start,
		End:   r.end,
		Won:   r.won(),
		Kills: []game.Kill{},
	})
}
