package resolve

import "matchmill/internal/config"

// Options tunes consensus resolution.
type Options struct {
	// Maps and Modes override the built-in vocabularies when non-empty.
	Maps  []string
	Modes []string

	SimilarityThreshold     float64
	NameSimilarityThreshold float64
	// AmbiguityMargin flags a vote as ambiguous when the runner-up count
	// exceeds this fraction of the winner's count.
	AmbiguityMargin float64
	// ModeWindow limits mode resolution to the most recent observations.
	// Zero considers every observation.
	ModeWindow int
	TeamSize   int
	// RoundRestartGap is the longest gap between round start markers that
	// still belongs to the same round.
	RoundRestartGap float64
	// KillMergeWindow is the longest gap between sightings of one kill feed
	// row that still counts as the same kill.
	KillMergeWindow float64
}

// DefaultOptions returns options matching the default configuration.
func DefaultOptions() Options {
	cfg := config.Default()
	return OptionsFromConfig(&cfg)
}

// OptionsFromConfig extracts resolver options from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	r := cfg.Resolver
	return Options{
		Maps:                    r.Maps,
		Modes:                   r.Modes,
		SimilarityThreshold:     r.SimilarityThreshold,
		NameSimilarityThreshold: r.NameSimilarityThreshold,
		AmbiguityMargin:         r.AmbiguityMargin,
		ModeWindow:              r.ModeWindow,
		TeamSize:                r.TeamSize,
		RoundRestartGap:         r.RoundRestartGap,
		KillMergeWindow:         r.KillMergeWindow,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.SimilarityThreshold <= 0 {
		o.SimilarityThreshold = def.SimilarityThreshold
	}
	if o.NameSimilarityThreshold <= 0 {
		o.NameSimilarityThreshold = def.NameSimilarityThreshold
	}
	if o.AmbiguityMargin <= 0 {
		o.AmbiguityMargin = def.AmbiguityMargin
	}
	if o.ModeWindow < 0 {
		o.ModeWindow = 0
	}
	if o.TeamSize <= 0 {
		o.TeamSize = def.TeamSize
	}
	if o.RoundRestartGap <= 0 {
		o.RoundRestartGap = def.RoundRestartGap
	}
	if o.KillMergeWindow < 0 {
		o.KillMergeWindow = def.KillMergeWindow
	}
	return o
}
