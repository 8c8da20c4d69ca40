package resolve

import (
	"fmt"
	"log/slog"

	"matchmill/internal/game"
	"matchmill/internal/logging"
	"matchmill/internal/sample"
)

// Resolver builds matches from sample windows. It holds no per-window state
// and may be shared.
type Resolver struct {
	opts   Options
	maps   Categorical
	modes  Categorical
	logger *slog.Logger
}

// New constructs a Resolver. Zero-valued options fall back to defaults.
func New(opts Options, logger *slog.Logger) *Resolver {
	opts = opts.withDefaults()
	return &Resolver{
		opts: opts,
		maps: Categorical{
			Vocabulary: game.MapVocabulary(opts.Maps),
			Threshold:  opts.SimilarityThreshold,
			Margin:     opts.AmbiguityMargin,
		},
		modes: Categorical{
			Vocabulary: game.ModeVocabulary(opts.Modes),
			Threshold:  opts.SimilarityThreshold,
			Margin:     opts.AmbiguityMargin,
			Window:     opts.ModeWindow,
		},
		logger: logging.NewComponentLogger(logger, "resolver"),
	}
}

// Resolve reconstructs the match recorded in window. key is copied onto the
// match unchanged.
func (r *Resolver) Resolve(key string, window []sample.Sample) (*game.Match, error) {
	if len(window) == 0 {
		return nil, ErrEmptyWindow
	}
	logger := r.logger
	if key != "" {
		logger = logger.With(logging.MatchKey(key))
	}
	origin := window[0].Timestamp
	logMakeup(logger, window)

	match := &game.Match{
		Key:         key,
		Timestamp:   origin,
		SampleCount: len(window),
		Version:     game.Version,
	}

	mapVote, err := r.categorical(logger, "map", r.maps, mapTexts(window), ErrNoMap)
	if err != nil {
		return nil, err
	}
	match.Map = mapVote.Value
	if mapVote.Ambiguous {
		match.Warnings = append(match.Warnings, EventCategoricalAmbiguous+": map")
	}

	modeVote, err := r.categorical(logger, "game_mode", r.modes, modeTexts(window), ErrNoMode)
	if err != nil {
		return nil, err
	}
	match.GameMode = modeVote.Value
	if modeVote.Ambiguous {
		match.Warnings = append(match.Warnings, EventCategoricalAmbiguous+": game_mode")
	}

	rounds := resolveRounds(window, origin, r.opts.RoundRestartGap, logger)
	if len(rounds) == 0 {
		return nil, fmt.Errorf("%w (%d round start markers)", ErrNoRounds, sample.Makeup(window)[sample.FieldRoundStart])
	}
	match.Duration = rounds[len(rounds)-1].End

	teams, err := resolveTeams(window, r.opts.TeamSize, logger)
	if err != nil {
		return nil, err
	}

	lookup := newRoster(teams, r.opts.NameSimilarityThreshold)
	for i := range rounds {
		kills, warnings := resolveKills(window, origin, rounds[i], lookup, r.opts.KillMergeWindow, logger)
		rounds[i].Kills = kills
		match.Warnings = append(match.Warnings, warnings...)
	}
	applyPerformance(&teams, rounds)

	match.Rounds = rounds
	match.Teams = teams
	match.Won, match.Score = outcome(rounds)
	match.SeasonModeID = game.SeasonModeID(match.GameMode)
	match.GameVersion = game.VersionAt(game.TimeFromSeconds(origin))

	if err := match.Validate(); err != nil {
		return nil, err
	}

	attrs := []logging.Attr{
		logging.String("map", match.Map),
		logging.String("game_mode", match.GameMode),
		logging.Int("rounds", len(match.Rounds)),
		logging.Float64("duration", match.Duration),
		logging.Int("kills", len(match.Kills())),
		logging.String("game_version", match.GameVersion),
		logging.Int("warnings", len(match.Warnings)),
	}
	if match.Score != nil {
		attrs = append(attrs, logging.String("score", match.Score.String()))
	}
	logger.Info("match resolved", logging.Args(attrs...)...)
	return match, nil
}

func (r *Resolver) categorical(logger *slog.Logger, decision string, c Categorical, texts []string, fail error) (Vote, error) {
	v, ok := c.Resolve(texts)
	if !ok {
		logger.Info("categorical decision",
			logging.Args(append(logging.DecisionAttrs(decision, "unresolved", "no observation matched vocabulary"),
				logging.Int("observations", v.Observations),
			)...)...,
		)
		return v, fmt.Errorf("%w (%d observations)", fail, v.Observations)
	}
	logger.Info("categorical decision",
		logging.Args(append(logging.DecisionAttrs(decision, v.Value, "majority vote"),
			logging.Int("votes", v.Count),
			logging.Int("observations", v.Observations),
		)...)...,
	)
	if v.Ambiguous {
		logging.WarnWithContext(logger, "categorical vote ambiguous", EventCategoricalAmbiguous,
			logging.String(logging.FieldDecisionType, decision),
			logging.String("value", v.Value),
			logging.Int("votes", v.Count),
			logging.String("runner_up", v.RunnerUp),
			logging.Int("runner_up_votes", v.RunnerUpCount),
			logging.String(logging.FieldErrorHint, "recognizer output disagrees; verify the resolved value"),
		)
	}
	return v, nil
}

func logMakeup(logger *slog.Logger, window []sample.Sample) {
	counts := sample.Makeup(window)
	attrs := make([]logging.Attr, 0, len(sample.AllFields)+1)
	attrs = append(attrs, logging.Int("samples", len(window)))
	for _, name := range sample.AllFields {
		attrs = append(attrs, logging.Int(string(name), counts[name]))
	}
	logger.Info("sample makeup", logging.Args(attrs...)...)
}
