package resolve

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"matchmill/internal/game"
	"matchmill/internal/logging"
	"matchmill/internal/sample"
	"matchmill/internal/vote"
)

type killPair struct {
	killer game.PlayerID
	victim game.PlayerID
}

type rawPair struct {
	killer string
	victim string
}

type killSighting struct {
	pair    killPair
	first   float64
	last    float64
	weapons *vote.Tally[string]
}

// resolveKills attributes the kill feed rows seen during round. It returns
// the kills and one warning string per distinct unattributable row.
func resolveKills(window []sample.Sample, origin float64, round game.Round, r roster, mergeWindow float64, logger *slog.Logger) ([]game.Kill, []string) {
	var sightings []*killSighting
	latest := make(map[killPair]*killSighting)
	warned := make(map[rawPair]struct{})
	var warnings []string
	var boundary []sample.KillEntry

	for _, s := range window {
		if s.KillFeed == nil {
			continue
		}
		t := s.Timestamp - origin
		if t == round.End {
			boundary = append(boundary, s.KillFeed.Entries...)
		}
		if t < round.Start || t >= round.End {
			continue
		}
		for _, entry := range s.KillFeed.Entries {
			killer, killerOK := r.Lookup(entry.Killer)
			victim, victimOK := r.Lookup(entry.Victim)
			if !killerOK || !victimOK {
				raw := rawPair{killer: entry.Killer, victim: entry.Victim}
				if _, seen := warned[raw]; seen {
					continue
				}
				warned[raw] = struct{}{}
				logging.WarnWithContext(logger, "unattributable kill dropped", EventUnattributableKill,
					logging.RoundIndex(round.Index),
					logging.StreamTime(t),
					logging.String("raw_killer", entry.Killer),
					logging.String("raw_victim", entry.Victim),
					logging.Bool("killer_resolved", killerOK),
					logging.Bool("victim_resolved", victimOK),
					logging.String(logging.FieldErrorHint, "kill feed name did not match any roster player"),
					logging.String(logging.FieldImpact, "kill omitted from match"),
				)
				warnings = append(warnings, fmt.Sprintf("%s: round %d %s -> %s", EventUnattributableKill, round.Index, entry.Killer, entry.Victim))
				continue
			}

			pair := killPair{killer: killer, victim: victim}
			if prev, ok := latest[pair]; ok && t-prev.last <= mergeWindow {
				prev.last = t
				addWeapon(prev.weapons, entry.Weapon)
				continue
			}
			sighting := &killSighting{pair: pair, first: t, last: t, weapons: vote.New[string]()}
			addWeapon(sighting.weapons, entry.Weapon)
			sightings = append(sightings, sighting)
			latest[pair] = sighting
		}
	}

	logBoundaryKills(boundary, round, r, latest, mergeWindow, logger)

	kills := make([]game.Kill, 0, len(sightings))
	for _, sighting := range sightings {
		kill := game.Kill{
			RoundIndex: round.Index,
			Timestamp:  sighting.first,
			Killer:     sighting.pair.killer,
			Victim:     sighting.pair.victim,
		}
		if weapon, ok := sighting.weapons.Winner(); ok {
			kill.Weapon = weapon.Value
		}
		kills = append(kills, kill)
	}
	slices.SortStableFunc(kills, func(a, b game.Kill) int {
		switch {
		case a.Timestamp < b.Timestamp:
			return -1
		case a.Timestamp > b.Timestamp:
			return 1
		default:
			return 0
		}
	})
	return kills, warnings
}

// logBoundaryKills reports rows on the round's closing sample that are not
// continuations of a kill already counted in the round.
func logBoundaryKills(entries []sample.KillEntry, round game.Round, r roster, latest map[killPair]*killSighting, mergeWindow float64, logger *slog.Logger) {
	for _, entry := range entries {
		killer, killerOK := r.Lookup(entry.Killer)
		victim, victimOK := r.Lookup(entry.Victim)
		if killerOK && victimOK {
			if prev, ok := latest[killPair{killer: killer, victim: victim}]; ok && round.End-prev.last <= mergeWindow {
				continue
			}
		}
		logger.Debug("kill feed row on round end excluded from round",
			logging.String(logging.FieldEventType, EventBoundaryKill),
			logging.RoundIndex(round.Index),
			logging.StreamTime(round.End),
			logging.String("raw_killer", entry.Killer),
			logging.String("raw_victim", entry.Victim),
		)
	}
}

func addWeapon(tally *vote.Tally[string], weapon string) {
	if weapon = strings.TrimSpace(weapon); weapon != "" {
		tally.Add(weapon)
	}
}
