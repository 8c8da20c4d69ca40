package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"matchmill/internal/game"
	"matchmill/internal/matchstore"
)

const startedLayout = "2006-01-02 15:04"

func renderMatchTable(matches []*game.Match) string {
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{
			m.Key,
			m.Map,
			m.GameMode,
			strconv.Itoa(len(m.Rounds)),
			scoreText(m.Score),
			resultText(m.Won),
			formatSeconds(m.Duration),
			strconv.Itoa(len(m.Warnings)),
		})
	}
	return renderTable(
		[]string{"Key", "Map", "Mode", "Rounds", "Score", "Result", "Duration", "Warnings"},
		rows,
		rightAligned(8, 3, 6, 7),
	)
}

func renderRecordTable(records []matchstore.Record) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Key,
			game.TimeFromSeconds(r.StartedAt).Format(startedLayout),
			r.Map,
			r.GameMode,
			strconv.Itoa(r.Rounds),
			scoreText(r.Score),
			resultText(r.Won),
			r.GameVersion,
		})
	}
	return renderTable(
		[]string{"Key", "Started (UTC)", "Map", "Mode", "Rounds", "Score", "Result", "Version"},
		rows,
		rightAligned(8, 4),
	)
}

// renderMatch writes the human summary of one match.
func renderMatch(out io.Writer, m *game.Match) {
	fmt.Fprintf(out, "Match %s\n", m.Key)
	fields := [][2]string{
		{"Map", m.Map},
		{"Mode", m.GameMode},
		{"Started", game.TimeFromSeconds(m.Timestamp).Format(time.DateTime) + " UTC"},
		{"Duration", formatSeconds(m.Duration)},
		{"Result", resultWithScore(m.Won, m.Score)},
		{"Game version", m.GameVersion},
		{"Samples", strconv.Itoa(m.SampleCount)},
		{"Engine", m.Version},
	}
	for _, f := range fields {
		fmt.Fprintf(out, "  %-13s %s\n", f[0]+":", f[1])
	}

	roundRows := make([][]string, 0, len(m.Rounds))
	for _, r := range m.Rounds {
		roundRows = append(roundRows, []string{
			strconv.Itoa(r.Index + 1),
			formatSeconds(r.Start),
			formatSeconds(r.End),
			resultText(r.Won),
			strconv.Itoa(len(r.Kills)),
		})
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable([]string{"Round", "Start", "End", "Result", "Kills"}, roundRows, rightAligned(5, 0, 1, 2, 4)))

	playerRows := make([][]string, 0, len(m.Teams.Friendly)+len(m.Teams.Enemy))
	for _, p := range m.Teams.All() {
		name := p.Name
		if !p.Resolved() {
			name = "(unknown)"
		}
		playerRows = append(playerRows, []string{
			string(p.Side),
			strconv.Itoa(p.Slot),
			name,
			strconv.Itoa(p.Stats.Kills),
			strconv.Itoa(p.Stats.Deaths),
			strconv.Itoa(p.Stats.FirstKills),
			strconv.Itoa(p.Stats.FirstDeaths),
		})
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable([]string{"Side", "Slot", "Name", "K", "D", "FK", "FD"}, playerRows, rightAligned(7, 1, 3, 4, 5, 6)))

	if len(m.Warnings) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Warnings:")
		for _, w := range m.Warnings {
			fmt.Fprintf(out, "  - %s\n", w)
		}
	}
}

func resultText(won *bool) string {
	switch {
	case won == nil:
		return "-"
	case *won:
		return "win"
	default:
		return "loss"
	}
}

func scoreText(score *game.Score) string {
	if score == nil {
		return "-"
	}
	return score.String()
}

func resultWithScore(won *bool, score *game.Score) string {
	result := resultText(won)
	if score == nil {
		return result
	}
	return fmt.Sprintf("%s (%s)", result, score.String())
}

// formatSeconds renders stream seconds as a compact duration, e.g. "1m20s".
func formatSeconds(seconds float64) string {
	text := time.Duration(seconds * float64(time.Second)).Round(time.Second).String()
	if strings.HasSuffix(text, "m0s") {
		text = strings.TrimSuffix(text, "0s")
	}
	return text
}
