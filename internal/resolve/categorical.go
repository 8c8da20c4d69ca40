package resolve

import (
	"strings"

	"matchmill/internal/sample"
	"matchmill/internal/textutil"
	"matchmill/internal/vote"
)

// Vote is the outcome of a categorical resolution.
type Vote struct {
	Value         string
	Count         int
	RunnerUp      string
	RunnerUpCount int
	// Observations is the number of texts considered, matched or not.
	Observations int
	Ambiguous    bool
}

// Categorical resolves a single value from many noisy text observations.
type Categorical struct {
	Vocabulary textutil.Vocabulary
	Threshold  float64
	Margin     float64
	// Window keeps only the most recent observations when positive.
	Window int
}

// Resolve fuzzy-matches each observation onto the vocabulary and returns the
// most common canonical value. ok is false when nothing matched.
func (c Categorical) Resolve(observations []string) (Vote, bool) {
	if c.Window > 0 && len(observations) > c.Window {
		observations = observations[len(observations)-c.Window:]
	}
	tally := vote.New[string]()
	for _, text := range observations {
		if name, _, ok := c.Vocabulary.BestMatch(text, c.Threshold); ok {
			tally.Add(name)
		}
	}
	top := tally.MostCommon(2)
	result := Vote{Observations: len(observations)}
	if len(top) == 0 {
		return result, false
	}
	result.Value = top[0].Value
	result.Count = top[0].Count
	if len(top) > 1 {
		result.RunnerUp = top[1].Value
		result.RunnerUpCount = top[1].Count
		result.Ambiguous = float64(top[1].Count) > c.Margin*float64(top[0].Count)
	}
	return result, true
}

// screenTexts collects one text per sample from the agent select screen,
// falling back to the postgame screen.
func screenTexts(window []sample.Sample, pick func(sample.ScreenText) string) []string {
	var out []string
	for _, s := range window {
		var text string
		if s.AgentSelect != nil {
			text = pick(*s.AgentSelect)
		}
		if strings.TrimSpace(text) == "" && s.Postgame != nil {
			text = pick(*s.Postgame)
		}
		if strings.TrimSpace(text) != "" {
			out = append(out, text)
		}
	}
	return out
}

func mapTexts(window []sample.Sample) []string {
	return screenTexts(window, func(t sample.ScreenText) string { return t.Map })
}

func modeTexts(window []sample.Sample) []string {
	return screenTexts(window, func(t sample.ScreenText) string { return t.GameMode })
}
