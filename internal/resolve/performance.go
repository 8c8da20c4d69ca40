package resolve

import "matchmill/internal/game"

// applyPerformance fills per-player stats from the attributed kills.
func applyPerformance(teams *game.Teams, rounds []game.Round) {
	for _, round := range rounds {
		for i, kill := range round.Kills {
			first := i == 0
			teams.Update(kill.Killer, func(p *game.Player) {
				p.Stats.Kills++
				if first {
					p.Stats.FirstKills++
				}
			})
			teams.Update(kill.Victim, func(p *game.Player) {
				p.Stats.Deaths++
				if first {
					p.Stats.FirstDeaths++
				}
			})
		}
	}
}

// outcome derives the score and overall result from round outcomes.
func outcome(rounds []game.Round) (*bool, *game.Score) {
	var score *game.Score
	for _, r := range rounds {
		if r.Won == nil {
			continue
		}
		if score == nil {
			score = &game.Score{}
		}
		if *r.Won {
			score.Won++
		} else {
			score.Lost++
		}
	}
	if last := rounds[len(rounds)-1].Won; last != nil {
		won := *last
		return &won, score
	}
	if score != nil {
		won := score.Won > score.Lost
		return &won, score
	}
	return nil, nil
}
