package risk

import "math"

// Risk-level weights for the 0-100 automation score.
const (
	weightHigh     = 1.0
	weightModerate = 0.6
	weightLow      = 0.3
	weightUnknown  = 0.5
)

// Score maps evidence to an integer automation-risk score in [0,100]. It is
// pure: identical input always yields an identical result.
//
// Each task fact contributes hours × weight, where hours defaults to 1 when
// the fact carries none (facts only carry hours after the orchestrator joins
// the user's task-hours map onto them). The score is the weighted average,
// rounded; no task facts means no signal, which scores 0.
func Score(ev *Evidence) int {
	if ev == nil || len(ev.TaskFacts) == 0 {
		return 0
	}
	var weighted, total float64
	for _, f := range ev.TaskFacts {
		hours := f.Hours
		if hours <= 0 {
			hours = 1
		}
		weight := weightUnknown
		switch f.RiskLevel {
		case LevelHigh:
			weight = weightHigh
		case LevelModerate:
			weight = weightModerate
		case LevelLow:
			weight = weightLow
		}
		weighted += hours * weight
		total += hours
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * weighted / total))
}
