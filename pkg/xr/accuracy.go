package xr

// PredictionAccuracy holds accuracy metrics for a single settled prediction
type PredictionAccuracy struct {
	FixtureID           string  `json:"fixtureId"`
	HomeTeam            string  `json:"homeTeam"`
	AwayTeam            string  `json:"awayTeam"`
	ActualHomeGoals     int     `json:"actualHomeGoals"`
	ActualAwayGoals     int     `json:"actualAwayGoals"`
	PredictedHomeGoals  int     `json:"predictedHomeGoals"`
	PredictedAwayGoals  int     `json:"predictedAwayGoals"`
	ExactScoreCorrect   bool    `json:"exactScoreCorrect"`
	ResultCorrect       bool    `json:"resultCorrect"`
	GoalDifferenceError int     `json:"goalDifferenceError"`
	TotalGoalsError     int     `json:"totalGoalsError"`
	FavouredOutcomePct  float64 `json:"favouredOutcomePct"`
}

// AggregateAccuracy holds accuracy statistics across a batch of predictions
type AggregateAccuracy struct {
	TotalMatches           int     `json:"totalMatches"`
	ExactScoreAccuracy     float64 `json:"exactScoreAccuracy"` // percentage
	ResultAccuracy         float64 `json:"resultAccuracy"`     // percentage
	AverageGoalDiffError   float64 `json:"averageGoalDiffError"`
	AverageTotalGoalsError float64 `json:"averageTotalGoalsError"`
}

// EvaluatePredictionAccuracy scores one prediction against its actual
// result. Returns nil when the fixture has not been played or no
// scoreline was modeled for it.
func EvaluatePredictionAccuracy(p *Prediction) *PredictionAccuracy {
	if p.ActualHomeGoals == -1 || p.ActualAwayGoals == -1 {
		return nil
	}
	if p.MostLikelyHomeGoals == -1 || p.MostLikelyAwayGoals == -1 {
		return nil
	}

	acc := &PredictionAccuracy{
		FixtureID:          p.FixtureID,
		HomeTeam:           p.HomeTeamName,
		AwayTeam:           p.AwayTeamName,
		ActualHomeGoals:    p.ActualHomeGoals,
		ActualAwayGoals:    p.ActualAwayGoals,
		PredictedHomeGoals: p.MostLikelyHomeGoals,
		PredictedAwayGoals: p.MostLikelyAwayGoals,
	}

	acc.ExactScoreCorrect = acc.ActualHomeGoals == acc.PredictedHomeGoals &&
		acc.ActualAwayGoals == acc.PredictedAwayGoals

	actualResult := matchResult(acc.ActualHomeGoals, acc.ActualAwayGoals)
	predictedResult := matchResult(acc.PredictedHomeGoals, acc.PredictedAwayGoals)
	acc.ResultCorrect = actualResult == predictedResult

	actualGoalDiff := acc.ActualHomeGoals - acc.ActualAwayGoals
	predictedGoalDiff := acc.PredictedHomeGoals - acc.PredictedAwayGoals
	acc.GoalDifferenceError = absInt(actualGoalDiff - predictedGoalDiff)

	actualTotal := acc.ActualHomeGoals + acc.ActualAwayGoals
	predictedTotal := acc.PredictedHomeGoals + acc.PredictedAwayGoals
	acc.TotalGoalsError = absInt(actualTotal - predictedTotal)

	switch actualResult {
	case "H":
		acc.FavouredOutcomePct = p.HomeWinPct
	case "A":
		acc.FavouredOutcomePct = p.AwayWinPct
	default:
		acc.FavouredOutcomePct = p.DrawPct
	}

	return acc
}

// EvaluateAllPredictions scores every settled prediction in the batch.
// Returns nil when nothing is settled yet.
func EvaluateAllPredictions(predictions []*Prediction) *AggregateAccuracy {
	var accuracies []*PredictionAccuracy
	for _, p := range predictions {
		if acc := EvaluatePredictionAccuracy(p); acc != nil {
			accuracies = append(accuracies, acc)
		}
	}
	if len(accuracies) == 0 {
		return nil
	}

	aggregate := &AggregateAccuracy{
		TotalMatches: len(accuracies),
	}

	var exactScoreCount, resultCorrectCount int
	var totalGoalDiffError, totalGoalsError int
	for _, acc := range accuracies {
		if acc.ExactScoreCorrect {
			exactScoreCount++
		}
		if acc.ResultCorrect {
			resultCorrectCount++
		}
		totalGoalDiffError += acc.GoalDifferenceError
		totalGoalsError += acc.TotalGoalsError
	}

	aggregate.ExactScoreAccuracy = float64(exactScoreCount) / float64(aggregate.TotalMatches) * 100
	aggregate.ResultAccuracy = float64(resultCorrectCount) / float64(aggregate.TotalMatches) * 100
	aggregate.AverageGoalDiffError = float64(totalGoalDiffError) / float64(aggregate.TotalMatches)
	aggregate.AverageTotalGoalsError = float64(totalGoalsError) / float64(aggregate.TotalMatches)

	return aggregate
}

// matchResult returns "H" for home win, "D" for draw, "A" for away win
func matchResult(homeGoals, awayGoals int) string {
	if homeGoals > awayGoals {
		return "H"
	} else if homeGoals < awayGoals {
		return "A"
	}
	return "D"
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
