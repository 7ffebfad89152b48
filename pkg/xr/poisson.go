package xr

import (
	"math"
	"sort"
)

// ScorelineProb is one cell of the scoreline grid reported to callers,
// with the probability as a percentage
type ScorelineProb struct {
	HomeGoals   int     `json:"homeGoals"`
	AwayGoals   int     `json:"awayGoals"`
	Probability float64 `json:"probability"`
}

// Distribution is the full outcome model for one xG pair: the scoreline
// grid and everything derived from it
type Distribution struct {
	Grid [][]float64 `json:"-"`

	HomeWinPct float64 `json:"homeWinPct"`
	DrawPct    float64 `json:"drawPct"`
	AwayWinPct float64 `json:"awayWinPct"`

	XPtsHome float64 `json:"xptsHome"`
	XPtsAway float64 `json:"xptsAway"`

	MostLikelyHomeGoals int `json:"mostLikelyHomeGoals"`
	MostLikelyAwayGoals int `json:"mostLikelyAwayGoals"`

	TopScorelines []ScorelineProb `json:"topScorelines"`
}

// poissonPMF computes P(X = k) for X ~ Poisson(lambda), in log space so
// large k never overflows the factorial
func poissonPMF(k int, lambda float64) float64 {
	if k < 0 {
		return 0
	}
	if lambda <= 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	logFactorial, _ := math.Lgamma(float64(k) + 1)
	return math.Exp(-lambda + float64(k)*math.Log(lambda) - logFactorial)
}

// scorelineLess is the deterministic ordering for equal-probability
// cells: lowest total goals first, then lowest home goals
func scorelineLess(h1, a1, h2, a2 int) bool {
	t1, t2 := h1+a1, h2+a2
	if t1 != t2 {
		return t1 < t2
	}
	return h1 < h2
}

// ComputeScorelineDistribution turns an expected-goal pair into the
// scoreline probability grid and its derived outcome metrics. Win,
// draw and loss shares are renormalized over the grid's total mass so
// the three always cover the whole modeled outcome space.
func ComputeScorelineDistribution(xgHome, xgAway float64, cfg *Config) *Distribution {
	size := cfg.MaxGoalsModeled + 1

	homeProbs := make([]float64, size)
	awayProbs := make([]float64, size)
	for k := 0; k < size; k++ {
		homeProbs[k] = poissonPMF(k, xgHome)
		awayProbs[k] = poissonPMF(k, xgAway)
	}

	grid := make([][]float64, size)
	var homeWin, draw, awayWin float64
	for h := 0; h < size; h++ {
		grid[h] = make([]float64, size)
		for a := 0; a < size; a++ {
			p := homeProbs[h] * awayProbs[a]
			grid[h][a] = p
			switch {
			case h > a:
				homeWin += p
			case h == a:
				draw += p
			default:
				awayWin += p
			}
		}
	}

	dist := &Distribution{Grid: grid}

	total := homeWin + draw + awayWin
	if total > 0 {
		homeWin /= total
		draw /= total
		awayWin /= total
	}

	dist.HomeWinPct = homeWin * 100
	dist.DrawPct = draw * 100
	dist.AwayWinPct = awayWin * 100
	dist.XPtsHome = 3*homeWin + draw
	dist.XPtsAway = 3*awayWin + draw

	// Grid argmax under the deterministic tie-break
	bestH, bestA := 0, 0
	for h := 0; h < size; h++ {
		for a := 0; a < size; a++ {
			if grid[h][a] > grid[bestH][bestA] ||
				(grid[h][a] == grid[bestH][bestA] && scorelineLess(h, a, bestH, bestA)) {
				bestH, bestA = h, a
			}
		}
	}
	dist.MostLikelyHomeGoals = bestH
	dist.MostLikelyAwayGoals = bestA

	dist.TopScorelines = topScorelines(grid, cfg.TopScorelines, total)

	return dist
}

// topScorelines returns the n highest-probability cells as percentages,
// ordered by probability with the same tie-break as the argmax
func topScorelines(grid [][]float64, n int, total float64) []ScorelineProb {
	var cells []ScorelineProb
	for h := range grid {
		for a := range grid[h] {
			cells = append(cells, ScorelineProb{HomeGoals: h, AwayGoals: a, Probability: grid[h][a]})
		}
	}

	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Probability != cells[j].Probability {
			return cells[i].Probability > cells[j].Probability
		}
		return scorelineLess(cells[i].HomeGoals, cells[i].AwayGoals, cells[j].HomeGoals, cells[j].AwayGoals)
	})

	if n > len(cells) {
		n = len(cells)
	}
	top := make([]ScorelineProb, n)
	for i := 0; i < n; i++ {
		p := cells[i].Probability
		if total > 0 {
			p /= total
		}
		top[i] = ScorelineProb{
			HomeGoals:   cells[i].HomeGoals,
			AwayGoals:   cells[i].AwayGoals,
			Probability: roundTo(p*100, 2),
		}
	}
	return top
}

// roundTo rounds to the given number of decimal places
func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
