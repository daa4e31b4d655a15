// Package rating converts match results into weekly scores and rolling ratings.
package rating

import (
	"math"

	"github.com/matchpoint/gamenight/internal/domain/model"
)

// Algorithm names the scoring scheme for audit snapshots.
const Algorithm = "weighted-sets-ma5"

// windowSize is the number of prior weekly scores kept per player. Together
// with the current score it forms the 5-value moving average.
const windowSize = 4

// tierPoints holds the per-tier scoring constants.
type tierPoints struct {
	base   float64 // awarded to the winning team on top of set points
	perSet float64
}

var pointsByTier = map[model.Tier]tierPoints{
	model.TierMasters:   {base: 300, perSet: 20},
	model.TierExplorers: {base: 200, perSet: 15},
}

// Result is the output of one rating run.
type Result struct {
	WeeklyScores map[string]int
	NewRatings   map[string]int
}

// Compute derives each player's weekly score from the batch of matches and
// folds it into the rolling rating.
//
// A team's points per match: on a tie each side earns perSet*ownSets; a win
// earns base+perSet*setsWon and the loss earns perSet*setsLost. Team points
// split evenly between its two members. A player's weekly score is their
// total points divided by matches played, rounded; players present in
// currentRatings but in no match score zero.
//
// The new rating is the rounded mean of the non-zero values among the four
// prior weekly scores and the current one. When all five are zero the
// current rating is kept unchanged.
func Compute(currentRatings map[string]int, weeklyWindow map[string][]int, matches []model.MatchResult) Result {
	points := make(map[string]float64)
	played := make(map[string]int)

	for _, m := range matches {
		pts := pointsByTier[m.Tier]
		var aPoints, bPoints float64
		switch {
		case m.SetsA == m.SetsB:
			aPoints = pts.perSet * float64(m.SetsA)
			bPoints = pts.perSet * float64(m.SetsB)
		case m.SetsA > m.SetsB:
			aPoints = pts.base + pts.perSet*float64(m.SetsA)
			bPoints = pts.perSet * float64(m.SetsB)
		default:
			aPoints = pts.perSet * float64(m.SetsA)
			bPoints = pts.base + pts.perSet*float64(m.SetsB)
		}
		for _, id := range m.TeamA {
			points[id] += aPoints / 2
			played[id]++
		}
		for _, id := range m.TeamB {
			points[id] += bPoints / 2
			played[id]++
		}
	}

	res := Result{
		WeeklyScores: make(map[string]int, len(currentRatings)),
		NewRatings:   make(map[string]int, len(currentRatings)),
	}

	for id := range currentRatings {
		if played[id] > 0 {
			res.WeeklyScores[id] = int(math.Round(points[id] / float64(played[id])))
		} else {
			res.WeeklyScores[id] = 0
		}
	}
	// Players who played but were unknown to the caller still get scored.
	for id := range played {
		if _, ok := res.WeeklyScores[id]; !ok {
			res.WeeklyScores[id] = int(math.Round(points[id] / float64(played[id])))
		}
	}

	for id, weekly := range res.WeeklyScores {
		res.NewRatings[id] = newRating(currentRatings[id], weeklyWindow[id], weekly)
	}
	return res
}

// newRating averages the non-zero values of the 5-score window, keeping the
// current rating when the whole window is zero.
func newRating(current int, window []int, weekly int) int {
	if len(window) > windowSize {
		window = window[len(window)-windowSize:]
	}
	sum, n := 0, 0
	for _, s := range window {
		if s != 0 {
			sum += s
			n++
		}
	}
	if weekly != 0 {
		sum += weekly
		n++
	}
	if n == 0 {
		return current
	}
	return int(math.Round(float64(sum) / float64(n)))
}
