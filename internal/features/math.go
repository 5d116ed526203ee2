package features

import (
	"gonum.org/v1/gonum/stat"
)

// meanOfRecent averages the first n entries of a most-recent-first series.
// An empty series yields 0.0: a neutral prior, not a missing-value sentinel.
func meanOfRecent(values []float64, n int) float64 {
	if len(values) == 0 {
		return 0
	}
	if n > len(values) {
		n = len(values)
	}
	return stat.Mean(values[:n], nil)
}

// minutesConsistency is 1 minus the coefficient of variation of minutes over
// the lookback window, clamped to [0,1]. A player on identical minutes every
// week scores 1.0; a player who never plays scores 0.0.
func minutesConsistency(minutes []float64, window int) float64 {
	if len(minutes) < 2 {
		return 0
	}
	if window > len(minutes) {
		window = len(minutes)
	}
	recent := minutes[:window]

	mean, std := stat.MeanStdDev(recent, nil)
	if mean == 0 {
		return 0
	}
	return clamp01(1 - std/mean)
}

// injuryRisk estimates rotation or knock risk purely from playing-time trend,
// so the signal exists before an official injury is recorded. The window is
// split chronologically; a drop from the early average to the late average
// raises risk. A most recent match with zero minutes is maximum risk.
func injuryRisk(minutes []float64, window int) float64 {
	if len(minutes) < 2 {
		return 0
	}
	if window > len(minutes) {
		window = len(minutes)
	}

	// minutes is most-recent-first; work in chronological order
	recent := make([]float64, window)
	for i := 0; i < window; i++ {
		recent[i] = minutes[window-1-i]
	}

	if recent[len(recent)-1] == 0 {
		return 1
	}

	half := len(recent) / 2
	earlyAvg := stat.Mean(recent[:half], nil)
	lateAvg := stat.Mean(recent[half:], nil)
	if earlyAvg == 0 {
		return 0
	}

	return clamp01((earlyAvg - lateAvg) / earlyAvg)
}

// minutesTrend is the slope of a linear fit over matches where the player
// actually featured. Zero-minute matches are dropped so a single benching
// does not swamp the trend.
func minutesTrend(minutes []float64) float64 {
	// chronological order for the fit
	var xs, ys []float64
	n := len(minutes)
	for i := n - 1; i >= 0; i-- {
		if minutes[i] > 0 {
			xs = append(xs, float64(n-1-i))
			ys = append(ys, minutes[i])
		}
	}
	if len(ys) < 2 {
		return 0
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope
}

// gamesWithMinutes is the share of recent matches with any playing time
func gamesWithMinutes(minutes []float64) float64 {
	if len(minutes) == 0 {
		return 0
	}
	played := 0
	for _, m := range minutes {
		if m >= 1 {
			played++
		}
	}
	return float64(played) / float64(len(minutes))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
