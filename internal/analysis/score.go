package analysis

import "strconv"

// winProbability maps a centipawn advantage for the side to move onto
// [0,1] with a linear ramp: -300cp and below is a loss, +300cp and
// above a win, 0cp is even.
func winProbability(cp int) float64 {
	v := (float64(cp) + 300) / 600
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// mateProbability saturates a forced mate: the side delivering it gets
// the full bar regardless of distance.
func mateProbability(n int) float64 {
	if n > 0 {
		return 1
	}
	return 0
}

// scoreFromInfo extracts and normalizes the score token from a split
// "info ..." line. The second return is false when the line carries no
// usable score.
func scoreFromInfo(fields []string) (float64, bool) {
	for i := 0; i+2 < len(fields); i++ {
		if fields[i] != "score" {
			continue
		}
		n, err := strconv.Atoi(fields[i+2])
		if err != nil {
			return 0, false
		}
		switch fields[i+1] {
		case "cp":
			return winProbability(n), true
		case "mate":
			return mateProbability(n), true
		}
		return 0, false
	}
	return 0, false
}
