package engine

import "math"

// charsPerWord is the canonical word length for WPM.
const charsPerWord = 5

// WPM converts a character count over elapsed seconds to words per minute.
func WPM(chars int, elapsedSeconds float64) int {
	if elapsedSeconds <= 0 {
		return 0
	}
	wpm := math.Round((float64(chars) / charsPerWord) / (elapsedSeconds / 60))
	return max(0, int(wpm))
}

// Accuracy returns correct/total as a rounded percentage; 100 when nothing was typed.
func Accuracy(correct, total int) int {
	if total == 0 {
		return 100
	}
	acc := int(math.Round(float64(correct) / float64(total) * 100))
	return min(100, max(0, acc))
}

// Consistency scores the steadiness of per-second WPM in [0,100].
// With no samples the mean falls back to wpm and the variance is zero.
func Consistency(history []int, wpm int) int {
	avg := float64(wpm)
	variance := 0.0
	if len(history) > 0 {
		sum := 0.0
		for _, v := range history {
			sum += float64(v)
		}
		avg = sum / float64(len(history))
		for _, v := range history {
			d := float64(v) - avg
			variance += d * d
		}
		variance /= float64(len(history))
	}
	if avg <= 0 {
		return 100
	}
	return max(0, int(math.Round(100-(math.Sqrt(variance)/avg)*100)))
}
