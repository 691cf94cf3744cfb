package schedule

import "math"

const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3

	// lapseQuality is the lowest quality that counts as a successful recall.
	lapseQuality = 3
)

// UpdateEaseFactor applies the SM-2 ease adjustment for a quality grade.
// The result never drops below MinEaseFactor and has no upper bound.
func UpdateEaseFactor(ef float64, quality int) float64 {
	q := float64(quality)
	delta := 0.1 - (5-q)*(0.08+(5-q)*0.02)
	return math.Max(MinEaseFactor, ef+delta)
}

// NextInterval returns the interval in days before jitter, and the
// repetition count after a lapse reset. repetitions is the count after
// it was incremented for this review.
func NextInterval(lastInterval int, ef float64, quality int, repetitions int) (interval int, reps int) {
	if quality < lapseQuality {
		return 1, 0
	}

	switch repetitions {
	case 1:
		return 1, repetitions
	case 2:
		return 6, repetitions
	default:
		return int(math.Round(float64(lastInterval) * ef)), repetitions
	}
}

// IsLapse reports whether quality resets the spacing.
func IsLapse(quality int) bool {
	return quality < lapseQuality
}
