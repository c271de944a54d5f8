package engine

// EpleyOneRM estimates a 1RM from an actual set, used as feedback when
// an athlete logs actuals against a target.
func EpleyOneRM(weightKg float64, reps int) float64 {
	if reps <= 0 {
		return 0
	}
	return weightKg * (1 + float64(reps)/30)
}
