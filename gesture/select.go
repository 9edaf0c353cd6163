package gesture

// Match is the outcome of applying the label policy to a score vector.
type Match struct {
	Label   Label
	Score   float64
	Delayed bool
}

// Select picks the best label for a score vector, skipping labels whose
// required stroke count exceeds the number of strokes drawn so far. The
// scores slice must be in All order. Returns false when no label is
// eligible or the score vector is empty.
func Select(scores []float64, strokeCount int) (Match, bool) {
	if len(scores) != len(All) {
		return Match{}, false
	}

	bestIdx := -1
	for i, s := range scores {
		if RequiredStrokeCount(All[i]) > strokeCount {
			continue
		}
		if bestIdx < 0 || s > scores[bestIdx] {
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return Match{}, false
	}

	label := All[bestIdx]
	return Match{
		Label:   label,
		Score:   scores[bestIdx],
		Delayed: ShouldDelayAcceptance(label),
	}, true
}
