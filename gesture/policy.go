package gesture

// Hand-tuned product heuristics. The numbers are literal tuning data, not
// derived from the shapes; adjust them only together with the app's
// interaction design.

// strokeCounts lists the labels that need more than one stroke before they
// can be a valid match. Everything else matches from the first stroke.
var strokeCounts = map[Label]int{
	XMark:     2,
	PlusSign:  2,
	FaceHappy: 3,
	FaceSad:   3,
}

// delayedLabels are gestures that are likely prefixes of a bigger gesture:
// an ascending line may become half of an x mark or a plus sign, an open
// semicircle may become the mouth of a face. Recognition of these is held
// back to give the user time to finish the larger shape.
var delayedLabels = map[Label]bool{
	LineAscending:      true,
	LineDescending:     true,
	SemicircleOpenUp:   true,
	SemicircleOpenDown: true,
}

// RequiredStrokeCount returns the minimum number of strokes a drawing must
// contain before the label may be reported. Always >= 1.
func RequiredStrokeCount(l Label) int {
	if n, ok := strokeCounts[l]; ok {
		return n
	}
	return 1
}

// ShouldDelayAcceptance reports whether the caller should hold off emitting
// the label even when it scores highest, to allow the drawing to grow into
// a different gesture.
func ShouldDelayAcceptance(l Label) bool {
	return delayedLabels[l]
}
