// Package gesture defines the closed set of gesture labels the classifier
// can predict, the dense score-vector ordering of those labels, and the
// product heuristics consulted when turning a score vector into a final
// recognition.
package gesture

import "fmt"

// Label is a gesture category. The numeric values are stable wire
// identifiers grouped by shape family; they are NOT score-vector indices.
// The classifier's output is indexed by a label's position in All.
type Label int32

const (
	LineAscending  Label = 10
	LineDescending Label = 11
	LineHorizontal Label = 12
	LineVertical   Label = 13

	SemicircleOpenUp   Label = 20
	SemicircleOpenDown Label = 21
	Circle             Label = 22
	Rectangle          Label = 23
	Triangle           Label = 24
	Scribble           Label = 25

	Checkmark    Label = 30
	XMark        Label = 31
	PlusSign     Label = 32
	QuestionMark Label = 33

	FaceHappy Label = 40
	FaceSad   Label = 41
)

// All lists every label in score-vector order. The trained model emits one
// score per entry, in exactly this order; labels.txt shipped next to the
// model artifact must match it line for line.
var All = []Label{
	LineAscending,
	LineDescending,
	LineHorizontal,
	LineVertical,
	SemicircleOpenUp,
	SemicircleOpenDown,
	Circle,
	Rectangle,
	Triangle,
	Scribble,
	Checkmark,
	XMark,
	PlusSign,
	QuestionMark,
	FaceHappy,
	FaceSad,
}

var names = map[Label]string{
	LineAscending:      "lineAscending",
	LineDescending:     "lineDescending",
	LineHorizontal:     "lineHorizontal",
	LineVertical:       "lineVertical",
	SemicircleOpenUp:   "semicircleOpenUp",
	SemicircleOpenDown: "semicircleOpenDown",
	Circle:             "circle",
	Rectangle:          "rectangle",
	Triangle:           "triangle",
	Scribble:           "scribble",
	Checkmark:          "checkmark",
	XMark:              "xmark",
	PlusSign:           "plusSign",
	QuestionMark:       "questionMark",
	FaceHappy:          "faceHappy",
	FaceSad:            "faceSad",
}

var indices = func() map[Label]int {
	m := make(map[Label]int, len(All))
	for i, l := range All {
		m[l] = i
	}
	return m
}()

var byName = func() map[string]Label {
	m := make(map[string]Label, len(names))
	for l, n := range names {
		m[n] = l
	}
	return m
}()

// Count returns the number of labels the classifier scores.
func Count() int {
	return len(All)
}

// Index returns the dense score-vector position of a label.
func Index(l Label) (int, bool) {
	i, ok := indices[l]
	return i, ok
}

// At returns the label stored at a score-vector position.
func At(index int) (Label, bool) {
	if index < 0 || index >= len(All) {
		return 0, false
	}
	return All[index], true
}

// Parse maps a label name (as used in labels.txt) back to its Label.
func Parse(name string) (Label, bool) {
	l, ok := byName[name]
	return l, ok
}

func (l Label) String() string {
	if n, ok := names[l]; ok {
		return n
	}
	return fmt.Sprintf("Label(%d)", int32(l))
}
