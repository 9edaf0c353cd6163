package predict

import (
	"errors"
	"testing"

	"github.com/hipwelljo/complex-gestures-demo/datastructures"
	"github.com/hipwelljo/complex-gestures-demo/gesture"
)

type fakeClassifier struct {
	scores     []float64
	err        error
	lastTensor *Tensor
}

func (f *fakeClassifier) Predict(t *Tensor) ([]float64, error) {
	f.lastTensor = t
	if f.err != nil {
		return nil, f.err
	}
	return f.scores, nil
}

func (f *fakeClassifier) ModelInfo() datastructures.ModelInfo {
	return datastructures.ModelInfo{Build: 1}
}

func (f *fakeClassifier) Close() {}

func uniformScores() []float64 {
	scores := make([]float64, gesture.Count())
	for i := range scores {
		scores[i] = 1.0 / float64(len(scores))
	}
	return scores
}

// xMarkDrawing is two crossing diagonal strokes.
func xMarkDrawing() datastructures.Drawing {
	return datastructures.Drawing{Strokes: []datastructures.Stroke{
		{Points: []datastructures.Point{{X: 0, Y: 100}, {X: 100, Y: 0}}},
		{Points: []datastructures.Point{{X: 0, Y: 0}, {X: 100, Y: 100}}},
	}}
}

func TestPredictReturnsScores(t *testing.T) {
	fake := &fakeClassifier{scores: uniformScores()}
	recognizer := NewRecognizer(fake)

	scores, err := recognizer.Predict(xMarkDrawing())
	ok(t, err)
	equals(t, len(scores), gesture.Count())
}

func TestPredictBuildsNormalizedTensor(t *testing.T) {
	fake := &fakeClassifier{scores: uniformScores()}
	recognizer := NewRecognizer(fake)

	_, err := recognizer.Predict(xMarkDrawing())
	ok(t, err)

	tensor := fake.lastTensor
	if tensor == nil {
		t.Fatal("classifier never invoked")
	}
	for y := 0; y < tensor.Height; y++ {
		for x := 0; x < tensor.Width; x++ {
			v := tensor.At(x, y)
			if v < 0.0 || v > 1.0 {
				t.Fatalf("tensor value %f at (%d,%d) outside [0,1]", v, x, y)
			}
		}
	}
}

func TestPredictEmptyDrawing(t *testing.T) {
	fake := &fakeClassifier{scores: uniformScores()}
	recognizer := NewRecognizer(fake)

	_, err := recognizer.Predict(datastructures.Drawing{})
	if !errors.Is(err, ErrNoPrediction) {
		t.Fatalf("got %v, want ErrNoPrediction", err)
	}
	if fake.lastTensor != nil {
		t.Fatal("classifier must not be invoked for an empty drawing")
	}
}

func TestPredictClassifierFailure(t *testing.T) {
	fake := &fakeClassifier{err: errors.New("model exploded")}
	recognizer := NewRecognizer(fake)

	scores, err := recognizer.Predict(xMarkDrawing())
	if !errors.Is(err, ErrNoPrediction) {
		t.Fatalf("got %v, want ErrNoPrediction", err)
	}
	if scores != nil {
		t.Fatal("no partial score vector may be returned")
	}
}
