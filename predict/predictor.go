// Package predict turns a drawing into per-label gesture scores: the
// drawing is rasterized, normalized into an input tensor and run through a
// pre-trained classifier. All failure modes collapse into the single
// ErrNoPrediction outcome; the caller just gets no label update.
package predict

import (
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/hipwelljo/complex-gestures-demo/datastructures"
	"github.com/hipwelljo/complex-gestures-demo/raster"
)

// Classifier is a pre-trained model mapping an input tensor to one score
// per label, in gesture.All order. Implementations are loaded once, before
// the first prediction; see each backend for its concurrency rules.
type Classifier interface {
	Predict(t *Tensor) ([]float64, error)
	ModelInfo() datastructures.ModelInfo
	Close()
}

// ErrNoPrediction is the single outcome for every prediction failure. No
// partial score vector is ever returned.
var ErrNoPrediction = errors.New("no prediction available")

// Recognizer is the prediction adapter. The classifier is injected so
// tests can substitute a fake.
type Recognizer struct {
	classifier Classifier
}

func NewRecognizer(c Classifier) *Recognizer {
	return &Recognizer{classifier: c}
}

// ModelInfo exposes the metadata of the underlying model.
func (r *Recognizer) ModelInfo() datastructures.ModelInfo {
	return r.classifier.ModelInfo()
}

// Predict returns the score vector for a drawing, or ErrNoPrediction.
// Step timings are logged for diagnostics only and never influence the
// result.
func (r *Recognizer) Predict(d datastructures.Drawing) ([]float64, error) {
	started := time.Now()
	img, err := raster.Rasterize(d)
	if err != nil {
		log.Debug("[Recognizer] Couldn't rasterize drawing: ", err.Error())
		return nil, ErrNoPrediction
	}
	rasterized := time.Now()

	tensor, err := NewTensorFromImage(img)
	if err != nil {
		log.Debug("[Recognizer] Couldn't build input tensor: ", err.Error())
		return nil, ErrNoPrediction
	}

	scores, err := r.classifier.Predict(tensor)
	if err != nil {
		log.Debug("[Recognizer] Couldn't predict: ", err.Error())
		return nil, ErrNoPrediction
	}

	log.Debug("[Recognizer] Image generation took ", rasterized.Sub(started),
		", prediction took ", time.Since(rasterized))
	return scores, nil
}
