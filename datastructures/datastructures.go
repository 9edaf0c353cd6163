package datastructures

// Point is a single touch sample in the coordinate space of the
// input-capture subsystem.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one continuous pointer-down-to-pointer-up path.
type Stroke struct {
	Points []Point `json:"points"`
}

// Drawing is the ordered sequence of strokes a user has drawn so far.
type Drawing struct {
	Strokes []Stroke `json:"strokes"`
}

// NumStrokes returns the number of strokes in the drawing.
func (d *Drawing) NumStrokes() int {
	return len(d.Strokes)
}

type ModelInfo struct {
	Build     int32    `json:"build"`
	Created   string   `json:"created"`
	TrainedOn []string `json:"trained_on"`
	BasedOn   string   `json:"based_on"`
	InputOp   string   `json:"input_op"`
	OutputOp  string   `json:"output_op"`
}

type RecognitionRequest struct {
	Uuid    string  `json:"uuid"`
	Drawing Drawing `json:"drawing"`
	Created int64   `json:"created"`
}

type RecognitionResult struct {
	Uuid      string    `json:"uuid"`
	Label     string    `json:"label"`
	Score     float64   `json:"score"`
	Delayed   bool      `json:"delayed"`
	Scores    []float64 `json:"scores"`
	ModelInfo ModelInfo `json:"model_info"`
}

type RecognizeMeResult struct {
	Label     string    `json:"label"`
	Score     float64   `json:"score"`
	Delayed   bool      `json:"delayed"`
	ModelInfo ModelInfo `json:"model_info"`
}
