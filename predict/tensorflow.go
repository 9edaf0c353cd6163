package predict

import (
	"fmt"
	"io/ioutil"

	tf "github.com/tensorflow/tensorflow/tensorflow/go"

	"github.com/hipwelljo/complex-gestures-demo/datastructures"
	"github.com/hipwelljo/complex-gestures-demo/gesture"
	"github.com/hipwelljo/complex-gestures-demo/raster"
)

// Names of the graph operations to feed and fetch when model_info.json
// doesn't specify them.
const (
	defaultInputOp  = "input"
	defaultOutputOp = "final_result"
)

// TensorflowClassifier runs a frozen GraphDef export of the gesture model.
// Load it once; Session.Run is safe for concurrent callers.
type TensorflowClassifier struct {
	graph     *tf.Graph
	session   *tf.Session
	modelInfo datastructures.ModelInfo
	inputOp   string
	outputOp  string
}

func NewTensorflowClassifier() *TensorflowClassifier {
	return &TensorflowClassifier{}
}

// Load reads model_info.json, labels.txt and graph.pb from basePath and
// opens an inference session. basePath must end with a path separator.
func (p *TensorflowClassifier) Load(basePath string) error {
	modelInfo, err := loadModelInfo(basePath)
	if err != nil {
		return fmt.Errorf("reading model info: %v", err)
	}
	p.modelInfo = modelInfo

	p.inputOp = modelInfo.InputOp
	if p.inputOp == "" {
		p.inputOp = defaultInputOp
	}
	p.outputOp = modelInfo.OutputOp
	if p.outputOp == "" {
		p.outputOp = defaultOutputOp
	}

	labels, err := loadLabels(basePath + "labels.txt")
	if err != nil {
		return fmt.Errorf("reading labels: %v", err)
	}
	if err := validateLabels(labels); err != nil {
		return err
	}

	model, err := ioutil.ReadFile(basePath + "graph.pb")
	if err != nil {
		return fmt.Errorf("reading graph: %v", err)
	}

	p.graph = tf.NewGraph()
	if err := p.graph.Import(model, ""); err != nil {
		return fmt.Errorf("importing graph: %v", err)
	}
	if p.graph.Operation(p.inputOp) == nil {
		return fmt.Errorf("graph has no operation %q", p.inputOp)
	}
	if p.graph.Operation(p.outputOp) == nil {
		return fmt.Errorf("graph has no operation %q", p.outputOp)
	}

	p.session, err = tf.NewSession(p.graph, nil)
	if err != nil {
		return fmt.Errorf("starting session: %v", err)
	}
	return nil
}

func (p *TensorflowClassifier) ModelInfo() datastructures.ModelInfo {
	return p.modelInfo
}

// Predict feeds the tensor through the graph and returns one score per
// label in gesture.All order.
func (p *TensorflowClassifier) Predict(t *Tensor) ([]float64, error) {
	input, err := makeGraphTensor(t)
	if err != nil {
		return nil, err
	}

	output, err := p.session.Run(
		map[tf.Output]*tf.Tensor{
			p.graph.Operation(p.inputOp).Output(0): input,
		},
		[]tf.Output{
			p.graph.Operation(p.outputOp).Output(0),
		},
		nil)
	if err != nil {
		return nil, err
	}

	// output[0] holds the probabilities for a batch of size 1.
	batch, ok := output[0].Value().([][]float32)
	if !ok || len(batch) == 0 {
		return nil, fmt.Errorf("unexpected output shape from %q", p.outputOp)
	}
	probabilities := batch[0]
	if len(probabilities) != gesture.Count() {
		return nil, fmt.Errorf("model produced %d scores, want %d", len(probabilities), gesture.Count())
	}

	scores := make([]float64, len(probabilities))
	for i, v := range probabilities {
		scores[i] = float64(v)
	}
	return scores, nil
}

func (p *TensorflowClassifier) Close() {
	if p.session != nil {
		p.session.Close()
	}
}

// makeGraphTensor converts the normalized (1, W, H) tensor into the
// (batch, height, width, channel) layout the graph was trained with.
func makeGraphTensor(t *Tensor) (*tf.Tensor, error) {
	if t.Width != raster.Width || t.Height != raster.Height {
		return nil, fmt.Errorf("tensor is %dx%d, model wants %dx%d", t.Width, t.Height, raster.Width, raster.Height)
	}

	var ret [1][raster.Height][raster.Width][1]float32
	for y := 0; y < raster.Height; y++ {
		for x := 0; x < raster.Width; x++ {
			ret[0][y][x][0] = float32(t.At(x, y))
		}
	}
	return tf.NewTensor(ret)
}
