package predict

import (
	"fmt"

	"github.com/mattn/go-tflite"
	"github.com/mattn/go-tflite/delegates/edgetpu"
	log "github.com/sirupsen/logrus"

	"github.com/hipwelljo/complex-gestures-demo/datastructures"
	"github.com/hipwelljo/complex-gestures-demo/gesture"
	"github.com/hipwelljo/complex-gestures-demo/raster"
)

// TFLiteClassifier runs the mobile-exported TensorFlow Lite version of the
// gesture model. A tflite interpreter owns mutable scratch buffers, so one
// instance serves one prediction at a time; give each worker its own.
type TFLiteClassifier struct {
	model      *tflite.Model
	interp     *tflite.Interpreter
	modelInfo  datastructures.ModelInfo
	useEdgeTPU bool
}

func NewTFLiteClassifier(useEdgeTPU bool) *TFLiteClassifier {
	return &TFLiteClassifier{useEdgeTPU: useEdgeTPU}
}

// Load reads model_info.json, labels.txt and model.tflite from basePath
// and prepares the interpreter. basePath must end with a path separator.
func (p *TFLiteClassifier) Load(basePath string) error {
	modelInfo, err := loadModelInfo(basePath)
	if err != nil {
		return fmt.Errorf("reading model info: %v", err)
	}
	p.modelInfo = modelInfo

	labels, err := loadLabels(basePath + "labels.txt")
	if err != nil {
		return fmt.Errorf("reading labels: %v", err)
	}
	if err := validateLabels(labels); err != nil {
		return err
	}

	p.model = tflite.NewModelFromFile(basePath + "model.tflite")
	if p.model == nil {
		return fmt.Errorf("cannot load model from %s", basePath)
	}

	options := tflite.NewInterpreterOptions()
	defer options.Delete()
	options.SetNumThread(4)

	if p.useEdgeTPU {
		devices, err := edgetpu.DeviceList()
		if err != nil {
			log.Debug("[TFLite] Couldn't list EdgeTPU devices: ", err.Error())
		}
		if len(devices) == 0 {
			log.Debug("[TFLite] No EdgeTPU devices found, running on CPU")
		} else {
			options.AddDelegate(edgetpu.New(devices[0]))
		}
	}

	p.interp = tflite.NewInterpreter(p.model, options)
	if p.interp == nil {
		p.Close()
		return fmt.Errorf("cannot create interpreter")
	}
	if status := p.interp.AllocateTensors(); status != tflite.OK {
		p.Close()
		return fmt.Errorf("allocating tensors failed: %v", status)
	}

	if err := validateInputShape(tensorShape(p.interp.GetInputTensor(0))); err != nil {
		p.Close()
		return err
	}

	output := p.interp.GetOutputTensor(0)
	if n := numElements(output); n != gesture.Count() {
		p.Close()
		return fmt.Errorf("model output has %d elements, want %d", n, gesture.Count())
	}
	return nil
}

func (p *TFLiteClassifier) ModelInfo() datastructures.ModelInfo {
	return p.modelInfo
}

// Predict fills the interpreter's input tensor, invokes the model and
// copies the output buffer out in order.
func (p *TFLiteClassifier) Predict(t *Tensor) ([]float64, error) {
	if t.Width != raster.Width || t.Height != raster.Height {
		return nil, fmt.Errorf("tensor is %dx%d, model wants %dx%d", t.Width, t.Height, raster.Width, raster.Height)
	}

	input := p.interp.GetInputTensor(0)
	switch input.Type() {
	case tflite.Float32:
		input.SetFloat32s(t.Float32s())
	case tflite.UInt8:
		data := t.Float64s()
		quantized := make([]uint8, len(data))
		for i, v := range data {
			quantized[i] = uint8(v * 255.0)
		}
		input.SetUint8s(quantized)
	default:
		return nil, fmt.Errorf("unsupported input tensor type %v", input.Type())
	}

	if status := p.interp.Invoke(); status != tflite.OK {
		return nil, fmt.Errorf("invoke failed: %v", status)
	}

	output := p.interp.GetOutputTensor(0)
	scores := make([]float64, gesture.Count())
	switch output.Type() {
	case tflite.Float32:
		for i, v := range output.Float32s() {
			scores[i] = float64(v)
		}
	case tflite.UInt8:
		for i, v := range output.UInt8s() {
			scores[i] = float64(v) / 255.0
		}
	default:
		return nil, fmt.Errorf("unsupported output tensor type %v", output.Type())
	}
	return scores, nil
}

func (p *TFLiteClassifier) Close() {
	if p.interp != nil {
		p.interp.Delete()
		p.interp = nil
	}
	if p.model != nil {
		p.model.Delete()
		p.model = nil
	}
}

// validateInputShape checks for the [1 H W 1] layout the gesture model is
// exported with. Batched or multi-channel exports are rejected at load
// time; filling them at predict time would scramble the pixel layout.
func validateInputShape(shape []int) error {
	if len(shape) != 4 || shape[0] != 1 || shape[1] != raster.Height || shape[2] != raster.Width || shape[3] != 1 {
		return fmt.Errorf("model input is %v, want [1 %d %d 1]", shape, raster.Height, raster.Width)
	}
	return nil
}

func tensorShape(tensor *tflite.Tensor) []int {
	shape := []int{}
	for idx := 0; idx < tensor.NumDims(); idx++ {
		shape = append(shape, tensor.Dim(idx))
	}
	return shape
}

func numElements(tensor *tflite.Tensor) int {
	n := 1
	for idx := 0; idx < tensor.NumDims(); idx++ {
		n *= tensor.Dim(idx)
	}
	return n
}
