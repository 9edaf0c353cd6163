package predict

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/hipwelljo/complex-gestures-demo/datastructures"
	"github.com/hipwelljo/complex-gestures-demo/gesture"
)

// loadModelInfo reads the model_info.json shipped next to a model artifact.
func loadModelInfo(basePath string) (datastructures.ModelInfo, error) {
	var modelInfo datastructures.ModelInfo

	data, err := ioutil.ReadFile(basePath + "model_info.json")
	if err != nil {
		return modelInfo, err
	}
	err = json.Unmarshal(data, &modelInfo)
	if err != nil {
		return modelInfo, err
	}
	return modelInfo, nil
}

// loadLabels reads a labels file with one label name per line.
func loadLabels(path string) ([]string, error) {
	var labels []string
	file, err := os.Open(path)
	if err != nil {
		return labels, err
	}
	defer file.Close()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		labels = append(labels, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return labels, err
	}
	return labels, nil
}

// validateLabels checks that a labels file matches the gesture enumeration
// exactly: same names, same order, same count. The model's score vector is
// indexed positionally, so any mismatch would silently shift every
// prediction; better to refuse to load.
func validateLabels(labels []string) error {
	if len(labels) != gesture.Count() {
		return fmt.Errorf("labels file lists %d labels, model enumeration has %d", len(labels), gesture.Count())
	}
	for i, name := range labels {
		l, ok := gesture.Parse(name)
		if !ok {
			return fmt.Errorf("labels file line %d: unknown label %q", i+1, name)
		}
		idx, _ := gesture.Index(l)
		if idx != i {
			return fmt.Errorf("labels file line %d: label %q belongs at position %d", i+1, name, idx)
		}
	}
	return nil
}
