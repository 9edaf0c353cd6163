package main

import (
	"encoding/json"

	"github.com/getsentry/raven-go"
	log "github.com/sirupsen/logrus"

	"github.com/hipwelljo/complex-gestures-demo/datastructures"
	"github.com/hipwelljo/complex-gestures-demo/gesture"
	"github.com/hipwelljo/complex-gestures-demo/predict"
)

// resultExpirationSecs is how long a recognition result stays readable.
// Gestures are interactive; nobody polls an hour-old drawing.
const resultExpirationSecs = 3600

// Job holds the attributes needed to perform unit of work.
type Job struct {
	RecognitionRequest datastructures.RecognitionRequest
}

// NewWorker creates takes a numeric id and a channel w/ worker pool.
func NewWorker(id int, workerPool chan chan Job, modelDir string, backend string, useEdgeTPU bool) Worker {
	return Worker{
		id:         id,
		jobQueue:   make(chan Job),
		workerPool: workerPool,
		quitChan:   make(chan bool),
		modelDir:   modelDir,
		backend:    backend,
		useEdgeTPU: useEdgeTPU,
	}
}

type Worker struct {
	id         int
	jobQueue   chan Job
	workerPool chan chan Job
	quitChan   chan bool
	modelDir   string
	backend    string
	useEdgeTPU bool
}

// newClassifier loads the classifier backend this worker will own for its
// whole lifetime.
func (w Worker) newClassifier() (predict.Classifier, error) {
	if w.backend == "tflite" {
		classifier := predict.NewTFLiteClassifier(w.useEdgeTPU)
		if err := classifier.Load(w.modelDir); err != nil {
			return nil, err
		}
		return classifier, nil
	}
	classifier := predict.NewTensorflowClassifier()
	if err := classifier.Load(w.modelDir); err != nil {
		return nil, err
	}
	return classifier, nil
}

// start loads the worker's classifier and launches its work loop. A load
// failure is returned to the dispatcher so it can tell whether any worker
// is actually serving the pool.
func (w Worker) start() error {
	log.Debug("[Worker] Worker ", w.id, " starting")
	classifier, err := w.newClassifier()
	if err != nil {
		return err
	}
	recognizer := predict.NewRecognizer(classifier)

	go func() {
		defer classifier.Close()
		for {
			// Add my jobQueue to the worker pool.
			w.workerPool <- w.jobQueue

			select {
			case job := <-w.jobQueue:
				// Dispatcher has added a job to my jobQueue.
				w.process(recognizer, job)

			case <-w.quitChan:
				// We have been asked to stop.
				log.Debug("[Worker] Worker ", w.id, " stopping")
				return
			}
		}
	}()
	return nil
}

func (w Worker) process(recognizer *predict.Recognizer, job Job) {
	request := job.RecognitionRequest

	scores, err := recognizer.Predict(request.Drawing)
	if err != nil {
		// Expected for empty or degenerate drawings: no label update,
		// the client keeps waiting for more input.
		log.Debug("[Worker] No prediction for ", request.Uuid, ": ", err.Error())
		return
	}

	match, ok := gesture.Select(scores, request.Drawing.NumStrokes())
	if !ok {
		log.Debug("[Worker] No eligible label for ", request.Uuid)
		return
	}

	result := datastructures.RecognitionResult{
		Uuid:      request.Uuid,
		Label:     match.Label.String(),
		Score:     match.Score,
		Delayed:   match.Delayed,
		Scores:    scores,
		ModelInfo: recognizer.ModelInfo(),
	}

	serialized, err := json.Marshal(result)
	if err != nil {
		log.Debug("[Worker] Couldn't marshal recognition result: ", err.Error())
		raven.CaptureError(err, map[string]string{"component": "worker"})
		return
	}

	redisConn := redisPool.Get()
	defer redisConn.Close()

	_, err = redisConn.Do("SETEX", ("recognize" + request.Uuid), resultExpirationSecs, serialized)
	if err != nil {
		log.Debug("[Worker] Couldn't store result: ", err.Error())
		raven.CaptureError(err, map[string]string{"component": "worker"})
	}
}

func (w Worker) stop() {
	go func() {
		w.quitChan <- true
	}()
}

// NewDispatcher creates, and returns a new Dispatcher object.
func NewDispatcher(jobQueue chan Job, maxWorkers int, modelDir string, backend string, useEdgeTPU bool) *Dispatcher {
	workerPool := make(chan chan Job, maxWorkers)

	return &Dispatcher{
		jobQueue:   jobQueue,
		maxWorkers: maxWorkers,
		workerPool: workerPool,
		modelDir:   modelDir,
		backend:    backend,
		useEdgeTPU: useEdgeTPU,
	}
}

type Dispatcher struct {
	workerPool chan chan Job
	maxWorkers int
	jobQueue   chan Job
	modelDir   string
	backend    string
	useEdgeTPU bool
}

// run starts the workers and returns how many of them came up. With zero
// workers nothing would ever drain the job queue, so the dispatch loop is
// only started when at least one worker is serving the pool.
func (d *Dispatcher) run() int {
	started := 0
	for i := 0; i < d.maxWorkers; i++ {
		worker := NewWorker(i+1, d.workerPool, d.modelDir, d.backend, d.useEdgeTPU)
		if err := worker.start(); err != nil {
			log.Error("[Dispatcher] Worker ", i+1, " couldn't load model: ", err.Error())
			raven.CaptureError(err, map[string]string{"component": "worker"})
			continue
		}
		started++
	}

	if started > 0 {
		go d.dispatch()
	}
	return started
}

func (d *Dispatcher) dispatch() {
	for job := range d.jobQueue {
		go func(job Job) {
			workerJobQueue := <-d.workerPool
			workerJobQueue <- job
		}(job)
	}
}
