package main

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/garyburd/redigo/redis"
	"github.com/getsentry/raven-go"
	log "github.com/sirupsen/logrus"

	"github.com/hipwelljo/complex-gestures-demo/datastructures"
)

var redisPool *redis.Pool

func main() {
	log.SetLevel(log.DebugLevel)

	log.Debug("[Main] Starting Recognizer Worker...")
	redisAddress := flag.String("redis-address", ":6379", "Address to the Redis server")
	redisMaxConnections := flag.Int("redis-max-connections", 10, "Max connections to Redis")
	maxWorkerQueueSize := flag.Int("max-worker-queue-size", 100, "The size of job queue")
	maxWorkers := flag.Int("max-workers", 5, "The number of workers to start")
	modelDir := flag.String("model-dir", "../models/gestures/", "Directory with the trained gesture model")
	backend := flag.String("backend", "tensorflow", "Classifier backend to use (tensorflow or tflite)")
	useEdgeTPU := flag.Bool("use-edgetpu", false, "Use an EdgeTPU delegate with the tflite backend")

	flag.Parse()

	if *backend != "tensorflow" && *backend != "tflite" {
		log.Fatal("[Main] Invalid backend: ", *backend)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := raven.SetDSN(dsn); err != nil {
			log.Error("[Main] Couldn't configure sentry: ", err.Error())
		}
	}

	redisPool = redis.NewPool(func() (redis.Conn, error) {
		c, err := redis.Dial("tcp", *redisAddress)

		if err != nil {
			return nil, err
		}

		return c, err
	}, *redisMaxConnections)
	defer redisPool.Close()

	log.Debug("[Main] Starting Dispatcher...")

	jobQueue := make(chan Job, *maxWorkerQueueSize)
	dispatcher := NewDispatcher(jobQueue, *maxWorkers, *modelDir, *backend, *useEdgeTPU)
	if dispatcher.run() == 0 {
		// Without workers every queued request would be consumed and
		// silently dropped; better to die visibly.
		log.Fatal("[Main] No workers could be started, check -model-dir")
	}

	for {
		redisConn := redisPool.Get()

		data, err := redis.Bytes(redisConn.Do("LPOP", "recognizeme"))
		if err != nil {
			redisConn.Close()
			time.Sleep(time.Second) //nothing in queue, sleep for one sec
			continue
		}

		log.Debug("[Main] Got a new request to process")

		var request datastructures.RecognitionRequest
		err = json.Unmarshal(data, &request)
		if err != nil {
			log.Debug("[Main] Couldn't unmarshal: ", err.Error())
			redisConn.Close()
			continue
		}

		jobQueue <- Job{RecognitionRequest: request}

		redisConn.Close()
	}
}
