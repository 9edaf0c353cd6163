package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/garyburd/redigo/redis"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/hipwelljo/complex-gestures-demo/datastructures"
)

func corsHeaders(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Requested-With, X-PINGOTHER, X-File-Name, Cache-Control")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")
}

func main() {
	log.SetLevel(log.DebugLevel)

	releaseMode := flag.Bool("release", false, "Run in release mode")
	listenAddress := flag.String("listen-address", ":8082", "Address to listen on")
	redisAddress := flag.String("redis-address", ":6379", "Address to the Redis server")
	redisMaxConnections := flag.Int("redis-max-connections", 50, "Max connections to Redis")

	flag.Parse()
	if *releaseMode {
		fmt.Printf("[Main] Starting gin in release mode!\n")
		gin.SetMode(gin.ReleaseMode)
	}

	redisPool := redis.NewPool(func() (redis.Conn, error) {
		c, err := redis.Dial("tcp", *redisAddress)

		if err != nil {
			return nil, err
		}

		return c, err
	}, *redisMaxConnections)
	defer redisPool.Close()

	router := gin.Default()

	router.OPTIONS("/v1/recognize", func(c *gin.Context) {
		corsHeaders(c)
		c.JSON(http.StatusOK, struct{}{})
	})

	router.POST("/v1/recognize", func(c *gin.Context) {
		corsHeaders(c)
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Location")

		var drawing datastructures.Drawing
		if err := c.BindJSON(&drawing); err != nil {
			c.JSON(400, gin.H{"error": "Couldn't parse drawing"})
			return
		}

		u, err := uuid.NewV4()
		if err != nil {
			log.Debug("[Recognize] Couldn't generate uuid: ", err.Error())
			c.JSON(500, gin.H{"error": "Couldn't accept request - please try again later"})
			return
		}

		request := datastructures.RecognitionRequest{
			Uuid:    u.String(),
			Drawing: drawing,
			Created: time.Now().Unix(),
		}

		serialized, err := json.Marshal(request)
		if err != nil {
			log.Debug("[Recognize] Couldn't accept request: ", err.Error())
			c.JSON(500, gin.H{"error": "Couldn't accept request - please try again later"})
			return
		}

		redisConn := redisPool.Get()
		defer redisConn.Close()

		//add a recognition request to the REDIS 'recognizeme' queue
		_, err = redisConn.Do("RPUSH", "recognizeme", serialized)
		if err != nil {
			log.Debug("[Recognize] Couldn't accept request: ", err.Error())
			c.JSON(500, gin.H{"error": "Couldn't accept request - please try again later"})
			return
		}

		c.Writer.Header().Set("Location", request.Uuid)
		c.JSON(202, gin.H{})
	})

	router.GET("/v1/recognize/:uuid", func(c *gin.Context) {
		corsHeaders(c)

		key := "recognize" + c.Param("uuid")

		redisConn := redisPool.Get()
		defer redisConn.Close()

		ok, err := redis.Bool(redisConn.Do("EXISTS", key))
		if err != nil {
			log.Debug("[Recognize] Couldn't check status of request: ", err.Error())
			c.JSON(500, gin.H{"error": "Couldn't check status of request - please try again later"})
			return
		}

		if !ok { //nothing available yet. Which means either the uuid is wrong or processing isn't finished.
			//at this point we don't care for the reason.
			c.JSON(200, gin.H{})
			return
		}

		data, err := redis.Bytes(redisConn.Do("GET", key))
		if err != nil {
			log.Debug("[Recognize] Couldn't get status of request: ", err.Error())
			c.JSON(500, gin.H{"error": "Couldn't get status of request - please try again later"})
			return
		}

		var result datastructures.RecognitionResult
		err = json.Unmarshal(data, &result)
		if err != nil {
			log.Debug("[Recognize] Couldn't unmarshal: ", err.Error())
			c.JSON(500, gin.H{"error": "Couldn't get status of request - please try again later"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"label": result.Label, "score": result.Score,
			"delayed": result.Delayed, "model_info": result.ModelInfo})
	})

	router.Run(*listenAddress)
}
