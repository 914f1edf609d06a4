//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	renderStream = "stream:atl08:render"
	doneStream   = "stream:atl08:render:done"
)

type renderMapEvent struct {
	JobID   uuid.UUID       `json:"job_id"`
	Request json.RawMessage `json:"request"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	granule := flag.String("granule", "", "granule to render; empty sends inline sample rows")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовый запрос: три наблюдения, два ночных
	request := map[string]interface{}{
		"rows": []map[string]interface{}{
			{"lat": 64.10, "lon": -147.10, "h_can": 4.2, "night_flg": 0},
			{"lat": 64.12, "lon": -147.05, "h_can": 11.7, "night_flg": 1},
			{"lat": 64.15, "lon": -147.01, "h_can": 22.9, "night_flg": 1},
		},
	}
	if *granule != "" {
		request = map[string]interface{}{"granule": *granule}
	}

	body, err := json.Marshal(request)
	if err != nil {
		log.Fatalf("Failed to marshal request: %v", err)
	}
	event := renderMapEvent{JobID: uuid.New(), Request: body}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: renderStream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", renderStream)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Job ID: %s\n", event.JobID)

	fmt.Printf("\nWaiting for response in %s...\n", doneStream)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout waiting for response")
			return
		case <-ticker.C:
			msgs, err := client.XRange(ctx, doneStream, "-", "+").Result()
			if err != nil {
				continue
			}

			for _, msg := range msgs {
				dataStr, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}

				var response map[string]interface{}
				if err := json.Unmarshal([]byte(dataStr), &response); err != nil {
					continue
				}

				if response["job_id"] == event.JobID.String() {
					fmt.Printf("\nResponse received\n")
					prettyJSON, _ := json.MarshalIndent(response, "", "  ")
					fmt.Printf("%s\n", prettyJSON)
					return
				}
			}
		}
	}
}
