package mq

import (
	"context"
	"encoding/json"
	"log"

	"agrimart/models"
	"agrimart/rdx"
)

const indexChannel = "indexing-events"

// Emit publishes an entity-change event to the indexing channel. It is
// fire-and-forget: failures are logged and never surfaced to the
// request that triggered them.
func Emit(eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[mq] %s: marshal failed: %v", eventName, err)
		return
	}
	if err := rdx.Conn.Publish(context.Background(), indexChannel, data).Err(); err != nil {
		log.Printf("[mq] %s: publish failed: %v", eventName, err)
	}
}

// StartIndexingWorker consumes indexing events and keeps the redis
// search index current. Run in its own goroutine from main.
func StartIndexingWorker(index func(ctx context.Context, event models.Index) error) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, indexChannel)
	ch := sub.Channel()

	log.Println("[mq] indexing worker listening")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[mq] bad event payload: %v", err)
			continue
		}
		if err := index(ctx, event); err != nil {
			log.Printf("[mq] index %s/%s failed: %v", event.EntityType, event.EntityId, err)
		}
	}
}
