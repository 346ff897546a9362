package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// StateMessage is the payload published for each state change.
type StateMessage struct {
	EventID     string    `json:"event_id"`
	PublishedAt time.Time `json:"published_at"`
	View        ViewState `json:"view"`
}

// RedisNotifier publishes view snapshots to a Redis pub/sub channel.
type RedisNotifier struct {
	client  *redis.Client
	channel string
	timeout time.Duration
}

func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel, timeout: 2 * time.Second}
}

// ConnectRedis creates a client for addr and checks that it answers.
func ConnectRedis(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func (n *RedisNotifier) Listener() Listener {
	return n.Publish
}

func (n *RedisNotifier) Publish(view ViewState) {
	payload, err := encodeStateMessage(view, time.Now())
	if err != nil {
		log.Printf("Failed to encode state message: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		log.Printf("Failed to publish state to %s: %v", n.channel, err)
	}
}

func encodeStateMessage(view ViewState, now time.Time) ([]byte, error) {
	return json.Marshal(StateMessage{
		EventID:     uuid.New().String(),
		PublishedAt: now.UTC(),
		View:        view,
	})
}
