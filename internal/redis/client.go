package redis

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"
)

const channelPrefix = "rfq:"

// Client wraps the Redis connection used as the bid-broadcast transport.
// Each RFQ maps to one pub/sub channel named "rfq:<id>".
type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// PublishBid publishes a serialized bid event to the RFQ's channel.
// Best-effort: callers must not roll back committed state on failure.
func (c *Client) PublishBid(ctx context.Context, rfqID uint, payload []byte) error {
	channel := channelPrefix + strconv.FormatUint(uint64(rfqID), 10)
	return c.rdb.Publish(ctx, channel, payload).Err()
}

// Message is one bid event received from the transport.
type Message struct {
	RFQID   uint
	Payload []byte
}

// Subscribe pattern-subscribes to every RFQ channel and forwards events to
// the returned channel until ctx is cancelled. Run the pump in a goroutine.
func (c *Client) Subscribe(ctx context.Context) (<-chan *Message, error) {
	pubsub := c.rdb.PSubscribe(ctx, channelPrefix+"*")

	// Force the subscription to be established before returning.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan *Message)
	go func() {
		defer close(out)
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				rfqID, err := parseChannel(msg.Channel)
				if err != nil {
					log.Printf("Warning: ignoring message on channel %s: %v", msg.Channel, err)
					continue
				}
				out <- &Message{RFQID: rfqID, Payload: []byte(msg.Payload)}
			}
		}
	}()
	return out, nil
}

func parseChannel(channel string) (uint, error) {
	raw := strings.TrimPrefix(channel, channelPrefix)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad channel name: %w", err)
	}
	return uint(id), nil
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
