package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/deliverly/ordertray/internal/domain"
	"github.com/deliverly/ordertray/internal/events"
	"github.com/deliverly/ordertray/internal/logging"
)

// Channel is one live bidirectional connection to the event server.
// Events() is closed when the transport dies; the manager decides whether to
// reconnect.
type Channel interface {
	Connect(ctx context.Context, token string, viewer domain.Viewer) error
	Events() <-chan events.Event
	Send(kind string, payload any) error
	Ping(ctx context.Context) error
	Close() error
}

// ChannelFactory builds a fresh Channel per connection attempt.
type ChannelFactory func() Channel

const (
	connectTimeout = 5 * time.Second
	sendTimeout    = 2 * time.Second
)

// RedisChannel carries events over redis pub/sub: the server publishes
// per-viewer and broadcast event frames, the client publishes acks and room
// control frames.
type RedisChannel struct {
	rdb        *redis.Client
	prefix     string
	instanceID string

	pubsub *redis.PubSub
	out    chan events.Event
	cancel context.CancelFunc
}

// NewRedisChannel creates a channel over the given client. The prefix
// namespaces every key and pub/sub channel.
func NewRedisChannel(rdb *redis.Client, prefix string) *RedisChannel {
	if prefix == "" {
		prefix = "ordertray"
	}
	return &RedisChannel{
		rdb:        rdb,
		prefix:     prefix,
		instanceID: uuid.NewString(),
	}
}

// controlFrame is the outbound envelope for acks and room operations.
type controlFrame struct {
	Type     string `json:"type"`
	Instance string `json:"instance"`
	Token    string `json:"token,omitempty"`
	Payload  any    `json:"payload,omitempty"`
}

func (c *RedisChannel) eventChannels(viewer domain.Viewer) []string {
	return []string{
		fmt.Sprintf("%s:events:%s", c.prefix, viewer.ID),
		fmt.Sprintf("%s:events:all", c.prefix),
	}
}

func (c *RedisChannel) controlChannel() string {
	return fmt.Sprintf("%s:control", c.prefix)
}

// Connect authenticates against the server and subscribes to the viewer's
// event channels.
func (c *RedisChannel) Connect(ctx context.Context, token string, viewer domain.Viewer) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("realtime channel: reach server: %w", err)
	}

	readCtx, readCancel := context.WithCancel(context.Background())
	c.cancel = readCancel
	c.pubsub = c.rdb.Subscribe(readCtx, c.eventChannels(viewer)...)
	if _, err := c.pubsub.Receive(ctx); err != nil {
		readCancel()
		_ = c.pubsub.Close()
		return fmt.Errorf("realtime channel: subscribe: %w", err)
	}

	// Announce the session so the server can bind this instance to the
	// viewer's token.
	hello := controlFrame{Type: "session:hello", Instance: c.instanceID, Token: token}
	if err := c.publish(ctx, hello); err != nil {
		readCancel()
		_ = c.pubsub.Close()
		return err
	}

	c.out = make(chan events.Event, 64)
	go c.readLoop(readCtx)
	return nil
}

func (c *RedisChannel) readLoop(ctx context.Context) {
	defer close(c.out)
	in := c.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-in:
			if !ok {
				return
			}
			ev, err := events.Decode([]byte(msg.Payload))
			if err != nil {
				// Malformed frames are dropped, not fatal.
				logging.Debug("dropping undecodable frame", "channel", msg.Channel, "error", err)
				continue
			}
			select {
			case c.out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Events returns the inbound event stream. Closed when the transport dies.
func (c *RedisChannel) Events() <-chan events.Event {
	return c.out
}

// Send publishes a control frame to the server.
func (c *RedisChannel) Send(kind string, payload any) error {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	return c.publish(ctx, controlFrame{Type: kind, Instance: c.instanceID, Payload: payload})
}

func (c *RedisChannel) publish(ctx context.Context, frame controlFrame) error {
	encoded, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("realtime channel: encode %s frame: %w", frame.Type, err)
	}
	if err := c.rdb.Publish(ctx, c.controlChannel(), encoded).Err(); err != nil {
		return fmt.Errorf("realtime channel: publish %s frame: %w", frame.Type, err)
	}
	return nil
}

// Ping checks transport liveness.
func (c *RedisChannel) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("realtime channel: ping: %w", err)
	}
	return nil
}

// Close tears the subscription down. The read loop closes Events().
func (c *RedisChannel) Close() error {
	if c.cancel != nil {
		c.cancel()
	}
	if c.pubsub != nil {
		if err := c.pubsub.Close(); err != nil {
			return fmt.Errorf("realtime channel: close subscription: %w", err)
		}
	}
	return nil
}
