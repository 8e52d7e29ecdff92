package notifications

import (
	"context"
	"log"
	"runtime/debug"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	broadcastChannel  = "notifications:broadcast"
	userChannelPrefix = "notifications:user:"
)

// Notifier publishes notification payloads into Redis channels. The hub on
// each server instance subscribes to these channels, so a publish reaches
// connections held by any instance. All methods are no-ops when Redis is
// not configured.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a Notifier backed by the given Redis client. A nil
// client is allowed and turns every publish into a no-op.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return userChannelPrefix + strconv.FormatUint(uint64(userID), 10)
}

// PublishUser sends a payload to a single user's channel.
func (n *Notifier) PublishUser(
	ctx context.Context, userID uint, payload string,
) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// PublishBroadcast sends a payload to every connected user.
func (n *Notifier) PublishBroadcast(ctx context.Context, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, broadcastChannel, payload).Err()
}

// StartPatternSubscriber subscribes to the per-user pattern and the broadcast
// channel, invoking onMessage for every received message until ctx is done.
// A panic inside onMessage is logged and must not kill the subscription loop.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, userChannelPrefix+"*", broadcastChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				deliver(onMessage, msg)
			}
		}
	}()

	return nil
}

func deliver(onMessage func(channel, payload string), msg *redis.Message) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC in notification subscriber: %v\n%s", r, debug.Stack())
		}
	}()
	onMessage(msg.Channel, msg.Payload)
}
