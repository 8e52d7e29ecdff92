package notifications

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_PublishUser_NilRedis(t *testing.T) {
	// Notifier with nil Redis should return nil error (fail-open/noop)
	n := NewNotifier(nil)
	assert.NoError(t, n.PublishUser(context.Background(), 1, "test payload"))
	assert.NoError(t, n.PublishBroadcast(context.Background(), "test payload"))
	assert.NoError(t, n.StartPatternSubscriber(context.Background(), nil))
}

func TestUserChannel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		userID   uint
		expected string
	}{
		{1, "notifications:user:1"},
		{100, "notifications:user:100"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, UserChannel(tt.userID))
	}
}

func TestNotifier_PatternSubscriber(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var received int32
	payloads := make(chan string, 4)
	require.NoError(t, n.StartPatternSubscriber(ctx, func(channel, payload string) {
		atomic.AddInt32(&received, 1)
		payloads <- channel + "|" + payload
	}))

	assert.Eventually(t, func() bool {
		require.NoError(t, n.PublishUser(ctx, 7, "hi"))
		return atomic.LoadInt32(&received) > 0
	}, testEventuallyTimeout, testPollInterval)

	msg := <-payloads
	assert.Equal(t, "notifications:user:7|hi", msg)

	// Broadcast channel is covered by the same subscriber
	require.NoError(t, n.PublishBroadcast(ctx, "all"))
	assert.Eventually(t, func() bool {
		select {
		case msg := <-payloads:
			return msg == "notifications:broadcast|all"
		default:
			return false
		}
	}, testEventuallyTimeout, testPollInterval)
}

func TestNotifier_SubscriberSurvivesPanickingHandler(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int32
	require.NoError(t, n.StartPatternSubscriber(ctx, func(_, _ string) {
		if atomic.AddInt32(&calls, 1) == 1 {
			panic("boom")
		}
	}))

	assert.Eventually(t, func() bool {
		require.NoError(t, n.PublishUser(ctx, 1, "x"))
		return atomic.LoadInt32(&calls) >= 2
	}, testEventuallyTimeout, testPollInterval)
}
