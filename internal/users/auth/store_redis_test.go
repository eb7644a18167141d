// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestThrottle(t *testing.T) (*RedisThrottleRepository, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewThrottleRepository(client), server
}

func TestRedisThrottle(t *testing.T) {
	t.Run("counts hits per key", func(t *testing.T) {
		throttle, _ := newTestThrottle(t)

		for expected := 1; expected <= 3; expected++ {
			count, err := throttle.Hit(context.Background(), "a@example.com:1.2.3.4", LoginThrottleWindow)
			require.NoError(t, err)
			assert.Equal(t, expected, count)
		}

		// A different email+IP pair has its own counter
		count, err := throttle.Hit(context.Background(), "b@example.com:1.2.3.4", LoginThrottleWindow)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("window expiry clears the counter", func(t *testing.T) {
		throttle, server := newTestThrottle(t)

		_, err := throttle.Hit(context.Background(), "c@example.com:1.2.3.4", LoginThrottleWindow)
		require.NoError(t, err)

		// miniredis clock control: jump past the window
		server.FastForward(LoginThrottleWindow + time.Second)

		count, err := throttle.Hit(context.Background(), "c@example.com:1.2.3.4", LoginThrottleWindow)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("reset clears the counter immediately", func(t *testing.T) {
		throttle, _ := newTestThrottle(t)

		for hit := 0; hit < 5; hit++ {
			_, err := throttle.Hit(context.Background(), "d@example.com:1.2.3.4", LoginThrottleWindow)
			require.NoError(t, err)
		}

		require.NoError(t, throttle.Reset(context.Background(), "d@example.com:1.2.3.4"))

		count, err := throttle.Hit(context.Background(), "d@example.com:1.2.3.4", LoginThrottleWindow)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
