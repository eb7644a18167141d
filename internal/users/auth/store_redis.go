// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// # Login Throttle

// RedisThrottleRepository implements ThrottleRepository using Redis.
//
// Each email+IP pair gets a counter key that expires with the window, so
// the count resets naturally without a cleanup job.
type RedisThrottleRepository struct {
	client *redis.Client
}

// NewThrottleRepository creates a new Redis-backed ThrottleRepository.
func NewThrottleRepository(client *redis.Client) *RedisThrottleRepository {
	return &RedisThrottleRepository{client: client}
}

/*
Hit increments the failure counter for the key.

Description: INCR followed by EXPIRE NX, so the window starts on the first
failure and is never extended by later ones.

Parameters:
  - context: context.Context
  - key: string (email+IP pair)
  - window: time.Duration

Returns:
  - int: Attempts recorded inside the current window, including this one
  - error: Execution errors
*/
func (repository *RedisThrottleRepository) Hit(context context.Context, key string, window time.Duration) (int, error) {

	// Use constants for key prefix
	redisKey := fmt.Sprintf("auth:login_throttle:%s", key)

	// Increment the counter
	count, err := repository.client.Incr(context, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_throttle_hit_failed: %w", err)
	}

	// Start the window on the first failure only
	if count == 1 {
		if err := repository.client.Expire(context, redisKey, window).Err(); err != nil {
			return int(count), fmt.Errorf("redis_throttle_expire_failed: %w", err)
		}
	}

	return int(count), nil
}

/*
Reset clears the failure counter after a successful login.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisThrottleRepository) Reset(context context.Context, key string) error {

	// Use constants for key prefix
	redisKey := fmt.Sprintf("auth:login_throttle:%s", key)

	// Delete the counter from Redis
	if err := repository.client.Del(context, redisKey).Err(); err != nil {
		return fmt.Errorf("redis_throttle_reset_failed: %w", err)
	}

	// Return nil on success
	return nil
}
