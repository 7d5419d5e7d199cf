package lock

import (
	"context"

	"github.com/redis/rueidis"
)

// RedisLocker holds a single token in a redis list. Acquire pops it,
// Release pushes it back; an empty list means another process is writing.
type RedisLocker struct {
	client rueidis.Client
	key    string
}

func NewRedisLocker(client rueidis.Client, key string) *RedisLocker {
	return &RedisLocker{
		client: client,
		key:    key,
	}
}

func (r *RedisLocker) Acquire(ctx context.Context) error {
	cmd := r.client.B().Lpop().Key(r.key).Build()
	result := r.client.Do(ctx, cmd)

	if err := result.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return ErrLockHeld
		}
		return err
	}

	return nil
}

func (r *RedisLocker) Release(ctx context.Context) error {
	cmd := r.client.B().Rpush().Key(r.key).Element("1").Build()
	return r.client.Do(ctx, cmd).Error()
}

// Initialize resets the list to exactly one token. Run once at startup.
func (r *RedisLocker) Initialize(ctx context.Context) error {
	delCmd := r.client.B().Del().Key(r.key).Build()
	if err := r.client.Do(ctx, delCmd).Error(); err != nil {
		return err
	}

	return r.Release(ctx)
}
