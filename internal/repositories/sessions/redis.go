package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/shadowdark-gm/internal/domain/session"
	gmerr "github.com/KirkDiggler/shadowdark-gm/internal/errors"
)

const sessionIndexKey = "gm:sessions"

func sessionKey(sessionID string) string {
	return fmt.Sprintf("gm:session:%s", sessionID)
}

// redisRepository persists session state as JSON in Redis, with a set
// index of known session IDs for listing
type redisRepository struct {
	client redis.UniversalClient
}

// RedisRepositoryConfig holds configuration for the Redis repository
type RedisRepositoryConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a Redis-backed session state repository
func NewRedisRepository(cfg *RedisRepositoryConfig) (Repository, error) {
	if cfg == nil || cfg.Client == nil {
		return nil, gmerr.InvalidArgument("redis client is required")
	}
	return &redisRepository{client: cfg.Client}, nil
}

// Get retrieves the state for a session
func (r *redisRepository) Get(ctx context.Context, sessionID string) (*session.State, error) {
	data, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gmerr.NotFoundf("session not found: %s", sessionID)
		}
		return nil, gmerr.Wrapf(err, "failed to get session %s from redis", sessionID)
	}

	var state session.State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, gmerr.Wrapf(err, "failed to unmarshal session %s", sessionID)
	}
	return &state, nil
}

// Save stores the state for a session and indexes its ID
func (r *redisRepository) Save(ctx context.Context, state *session.State) error {
	if state == nil || state.SessionID == "" {
		return gmerr.InvalidArgument("state requires a session ID")
	}

	data, err := json.Marshal(state)
	if err != nil {
		return gmerr.Wrapf(err, "failed to marshal session %s", state.SessionID)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, sessionKey(state.SessionID), data, 0)
	pipe.SAdd(ctx, sessionIndexKey, state.SessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return gmerr.Wrapf(err, "failed to save session %s to redis", state.SessionID)
	}
	return nil
}

// Delete removes the state for a session and unindexes its ID
func (r *redisRepository) Delete(ctx context.Context, sessionID string) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, sessionKey(sessionID))
	pipe.SRem(ctx, sessionIndexKey, sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return gmerr.Wrapf(err, "failed to delete session %s from redis", sessionID)
	}
	return nil
}

// List retrieves the state of every indexed session, fetching keys in
// parallel
func (r *redisRepository) List(ctx context.Context) ([]*session.State, error) {
	sessionIDs, err := r.client.SMembers(ctx, sessionIndexKey).Result()
	if err != nil {
		return nil, gmerr.Wrap(err, "failed to list sessions from redis")
	}

	states := make([]*session.State, len(sessionIDs))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range sessionIDs {
		i, id := i, id
		g.Go(func() error {
			state, err := r.Get(ctx, id)
			if err != nil {
				return err
			}
			states[i] = state
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return states, nil
}
