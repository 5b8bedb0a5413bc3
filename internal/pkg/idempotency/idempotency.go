// Package idempotency deduplicates requests carrying an idempotency key,
// backed by redis so the guarantee holds across replicas.
package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
)

const (
	statusInProgress = "in_progress"
	statusCompleted  = "completed"
)

type record struct {
	Status string          `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
}

// StateTracker stores per-key request state with a TTL.
type StateTracker struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewStateTracker creates a tracker. Keys expire after ttl, which bounds
// how long a retry returns the cached result.
func NewStateTracker(client *redis.Client, prefix string, ttl time.Duration) *StateTracker {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &StateTracker{client: client, prefix: prefix, ttl: ttl}
}

func (t *StateTracker) key(k string) string {
	return fmt.Sprintf("%s:idem:%s", t.prefix, k)
}

// Acquire claims the key. It returns the cached result when a completed
// record exists, and a conflict error when another request is in flight.
func (t *StateTracker) Acquire(ctx context.Context, key string) (json.RawMessage, error) {
	raw, err := json.Marshal(record{Status: statusInProgress})
	if err != nil {
		return nil, goerror.NewServer(err)
	}

	ok, err := t.client.SetNX(ctx, t.key(key), raw, t.ttl).Result()
	if err != nil {
		return nil, goerror.NewServer(err)
	}
	if ok {
		return nil, nil
	}

	existing, err := t.client.Get(ctx, t.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// record expired between SetNX and Get, let the caller retry
			return nil, goerror.NewBusiness("request is already being processed", goerror.CodeConflict)
		}

		return nil, goerror.NewServer(err)
	}

	var rec record
	if err := json.Unmarshal(existing, &rec); err != nil {
		return nil, goerror.NewServer(err)
	}

	if rec.Status == statusCompleted {
		return rec.Result, nil
	}

	return nil, goerror.NewBusiness("request is already being processed", goerror.CodeConflict)
}

// MarkCompleted stores the result against the key.
func (t *StateTracker) MarkCompleted(ctx context.Context, key string, result any) error {
	res, err := json.Marshal(result)
	if err != nil {
		return goerror.NewServer(err)
	}

	raw, err := json.Marshal(record{Status: statusCompleted, Result: res})
	if err != nil {
		return goerror.NewServer(err)
	}

	return t.client.Set(ctx, t.key(key), raw, t.ttl).Err()
}

// MarkFailed releases the key so the client can retry.
func (t *StateTracker) MarkFailed(ctx context.Context, key string) error {
	return t.client.Del(ctx, t.key(key)).Err()
}

// Exec runs fn under the idempotency guarantee for key. An empty key skips
// tracking entirely.
func (t *StateTracker) Exec(ctx context.Context, key string, out any, fn func(ctx context.Context) (any, error)) (any, error) {
	if key == "" {
		return fn(ctx)
	}

	cached, err := t.Acquire(ctx, key)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		if err := json.Unmarshal(cached, out); err != nil {
			return nil, goerror.NewServer(err)
		}

		return out, nil
	}

	result, err := fn(ctx)
	if err != nil {
		if mErr := t.MarkFailed(ctx, key); mErr != nil {
			return nil, goerror.NewServer(errors.Join(err, mErr))
		}

		return nil, err
	}

	if err := t.MarkCompleted(ctx, key, result); err != nil {
		return nil, goerror.NewServer(err)
	}

	return result, nil
}
