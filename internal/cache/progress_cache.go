package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"careassess/internal/model"
)

// ProgressCache holds the last computed completion result per assessment
// for cheap list screens. Display cache only: completion is always
// re-derived on mutation, never read back as the source of truth.
type ProgressCache interface {
	Set(ctx context.Context, assessmentID string, result model.CompletionResult) error
	Get(ctx context.Context, assessmentID string) (*model.CompletionResult, error)
	Delete(ctx context.Context, assessmentID string) error
}

type progressCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProgressCache creates a new progress cache
func NewProgressCache(client *redis.Client) ProgressCache {
	return &progressCache{
		client: client,
		ttl:    10 * time.Minute,
	}
}

func (c *progressCache) key(assessmentID string) string {
	return "assessment:" + assessmentID + ":progress"
}

func (c *progressCache) Set(ctx context.Context, assessmentID string, result model.CompletionResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(assessmentID), data, c.ttl).Err()
}

func (c *progressCache) Get(ctx context.Context, assessmentID string) (*model.CompletionResult, error) {
	data, err := c.client.Get(ctx, c.key(assessmentID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result model.CompletionResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *progressCache) Delete(ctx context.Context, assessmentID string) error {
	return c.client.Del(ctx, c.key(assessmentID)).Err()
}
