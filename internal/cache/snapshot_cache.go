package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"careassess/internal/model"
)

// SnapshotCache keeps the latest in-progress answer snapshot per
// assessment in Redis so an interrupted editing session can be recovered
// without waiting for the next Mongo write.
type SnapshotCache interface {
	Set(ctx context.Context, assessmentID string, answers model.AssessmentAnswers) error
	Get(ctx context.Context, assessmentID string) (model.AssessmentAnswers, error)
	Delete(ctx context.Context, assessmentID string) error
}

type snapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache creates a new snapshot cache
func NewSnapshotCache(client *redis.Client) SnapshotCache {
	return &snapshotCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *snapshotCache) key(assessmentID string) string {
	return "assessment:" + assessmentID + ":snapshot"
}

func (c *snapshotCache) Set(ctx context.Context, assessmentID string, answers model.AssessmentAnswers) error {
	data, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(assessmentID), data, c.ttl).Err()
}

func (c *snapshotCache) Get(ctx context.Context, assessmentID string) (model.AssessmentAnswers, error) {
	data, err := c.client.Get(ctx, c.key(assessmentID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var answers model.AssessmentAnswers
	if err := json.Unmarshal([]byte(data), &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func (c *snapshotCache) Delete(ctx context.Context, assessmentID string) error {
	return c.client.Del(ctx, c.key(assessmentID)).Err()
}
