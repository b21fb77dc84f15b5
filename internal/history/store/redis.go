package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"regent/internal/history/models"
	"regent/pkg/platform/sentinel"
)

// Redis persists analyses as JSON values with a per-subject index set, so
// listing never scans the keyspace.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func analysisKey(subject, id string) string {
	return "regent:analysis:" + subject + ":" + id
}

func indexKey(subject string) string {
	return "regent:analyses:" + subject
}

func (s *Redis) Save(ctx context.Context, a models.Analysis) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, analysisKey(a.Subject, a.ID), payload, 0)
	pipe.SAdd(ctx, indexKey(a.Subject), a.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	return nil
}

func (s *Redis) Get(ctx context.Context, subject, id string) (models.Analysis, error) {
	raw, err := s.client.Get(ctx, analysisKey(subject, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Analysis{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Analysis{}, fmt.Errorf("get analysis: %w", err)
	}
	var a models.Analysis
	if err := json.Unmarshal(raw, &a); err != nil {
		return models.Analysis{}, fmt.Errorf("unmarshal analysis: %w", err)
	}
	a.Subject = subject
	return a, nil
}

// List returns the subject's analyses, newest first.
func (s *Redis) List(ctx context.Context, subject string) ([]models.Analysis, error) {
	ids, err := s.client.SMembers(ctx, indexKey(subject)).Result()
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	out := make([]models.Analysis, 0, len(ids))
	for _, id := range ids {
		a, err := s.Get(ctx, subject, id)
		if errors.Is(err, sentinel.ErrNotFound) {
			// Index entry outlived its value; self-heal.
			s.client.SRem(ctx, indexKey(subject), id)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *Redis) Delete(ctx context.Context, subject, id string) error {
	removed, err := s.client.Del(ctx, analysisKey(subject, id)).Result()
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	s.client.SRem(ctx, indexKey(subject), id)
	if removed == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
