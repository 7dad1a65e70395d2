package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/isdelr/resume-builder-be/internal/models"
)

const redisKeyPrefix = "resume:draft:"

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisStore keeps drafts as JSON values whose TTL is refreshed on every write.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time
}

// NewRedisStore creates a RedisStore on an existing client.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl, now: time.Now}
}

func (s *RedisStore) Create(ctx context.Context, email string) (models.Draft, error) {
	now := s.now().UTC()
	d := models.Draft{
		ID:        uuid.New().String(),
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.save(ctx, d); err != nil {
		return models.Draft{}, err
	}
	return d, nil
}

func (s *RedisStore) Get(ctx context.Context, email, id string) (models.Draft, error) {
	return s.load(ctx, email, id)
}

func (s *RedisStore) AddEducation(ctx context.Context, email, id string, e models.Education) (models.Draft, error) {
	return s.mutate(ctx, email, id, func(d *models.Draft) { d.Education = append(d.Education, e) })
}

func (s *RedisStore) AddExperience(ctx context.Context, email, id string, e models.Experience) (models.Draft, error) {
	return s.mutate(ctx, email, id, func(d *models.Draft) { d.Experience = append(d.Experience, e) })
}

func (s *RedisStore) AddProject(ctx context.Context, email, id string, p models.Project) (models.Draft, error) {
	return s.mutate(ctx, email, id, func(d *models.Draft) { d.Projects = append(d.Projects, p) })
}

func (s *RedisStore) Delete(ctx context.Context, email, id string) error {
	if _, err := s.load(ctx, email, id); err != nil {
		return err
	}
	if err := s.rdb.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete draft: %w: %v", ErrUnavailable, err)
	}
	return nil
}

// mutate runs a read-modify-write guarded by WATCH so concurrent appends to
// the same draft are not lost.
func (s *RedisStore) mutate(ctx context.Context, email, id string, fn func(*models.Draft)) (models.Draft, error) {
	key := redisKeyPrefix + id
	var out models.Draft

	txf := func(tx *redis.Tx) error {
		d, err := s.loadWith(ctx, tx, email, id)
		if err != nil {
			return err
		}
		fn(&d)
		d.UpdatedAt = s.now().UTC()

		payload, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("encode draft: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		out = d
		return nil
	}

	for attempt := 0; attempt < 3; attempt++ {
		err := s.rdb.Watch(ctx, txf, key)
		switch {
		case err == nil:
			return out, nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrCorrupt), errors.Is(err, ErrUnavailable):
			return models.Draft{}, err
		default:
			return models.Draft{}, fmt.Errorf("update draft: %w: %v", ErrUnavailable, err)
		}
	}
	return models.Draft{}, fmt.Errorf("update draft: %w: too much contention", ErrUnavailable)
}

func (s *RedisStore) save(ctx context.Context, d models.Draft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+d.ID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *RedisStore) load(ctx context.Context, email, id string) (models.Draft, error) {
	return s.loadWith(ctx, s.rdb, email, id)
}

func (s *RedisStore) loadWith(ctx context.Context, c getter, email, id string) (models.Draft, error) {
	raw, err := c.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Draft{}, ErrNotFound
		}
		return models.Draft{}, fmt.Errorf("load draft: %w: %v", ErrUnavailable, err)
	}

	var d models.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return models.Draft{}, fmt.Errorf("%w %s: %v", ErrCorrupt, id, err)
	}
	if d.Email != email {
		return models.Draft{}, ErrNotFound
	}
	return d, nil
}
