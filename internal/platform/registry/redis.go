package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MichalMitros/catalog-importer/internal/platform"
	"github.com/MichalMitros/catalog-importer/internal/platform/models"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTTL is time after which tasks stored in Redis expire.
	DefaultTTL    = 7 * 24 * time.Hour
	keyPrefix     = "import_task:"
	logsKeySuffix = ":logs"
)

// Redis is task registry shared between service instances. Task is stored as JSON
// and its logs as a list, both expiring after TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis returns new Redis.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Redis{
		client: client,
		ttl:    ttl,
	}
}

// CreateTask stores the task. It fails when task with the same ID exists.
func (r *Redis) CreateTask(ctx context.Context, task *models.ImportTask) error {
	data, err := encodeTask(task)
	if err != nil {
		return err
	}

	ok, err := r.client.SetNX(ctx, taskKey(task.ID), data, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("can't create task: %w", err)
	}
	if !ok {
		return fmt.Errorf("can't create task %q: already exists", task.ID)
	}

	return nil
}

// GetTask returns the task with its logs or platform.ErrTaskNotFound.
func (r *Redis) GetTask(ctx context.Context, id string) (*models.ImportTask, error) {
	data, err := r.client.Get(ctx, taskKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, platform.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't get task: %w", err)
	}

	var task models.ImportTask
	if err = json.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("can't decode task: %w", err)
	}

	logs, err := r.client.LRange(ctx, logsKey(id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("can't get task logs: %w", err)
	}
	task.Logs = logs

	return &task, nil
}

// SaveTask overwrites task status, progress, message and result.
// Save of a task which expired or was never created fails with platform.ErrTaskNotFound.
func (r *Redis) SaveTask(ctx context.Context, task *models.ImportTask) error {
	data, err := encodeTask(task)
	if err != nil {
		return err
	}

	key := taskKey(task.ID)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if exists == 0 {
			return platform.ErrTaskNotFound
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, redis.KeepTTL)
			return nil
		})

		return err
	}, key)
	if errors.Is(err, platform.ErrTaskNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("can't save task: %w", err)
	}

	return nil
}

// AppendLog appends line to task logs. Task existence is not checked.
func (r *Redis) AppendLog(ctx context.Context, id string, line string) error {
	key := logsKey(id)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, line)
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("can't append task log: %w", err)
	}

	return nil
}

func encodeTask(task *models.ImportTask) ([]byte, error) {
	stored := task.Clone()
	stored.Logs = nil

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("can't encode task: %w", err)
	}

	return data, nil
}

func taskKey(id string) string {
	return keyPrefix + id
}

func logsKey(id string) string {
	return keyPrefix + id + logsKeySuffix
}
