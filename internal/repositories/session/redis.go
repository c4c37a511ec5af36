package session

import (
	"context"
	"errors"

	redis "github.com/redis/go-redis/v9"

	apperrors "github.com/KirkDiggler/calamity-catalog/internal/errors"
	redisclient "github.com/KirkDiggler/calamity-catalog/internal/redis"
)

// DefaultKeyPrefix namespaces credential keys in a shared redis
const DefaultKeyPrefix = "calamity:session:"

type redisRepository struct {
	client    redisclient.Client
	keyPrefix string
}

// RedisConfig contains configuration for the Redis session repository.
type RedisConfig struct {
	Client    redisclient.Client
	KeyPrefix string
}

// Validate validates the RedisConfig and sets defaults if not provided.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return apperrors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return apperrors.InvalidArgument("client cannot be nil")
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}
	return nil
}

// NewRedis creates a Redis-backed session repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client:    cfg.Client,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

func (r *redisRepository) key(name string) string {
	return r.keyPrefix + name
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidArgument(errNameEmpty)
	}

	value, err := r.client.Get(ctx, r.key(input.Name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFoundf("credential %s not found", input.Name)
		}
		return nil, apperrors.Wrapf(err, "failed to get credential %s", input.Name)
	}

	return &GetOutput{Name: input.Name, Value: value}, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if err := validatePut(input); err != nil {
		return nil, err
	}

	if err := r.client.Set(ctx, r.key(input.Name), input.Value, 0).Err(); err != nil {
		return nil, apperrors.Wrapf(err, "failed to store credential %s", input.Name)
	}

	return &PutOutput{}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidArgument(errNameEmpty)
	}

	removed, err := r.client.Del(ctx, r.key(input.Name)).Result()
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to delete credential %s", input.Name)
	}

	return &DeleteOutput{Existed: removed > 0}, nil
}
