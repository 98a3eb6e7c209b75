package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"reviewloop/internal/app/reviewloop/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	campaignKeyPrefix = "campaign:"
	sessionKeyPrefix  = "session:"
)

// RedisClient хранит кеш кампаний и сессии воркфлоу.
// Сессии живут только пока их продлевают переходы между шагами -
// брошенный черновик исчезает вместе с TTL
type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// SetCampaign кеширует кампанию вместе с товарами
func (r *RedisClient) SetCampaign(ctx context.Context, campaign *entity.Campaign, ttl time.Duration) error {
	data, err := json.Marshal(campaign)
	if err != nil {
		return fmt.Errorf("failed to marshal campaign: %w", err)
	}

	key := campaignKeyPrefix + campaign.ID.String()
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set campaign in cache: %w", err)
	}

	return nil
}

// GetCampaign возвращает кампанию из кеша; (nil, nil) при промахе
func (r *RedisClient) GetCampaign(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	data, err := r.client.Get(ctx, campaignKeyPrefix+id.String()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get campaign from cache: %w", err)
	}

	var campaign entity.Campaign
	if err := json.Unmarshal(data, &campaign); err != nil {
		return nil, fmt.Errorf("failed to unmarshal campaign: %w", err)
	}

	return &campaign, nil
}

// SaveSession сохраняет сессию и продлевает ее TTL
func (r *RedisClient) SaveSession(ctx context.Context, session *entity.WorkflowSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKeyPrefix+session.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession возвращает сессию; (nil, nil) если она не существует или истекла
func (r *RedisClient) GetSession(ctx context.Context, id string) (*entity.WorkflowSession, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session entity.WorkflowSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// DeleteSession удаляет сессию (завершение или отказ от воркфлоу)
func (r *RedisClient) DeleteSession(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
