package service

import (
	"context"
	"time"

	"reviewloop/internal/app/reviewloop/entity"

	"github.com/google/uuid"
)

// CampaignResolver загружает кампанию с привязанными товарами.
// Воркфлоу не может стартовать без разрешенной кампании
type CampaignResolver interface {
	Resolve(ctx context.Context, id uuid.UUID) (*entity.Campaign, error)
}

// CampaignCache - кеш кампаний (Redis)
type CampaignCache interface {
	GetCampaign(ctx context.Context, id uuid.UUID) (*entity.Campaign, error)
	SetCampaign(ctx context.Context, campaign *entity.Campaign, ttl time.Duration) error
}

// SessionStore хранит сессии воркфлоу. GetSession возвращает (nil, nil)
// для несуществующей или истекшей сессии
type SessionStore interface {
	SaveSession(ctx context.Context, session *entity.WorkflowSession, ttl time.Duration) error
	GetSession(ctx context.Context, id string) (*entity.WorkflowSession, error)
	DeleteSession(ctx context.Context, id string) error
}
