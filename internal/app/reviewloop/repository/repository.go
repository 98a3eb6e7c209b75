package repository

import (
	"context"
	"errors"

	"reviewloop/internal/app/reviewloop/entity"

	"github.com/google/uuid"
)

var (
	// Стандартные ошибки репозиториев для обработки в service layer
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrDuplicateOrder   = errors.New("order id already used for this campaign")
)

// CampaignRepository определяет методы чтения кампаний и их товаров.
// Воркфлоу кампании не изменяет - только читает
type CampaignRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Campaign, error)
}

// ReviewRepository определяет методы для работы с отзывами в PostgreSQL
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	ExistsByCampaignOrder(ctx context.Context, campaignID uuid.UUID, orderID string) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	GetByCampaignID(ctx context.Context, campaignID uuid.UUID) ([]entity.Review, error)
}
