package repository

import (
	"context"
	"errors"

	"reviewloop/internal/app/reviewloop/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type campaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository создает новый репозиторий кампаний
func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

// GetByID получает кампанию вместе с привязанными товарами
// Товары подгружаются через таблицу связей campaign_products
func (r *campaignRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	var campaign entity.Campaign
	result := r.db.WithContext(ctx).Preload("Products").First(&campaign, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, result.Error
	}

	return &campaign, nil
}
