package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reviewloop/internal/app/reviewloop/entity"
	"reviewloop/internal/app/reviewloop/repository"
	"reviewloop/pkg/logger"
	"reviewloop/pkg/metrics"

	"github.com/google/uuid"
)

// CampaignService разрешает кампании для входа в воркфлоу.
// Чтение без мутаций, результат кешируется в Redis на время сессии
type CampaignService struct {
	campaignRepo repository.CampaignRepository
	cache        CampaignCache
	cacheTTL     time.Duration
}

// NewCampaignService создает новый сервис кампаний
func NewCampaignService(campaignRepo repository.CampaignRepository, cache CampaignCache, cacheTTL time.Duration) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

// Resolve загружает кампанию вместе с товарами.
// Несуществующая или выключенная кампания - ErrCampaignNotFound,
// воркфлоу для нее стартовать нельзя
func (s *CampaignService) Resolve(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	if s.cache != nil {
		cached, err := s.cache.GetCampaign(ctx, id)
		if err != nil {
			// Кеш не критичен - при ошибке идем в базу
			logger.Warn().Err(err).Str("campaign_id", id.String()).Msg("Campaign cache read failed")
		}
		if cached != nil {
			metrics.RecordCacheHit("reviewloop", "campaign")
			return cached, nil
		}
		metrics.RecordCacheMiss("reviewloop", "campaign")
	}

	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to resolve campaign: %w", err)
	}

	if !campaign.IsActive {
		return nil, ErrCampaignNotFound
	}

	if s.cache != nil {
		if err := s.cache.SetCampaign(ctx, campaign, s.cacheTTL); err != nil {
			logger.Warn().Err(err).Str("campaign_id", id.String()).Msg("Campaign cache write failed")
		}
	}

	return campaign, nil
}
