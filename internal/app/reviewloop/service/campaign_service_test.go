package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"reviewloop/internal/app/reviewloop/repository"
	"reviewloop/internal/app/reviewloop/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCampaignService_Resolve_CacheMiss(t *testing.T) {
	repo := new(mocks.MockCampaignRepository)
	cache := new(mocks.MockCampaignCache)
	svc := NewCampaignService(repo, cache, 10*time.Minute)

	campaign := campaignWithProducts()

	cache.On("GetCampaign", mock.Anything, campaign.ID).Return(nil, nil)
	repo.On("GetByID", mock.Anything, campaign.ID).Return(campaign, nil)
	cache.On("SetCampaign", mock.Anything, campaign, 10*time.Minute).Return(nil)

	result, err := svc.Resolve(context.Background(), campaign.ID)

	require.NoError(t, err)
	assert.Equal(t, campaign.ID, result.ID)
	cache.AssertExpectations(t)
}

func TestCampaignService_Resolve_CacheHit(t *testing.T) {
	repo := new(mocks.MockCampaignRepository)
	cache := new(mocks.MockCampaignCache)
	svc := NewCampaignService(repo, cache, 10*time.Minute)

	campaign := campaignWithProducts()

	cache.On("GetCampaign", mock.Anything, campaign.ID).Return(campaign, nil)

	result, err := svc.Resolve(context.Background(), campaign.ID)

	require.NoError(t, err)
	assert.Equal(t, campaign.ID, result.ID)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCampaignService_Resolve_CacheErrorFallsThrough(t *testing.T) {
	repo := new(mocks.MockCampaignRepository)
	cache := new(mocks.MockCampaignCache)
	svc := NewCampaignService(repo, cache, 10*time.Minute)

	campaign := campaignWithoutProducts()

	cache.On("GetCampaign", mock.Anything, campaign.ID).Return(nil, errors.New("redis down"))
	repo.On("GetByID", mock.Anything, campaign.ID).Return(campaign, nil)
	cache.On("SetCampaign", mock.Anything, campaign, mock.Anything).Return(errors.New("redis down"))

	result, err := svc.Resolve(context.Background(), campaign.ID)

	require.NoError(t, err)
	assert.Equal(t, campaign.ID, result.ID)
}

func TestCampaignService_Resolve_NotFound(t *testing.T) {
	repo := new(mocks.MockCampaignRepository)
	svc := NewCampaignService(repo, nil, 10*time.Minute)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrCampaignNotFound)

	_, err := svc.Resolve(context.Background(), id)

	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestCampaignService_Resolve_InactiveHiddenAsNotFound(t *testing.T) {
	repo := new(mocks.MockCampaignRepository)
	cache := new(mocks.MockCampaignCache)
	svc := NewCampaignService(repo, cache, 10*time.Minute)

	campaign := campaignWithProducts()
	campaign.IsActive = false

	cache.On("GetCampaign", mock.Anything, campaign.ID).Return(nil, nil)
	repo.On("GetByID", mock.Anything, campaign.ID).Return(campaign, nil)

	_, err := svc.Resolve(context.Background(), campaign.ID)

	assert.ErrorIs(t, err, ErrCampaignNotFound)
	// Выключенная кампания не попадает в кеш
	cache.AssertNotCalled(t, "SetCampaign", mock.Anything, mock.Anything, mock.Anything)
}

func TestCampaignService_Resolve_RepoError(t *testing.T) {
	repo := new(mocks.MockCampaignRepository)
	svc := NewCampaignService(repo, nil, 10*time.Minute)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, errors.New("connection refused"))

	_, err := svc.Resolve(context.Background(), id)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCampaignNotFound)
}
