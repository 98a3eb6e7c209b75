package mocks

import (
	"context"
	"time"

	"reviewloop/internal/app/reviewloop/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCampaignRepository мок для CampaignRepository
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Campaign), args.Error(1)
}

// MockReviewRepository мок для ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) ExistsByCampaignOrder(ctx context.Context, campaignID uuid.UUID, orderID string) (bool, error) {
	args := m.Called(ctx, campaignID, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByCampaignID(ctx context.Context, campaignID uuid.UUID) ([]entity.Review, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

// MockSessionStore мок для SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) SaveSession(ctx context.Context, session *entity.WorkflowSession, ttl time.Duration) error {
	args := m.Called(ctx, session, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) GetSession(ctx context.Context, id string) (*entity.WorkflowSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WorkflowSession), args.Error(1)
}

func (m *MockSessionStore) DeleteSession(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCampaignCache мок для CampaignCache
type MockCampaignCache struct {
	mock.Mock
}

func (m *MockCampaignCache) GetCampaign(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *MockCampaignCache) SetCampaign(ctx context.Context, campaign *entity.Campaign, ttl time.Duration) error {
	args := m.Called(ctx, campaign, ttl)
	return args.Error(0)
}

// MockOrderVerifier мок для внешнего сервиса верификации заказов
type MockOrderVerifier struct {
	mock.Mock
}

func (m *MockOrderVerifier) VerifyOrder(ctx context.Context, campaignID uuid.UUID, orderID string) (string, error) {
	args := m.Called(ctx, campaignID, orderID)
	return args.String(0), args.Error(1)
}

// MockEvidenceUploader мок для хранилища скриншотов
type MockEvidenceUploader struct {
	mock.Mock
}

func (m *MockEvidenceUploader) Upload(ctx context.Context, campaignID uuid.UUID, file *entity.EvidenceFile) (string, error) {
	args := m.Called(ctx, campaignID, file)
	return args.String(0), args.Error(1)
}

// MockMessagePublisher мок для Kafka MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
	Messages [][]byte
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.Messages = append(m.Messages, value)
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
