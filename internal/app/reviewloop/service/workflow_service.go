package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"reviewloop/internal/app/reviewloop/entity"
	"reviewloop/internal/app/reviewloop/infrastructure"
	"reviewloop/internal/app/reviewloop/repository"
	"reviewloop/pkg/logger"
	"reviewloop/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Подсказки для быстрого заполнения текста отзыва на третьем шаге
var reviewSuggestions = []string{
	"This product exceeded my expectations! The quality is outstanding.",
	"Great value for money. Would definitely recommend to others.",
	"Fast shipping and excellent customer service. Very satisfied!",
	"The product works exactly as described. Perfect for my needs.",
	"Amazing quality and durability. Worth every penny!",
}

// EvidenceRequired - единственный предикат обязательности скриншота.
// Скриншот обязателен только когда покупатель доволен (две верхние оценки)
// И открывал форму отзыва на маркетплейсе. Сам факт публикации отзыва там
// не проверяется - это осознанное допущение дизайна
func EvidenceRequired(rating entity.SatisfactionRating, externalFlowOpened bool) bool {
	return rating.IsPositive() && externalFlowOpened
}

// WorkflowService - конечный автомат воркфлоу сбора отзыва.
// Держит ровно один черновик на сессию, переходы мутируют его на месте.
// Любая ошибка оставляет сессию на текущем шаге - черновик не сбрасывается
type WorkflowService struct {
	campaigns  CampaignResolver
	reviewRepo repository.ReviewRepository
	sessions   SessionStore
	verifier   infrastructure.OrderVerifier
	uploader   infrastructure.EvidenceUploader
	producer   infrastructure.MessagePublisher
	validate   *validator.Validate
	sessionTTL time.Duration
	now        func() time.Time
}

// NewWorkflowService создает новый сервис воркфлоу с внедрением зависимостей
func NewWorkflowService(
	campaigns CampaignResolver,
	reviewRepo repository.ReviewRepository,
	sessions SessionStore,
	verifier infrastructure.OrderVerifier,
	uploader infrastructure.EvidenceUploader,
	producer infrastructure.MessagePublisher,
	sessionTTL time.Duration,
) *WorkflowService {
	return &WorkflowService{
		campaigns:  campaigns,
		reviewRepo: reviewRepo,
		sessions:   sessions,
		verifier:   verifier,
		uploader:   uploader,
		producer:   producer,
		validate:   validator.New(),
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// StartSession разрешает кампанию и открывает новую сессию воркфлоу
// на первом шаге. Для несуществующей кампании сессия не создается
func (s *WorkflowService) StartSession(ctx context.Context, campaignID uuid.UUID) (*entity.StartSessionResponse, error) {
	campaign, err := s.campaigns.Resolve(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &entity.WorkflowSession{
		ID:         uuid.NewString(),
		CampaignID: campaignID,
		Step:       entity.StepProductFeedback,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.sessions.SaveSession(ctx, session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	metrics.WorkflowSessionsStarted.Inc()

	return &entity.StartSessionResponse{
		SessionID: session.ID,
		Step:      session.Step,
		Campaign:  campaign,
	}, nil
}

// GetSession возвращает текущее состояние сессии
func (s *WorkflowService) GetSession(ctx context.Context, sessionID string) (*entity.WorkflowSession, error) {
	return s.loadSession(ctx, sessionID)
}

// AbandonSession удаляет сессию вместе с черновиком
func (s *WorkflowService) AbandonSession(ctx context.Context, sessionID string) error {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.sessions.DeleteSession(ctx, session.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// SubmitProductFeedback - первый шаг. Ветвится по наличию привязанных товаров:
// выбор товара (ручной, неверифицированный путь) либо номер заказа с проверкой
// дубликата и вызовом внешней верификации. Успех переводит на второй шаг
func (s *WorkflowService) SubmitProductFeedback(ctx context.Context, sessionID string, req *entity.ProductFeedbackRequest) (*entity.WorkflowSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.requireStep(session, entity.StepProductFeedback); err != nil {
		return nil, err
	}

	rating := entity.SatisfactionRating(req.Satisfaction)
	if !rating.Valid() {
		return nil, fmt.Errorf("%w: unknown satisfaction rating %q", ErrValidation, req.Satisfaction)
	}
	if req.UsedOver7Days == nil {
		return nil, fmt.Errorf("%w: used_over_7_days is required", ErrValidation)
	}

	campaign, err := s.campaigns.Resolve(ctx, session.CampaignID)
	if err != nil {
		return nil, err
	}

	if len(campaign.Products) > 0 {
		if err := s.applyProductSelection(session, campaign, req.ProductID); err != nil {
			return nil, err
		}
	} else {
		if err := s.applyOrderVerification(ctx, session, req); err != nil {
			return nil, err
		}
	}

	session.Draft.Satisfaction = rating
	session.Draft.UsedOver7Days = req.UsedOver7Days
	session.Step = entity.StepCustomerDetails
	session.UpdatedAt = s.now()

	if err := s.sessions.SaveSession(ctx, session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	metrics.WorkflowStepCompleted.WithLabelValues(string(entity.StepProductFeedback)).Inc()

	return session, nil
}

// applyProductSelection - ветка кампании с привязанными товарами.
// ASIN берется из выбранного товара, верификация не вызывается
func (s *WorkflowService) applyProductSelection(session *entity.WorkflowSession, campaign *entity.Campaign, rawProductID string) error {
	if rawProductID == "" {
		return fmt.Errorf("%w: product selection is required", ErrValidation)
	}

	productID, err := uuid.Parse(rawProductID)
	if err != nil {
		return fmt.Errorf("%w: invalid product id", ErrValidation)
	}

	var selected *entity.Product
	for i := range campaign.Products {
		if campaign.Products[i].ID == productID {
			selected = &campaign.Products[i]
			break
		}
	}
	if selected == nil {
		return fmt.Errorf("%w: selected product is not part of this campaign", ErrValidation)
	}

	session.Draft.ProductID = &selected.ID
	session.Draft.ASIN = selected.ASIN
	session.Draft.IsVerified = false // Ручной выбор товара не подтверждается через SP-API
	session.Draft.OrderNumber = ""

	return nil
}

// applyOrderVerification - ветка кампании без товаров. Сначала проверка
// дубликата (оптимистичная), затем вызов внешней верификации. Каждый retry
// заново проходит обе проверки
func (s *WorkflowService) applyOrderVerification(ctx context.Context, session *entity.WorkflowSession, req *entity.ProductFeedbackRequest) error {
	if req.ProductID != "" {
		return fmt.Errorf("%w: product selection is not accepted for this campaign", ErrValidation)
	}
	if req.OrderNumber == "" {
		return fmt.Errorf("%w: order number is required", ErrValidation)
	}

	exists, err := s.reviewRepo.ExistsByCampaignOrder(ctx, session.CampaignID, req.OrderNumber)
	if err != nil {
		return fmt.Errorf("failed to check order id: %w", err)
	}
	if exists {
		metrics.DuplicateOrders.Inc()
		return ErrDuplicateOrder
	}

	asin, err := s.verifier.VerifyOrder(ctx, session.CampaignID, req.OrderNumber)
	if err != nil {
		metrics.OrderVerifications.WithLabelValues("failed").Inc()
		// Сообщение сервиса верификации пробрасывается покупателю как есть
		return fmt.Errorf("%w: %s", ErrVerificationFailed, err.Error())
	}
	metrics.OrderVerifications.WithLabelValues("success").Inc()

	session.Draft.OrderNumber = req.OrderNumber
	session.Draft.ASIN = asin
	session.Draft.IsVerified = true
	session.Draft.ProductID = nil

	return nil
}

// SubmitCustomerDetails - второй шаг: имя и синтаксически корректный email
// обязательны, телефон опционален. Внешних вызовов нет
func (s *WorkflowService) SubmitCustomerDetails(ctx context.Context, sessionID string, req *entity.CustomerDetailsRequest) (*entity.WriteReviewPayload, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.requireStep(session, entity.StepCustomerDetails); err != nil {
		return nil, err
	}

	if req.FullName == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrValidation)
	}
	if err := s.validate.Var(req.Email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: a valid email address is required", ErrValidation)
	}

	campaign, err := s.campaigns.Resolve(ctx, session.CampaignID)
	if err != nil {
		return nil, err
	}

	session.Draft.FullName = req.FullName
	session.Draft.Email = req.Email
	session.Draft.ContactNumber = req.ContactNumber
	session.Step = entity.StepWriteReview
	session.UpdatedAt = s.now()

	if err := s.sessions.SaveSession(ctx, session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	metrics.WorkflowStepCompleted.WithLabelValues(string(entity.StepCustomerDetails)).Inc()

	payload := &entity.WriteReviewPayload{
		Step:               entity.StepWriteReview,
		Suggestions:        reviewSuggestions,
		EvidenceOnPositive: true,
	}
	// Форму отзыва маркетплейса предлагаем только довольным покупателям
	if session.Draft.Satisfaction.IsPositive() {
		payload.MarketplaceURL = fmt.Sprintf(
			"https://www.%s/review/review-your-purchases/?asin=%s",
			campaign.Marketplace, session.Draft.ASIN,
		)
	}

	return payload, nil
}

// StepBack - одношаговый переход назад. Доступен со второго и третьего шагов;
// с первого некуда, thank_you терминален
func (s *WorkflowService) StepBack(ctx context.Context, sessionID string) (*entity.WorkflowSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch session.Step {
	case entity.StepCustomerDetails:
		session.Step = entity.StepProductFeedback
	case entity.StepWriteReview:
		session.Step = entity.StepCustomerDetails
	case entity.StepThankYou:
		return nil, ErrSessionCompleted
	default:
		return nil, ErrInvalidStep
	}

	session.UpdatedAt = s.now()
	if err := s.sessions.SaveSession(ctx, session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// SubmitReview - третий шаг и финальный сабмит. Сначала загрузка скриншота
// (если есть), затем сборка записи и один INSERT. Переход на thank_you
// происходит только после успешной записи
func (s *WorkflowService) SubmitReview(ctx context.Context, sessionID string, req *entity.WriteReviewRequest, evidence *entity.EvidenceFile) (*entity.Review, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.requireStep(session, entity.StepWriteReview); err != nil {
		return nil, err
	}

	// Текст и флаг внешнего флоу запоминаем до всех проверок,
	// чтобы retry после ошибки не терял введенное
	session.Draft.ReviewText = req.ReviewText
	session.Draft.ExternalFlowOpened = req.ExternalFlowOpened
	session.UpdatedAt = s.now()

	if EvidenceRequired(session.Draft.Satisfaction, session.Draft.ExternalFlowOpened) && evidence == nil {
		s.saveDraft(ctx, session)
		return nil, fmt.Errorf("%w: a screenshot of your marketplace review is required", ErrValidation)
	}

	var screenshotURL *string
	if evidence != nil {
		url, err := s.uploader.Upload(ctx, session.CampaignID, evidence)
		if err != nil {
			metrics.EvidenceUploads.WithLabelValues("failed").Inc()
			s.saveDraft(ctx, session)
			return nil, fmt.Errorf("%w: %s", ErrUploadFailed, err.Error())
		}
		metrics.EvidenceUploads.WithLabelValues("success").Inc()
		screenshotURL = &url
	}

	campaign, err := s.campaigns.Resolve(ctx, session.CampaignID)
	if err != nil {
		return nil, err
	}

	review := s.assembleReview(session, campaign, screenshotURL)

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		s.saveDraft(ctx, session)
		// Гонка двух одновременных сабмитов закрывается constraint-ом в базе:
		// его нарушение показывается как тот же DuplicateOrder
		if errors.Is(err, repository.ErrDuplicateOrder) {
			metrics.DuplicateOrders.Inc()
			return nil, ErrDuplicateOrder
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	metrics.ReviewsSubmitted.Inc()
	metrics.SatisfactionRatings.WithLabelValues(string(review.SatisfactionRating)).Inc()
	metrics.WorkflowStepCompleted.WithLabelValues(string(entity.StepWriteReview)).Inc()

	s.publishReviewEvent(ctx, review)

	// Черновик отбрасывается при завершении; сессия остается в терминальном
	// состоянии до истечения TTL и больше не принимает ввод
	session.Draft = entity.DraftSubmission{}
	session.Step = entity.StepThankYou
	session.UpdatedAt = s.now()
	if err := s.sessions.SaveSession(ctx, session, s.sessionTTL); err != nil {
		logger.Warn().Err(err).Str("session_id", session.ID).Msg("Failed to finalize session state")
	}

	return review, nil
}

// assembleReview собирает итоговую запись из черновика и кампании.
// gift_sent всегда false при создании, submitted_at выставляется здесь
func (s *WorkflowService) assembleReview(session *entity.WorkflowSession, campaign *entity.Campaign, screenshotURL *string) *entity.Review {
	orderID := session.Draft.OrderNumber
	if orderID == "" {
		orderID = entity.OrderIDSentinel
	}

	usedOver7Days := false
	if session.Draft.UsedOver7Days != nil {
		usedOver7Days = *session.Draft.UsedOver7Days
	}

	return &entity.Review{
		ID:                  uuid.New(),
		CampaignID:          session.CampaignID,
		OrderID:             orderID,
		ProductID:           session.Draft.ProductID,
		ASIN:                session.Draft.ASIN,
		CustomerName:        session.Draft.FullName,
		CustomerEmail:       session.Draft.Email,
		CustomerPhone:       session.Draft.ContactNumber,
		SatisfactionRating:  session.Draft.Satisfaction,
		UsedOver7Days:       usedOver7Days,
		ReviewText:          session.Draft.ReviewText,
		Marketplace:         campaign.Marketplace, // Копия из кампании в момент сабмита
		IsVerified:          session.Draft.IsVerified,
		ReviewScreenshotURL: screenshotURL,
		GiftSent:            false,
		SubmittedAt:         s.now(),
	}
}

// publishReviewEvent отправляет событие REVIEW_SUBMITTED в Kafka.
// Отзыв уже записан, поэтому ошибки Kafka не прерывают выполнение
func (s *WorkflowService) publishReviewEvent(ctx context.Context, review *entity.Review) {
	event := entity.ReviewEvent{
		EventType:    "REVIEW_SUBMITTED",
		ReviewID:     review.ID.String(),
		CampaignID:   review.CampaignID.String(),
		Satisfaction: review.SatisfactionRating,
		IsVerified:   review.IsVerified,
		Timestamp:    s.now(),
	}
	if review.ProductID != nil {
		event.ProductID = review.ProductID.String()
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal review event")
		return
	}

	if err := s.producer.PublishMessage(ctx, event.ReviewID, eventData); err != nil {
		logger.Warn().Err(err).Str("review_id", event.ReviewID).Msg("Failed to publish review event")
	}
}

// loadSession достает сессию из хранилища
func (s *WorkflowService) loadSession(ctx context.Context, sessionID string) (*entity.WorkflowSession, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// requireStep проверяет что сессия находится на ожидаемом шаге
func (s *WorkflowService) requireStep(session *entity.WorkflowSession, step entity.WorkflowStep) error {
	if session.Step == entity.StepThankYou {
		return ErrSessionCompleted
	}
	if session.Step != step {
		return ErrInvalidStep
	}
	return nil
}

// saveDraft сохраняет черновик после неуспешной попытки шага,
// чтобы покупатель мог исправить данные и повторить
func (s *WorkflowService) saveDraft(ctx context.Context, session *entity.WorkflowSession) {
	if err := s.sessions.SaveSession(ctx, session, s.sessionTTL); err != nil {
		logger.Warn().Err(err).Str("session_id", session.ID).Msg("Failed to save draft state")
	}
}
