package entity

import (
	"time"

	"github.com/google/uuid"
)

// SatisfactionRating - оценка удовлетворенности покупателя (5 уровней)
type SatisfactionRating string

const (
	SatisfactionVerySatisfied        SatisfactionRating = "very_satisfied"
	SatisfactionSomewhatSatisfied    SatisfactionRating = "somewhat_satisfied"
	SatisfactionNeutral              SatisfactionRating = "neutral"
	SatisfactionSomewhatDissatisfied SatisfactionRating = "somewhat_dissatisfied"
	SatisfactionVeryDissatisfied     SatisfactionRating = "very_dissatisfied"
)

// Valid проверяет что значение входит в набор допустимых оценок
func (s SatisfactionRating) Valid() bool {
	switch s {
	case SatisfactionVerySatisfied, SatisfactionSomewhatSatisfied,
		SatisfactionNeutral, SatisfactionSomewhatDissatisfied, SatisfactionVeryDissatisfied:
		return true
	}
	return false
}

// IsPositive возвращает true для двух верхних уровней удовлетворенности
// Только для них покупателю предлагается написать отзыв на маркетплейсе
func (s SatisfactionRating) IsPositive() bool {
	return s == SatisfactionVerySatisfied || s == SatisfactionSomewhatSatisfied
}

// Campaign представляет кампанию по сбору отзывов
// Продукты связаны через таблицу campaign_products (many-to-many)
type Campaign struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Marketplace  string    `json:"marketplace" gorm:"not null"` // Домен маркетплейса (amazon.com, amazon.de и т.д.)
	PromoMessage *string   `json:"promo_message,omitempty"`
	ImageURL     *string   `json:"image_url,omitempty"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Products     []Product `json:"products" gorm:"many2many:campaign_products;"`
}

// Product представляет товар, привязанный к одной или нескольким кампаниям
type Product struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	ASIN      string    `json:"asin" gorm:"column:asin;not null"` // Amazon Standard Identification Number
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderIDSentinel записывается в order_id когда номер заказа не собирался
// (кампания с привязанными товарами). Частичный уникальный индекс
// (campaign_id, order_id) действует только для реальных номеров заказов
const OrderIDSentinel = "N/A"

// Review - итоговая запись отзыва. Создается ровно один раз при финальном
// сабмите и воркфлоу ее больше не изменяет
type Review struct {
	ID                  uuid.UUID          `json:"id"`
	CampaignID          uuid.UUID          `json:"campaign_id"`
	OrderID             string             `json:"order_id"` // "N/A" если номер заказа не собирался
	ProductID           *uuid.UUID         `json:"product_id"`
	ASIN                string             `json:"asin"`
	CustomerName        string             `json:"customer_name"`
	CustomerEmail       string             `json:"customer_email"`
	CustomerPhone       string             `json:"customer_phone,omitempty"`
	SatisfactionRating  SatisfactionRating `json:"satisfaction_rating"`
	UsedOver7Days       bool               `json:"used_over_7_days"`
	ReviewText          string             `json:"review_text,omitempty"`
	Marketplace         string             `json:"marketplace"` // Копируется из кампании в момент сабмита
	IsVerified          bool               `json:"is_verified"`
	ReviewScreenshotURL *string            `json:"review_screenshot_url"`
	GiftSent            bool               `json:"gift_sent"`
	SubmittedAt         time.Time          `json:"submitted_at"`
}

// WorkflowStep - шаг четырехшагового воркфлоу сбора отзыва
type WorkflowStep string

const (
	StepProductFeedback WorkflowStep = "product_feedback"
	StepCustomerDetails WorkflowStep = "customer_details"
	StepWriteReview     WorkflowStep = "write_review"
	StepThankYou        WorkflowStep = "thank_you" // Терминальный шаг, назад вернуться нельзя
)

// DraftSubmission - черновик отзыва, живет только в рамках сессии
// и никогда не попадает в постоянное хранилище
type DraftSubmission struct {
	OrderNumber        string             `json:"order_number,omitempty"`
	ProductID          *uuid.UUID         `json:"product_id,omitempty"`
	Satisfaction       SatisfactionRating `json:"satisfaction,omitempty"`
	UsedOver7Days      *bool              `json:"used_over_7_days,omitempty"`
	FullName           string             `json:"full_name,omitempty"`
	Email              string             `json:"email,omitempty"`
	ContactNumber      string             `json:"contact_number,omitempty"`
	ReviewText         string             `json:"review_text,omitempty"`
	ExternalFlowOpened bool               `json:"external_flow_opened"`
	ASIN               string             `json:"asin,omitempty"`
	IsVerified         bool               `json:"is_verified"`
}

// WorkflowSession - сессия одного покупателя. Хранится в Redis с TTL,
// состояние мутируется переходами между шагами
type WorkflowSession struct {
	ID         string          `json:"id"`
	CampaignID uuid.UUID       `json:"campaign_id"`
	Step       WorkflowStep    `json:"step"`
	Draft      DraftSubmission `json:"draft"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// EvidenceFile - скриншот отзыва, загруженный покупателем на финальном шаге
type EvidenceFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReviewEvent представляет событие для Kafka
type ReviewEvent struct {
	EventType    string             `json:"event_type"` // REVIEW_SUBMITTED
	ReviewID     string             `json:"review_id"`
	CampaignID   string             `json:"campaign_id"`
	ProductID    string             `json:"product_id,omitempty"`
	Satisfaction SatisfactionRating `json:"satisfaction"`
	IsVerified   bool               `json:"is_verified"`
	Timestamp    time.Time          `json:"timestamp"`
}
