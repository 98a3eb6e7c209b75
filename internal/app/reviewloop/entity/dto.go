package entity

// ProductFeedbackRequest - запрос первого шага (Product Feedback)
// Какое из двух полей order_number/product_id обязательно - зависит от того,
// есть ли у кампании привязанные товары
type ProductFeedbackRequest struct {
	OrderNumber   string `json:"order_number"`
	ProductID     string `json:"product_id"`
	Satisfaction  string `json:"satisfaction" validate:"required"`
	UsedOver7Days *bool  `json:"used_over_7_days" validate:"required"`
}

// CustomerDetailsRequest - запрос второго шага (Customer Details)
type CustomerDetailsRequest struct {
	FullName      string `json:"full_name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	ContactNumber string `json:"contact_number"`
}

// WriteReviewRequest - запрос третьего шага (Write Review)
// Скриншот приходит отдельной частью multipart-формы
type WriteReviewRequest struct {
	ReviewText         string
	ExternalFlowOpened bool
}

// SessionResponse - текущее состояние сессии воркфлоу
type SessionResponse struct {
	SessionID string          `json:"session_id"`
	Step      WorkflowStep    `json:"step"`
	Draft     DraftSubmission `json:"draft"`
}

// StartSessionResponse возвращается при старте сессии вместе с кампанией,
// чтобы клиент отрисовал первый шаг без дополнительного запроса
type StartSessionResponse struct {
	SessionID string       `json:"session_id"`
	Step      WorkflowStep `json:"step"`
	Campaign  *Campaign    `json:"campaign"`
}

// WriteReviewPayload отдается после второго шага: подсказки для текста отзыва
// и ссылка на форму отзыва маркетплейса (для положительных оценок)
type WriteReviewPayload struct {
	Step               WorkflowStep `json:"step"`
	Suggestions        []string     `json:"suggestions"`
	MarketplaceURL     string       `json:"marketplace_url,omitempty"`
	EvidenceOnPositive bool         `json:"evidence_on_positive"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
