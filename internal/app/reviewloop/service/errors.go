package service

import "errors"

var (
	// Ошибки бизнес-логики для обработки в handlers.
	// Все кроме ErrCampaignNotFound оставляют покупателя на текущем шаге
	// с нетронутым черновиком - сессия никогда не сбрасывается при ошибке
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrSessionCompleted   = errors.New("review already submitted for this session")
	ErrInvalidStep        = errors.New("operation not allowed at current step")
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateOrder     = errors.New("this order id has already been used for this campaign")
	ErrVerificationFailed = errors.New("order verification failed")
	ErrUploadFailed       = errors.New("screenshot upload failed")
	ErrPersistence        = errors.New("failed to save review")
)
