package infrastructure

import (
	"context"

	"reviewloop/internal/app/reviewloop/entity"

	"github.com/google/uuid"
)

// OrderVerifier - контракт внешнего сервиса проверки заказов (SP-API).
// По (кампания, номер заказа) возвращает подтвержденный ASIN
type OrderVerifier interface {
	VerifyOrder(ctx context.Context, campaignID uuid.UUID, orderID string) (string, error)
}

// EvidenceUploader - контракт внешнего хранилища скриншотов.
// Возвращает публичный URL загруженного файла
type EvidenceUploader interface {
	Upload(ctx context.Context, campaignID uuid.UUID, file *entity.EvidenceFile) (string, error)
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
