package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reviewloop/internal/app/reviewloop/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Частичный уникальный индекс закрывает гонку между двумя одновременными
// сабмитами одного номера заказа: sentinel-значение "N/A" из индекса исключено
const reviewsUniqueIndexDDL = `
	CREATE UNIQUE INDEX IF NOT EXISTS reviews_campaign_order_uq
	ON reviews (campaign_id, order_id)
	WHERE order_id <> 'N/A'
`

type reviewRepository struct {
	db *pgxpool.Pool
}

// NewReviewRepository создает новый репозиторий отзывов
// Автоматически создает частичный уникальный индекс (campaign_id, order_id)
func NewReviewRepository(db *pgxpool.Pool) ReviewRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := db.Exec(ctx, reviewsUniqueIndexDDL); err != nil {
		// Индекс может уже существовать или создаваться миграцией - не прерываем работу
		fmt.Printf("Warning: failed to ensure reviews unique index: %v\n", err)
	}

	return &reviewRepository{db: db}
}

// Create вставляет итоговую запись отзыва одним INSERT
// Нарушение уникального индекса транслируется в ErrDuplicateOrder
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (
			id, campaign_id, order_id, product_id, asin,
			customer_name, customer_email, customer_phone,
			satisfaction_rating, used_over_7_days, review_text,
			marketplace, is_verified, review_screenshot_url,
			gift_sent, submitted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID, review.CampaignID, review.OrderID, review.ProductID, review.ASIN,
		review.CustomerName, review.CustomerEmail, review.CustomerPhone,
		review.SatisfactionRating, review.UsedOver7Days, review.ReviewText,
		review.Marketplace, review.IsVerified, review.ReviewScreenshotURL,
		review.GiftSent, review.SubmittedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrDuplicateOrder
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// ExistsByCampaignOrder проверяет, использовался ли номер заказа в кампании.
// Оптимистичная предварительная проверка; авторитетной остается constraint в Create
func (r *reviewRepository) ExistsByCampaignOrder(ctx context.Context, campaignID uuid.UUID, orderID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM reviews WHERE campaign_id = $1 AND order_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, campaignID, orderID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check order id: %w", err)
	}

	return exists, nil
}

// GetByID получает отзыв по ID
func (r *reviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, campaign_id, order_id, product_id, asin,
		       customer_name, customer_email, customer_phone,
		       satisfaction_rating, used_over_7_days, review_text,
		       marketplace, is_verified, review_screenshot_url,
		       gift_sent, submitted_at
		FROM reviews WHERE id = $1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID, &review.CampaignID, &review.OrderID, &review.ProductID, &review.ASIN,
		&review.CustomerName, &review.CustomerEmail, &review.CustomerPhone,
		&review.SatisfactionRating, &review.UsedOver7Days, &review.ReviewText,
		&review.Marketplace, &review.IsVerified, &review.ReviewScreenshotURL,
		&review.GiftSent, &review.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return &review, nil
}

// GetByCampaignID получает отзывы кампании, новые первыми
// Порядок согласован с submitted_at, который выставляет персистер
func (r *reviewRepository) GetByCampaignID(ctx context.Context, campaignID uuid.UUID) ([]entity.Review, error) {
	query := `
		SELECT id, campaign_id, order_id, product_id, asin,
		       customer_name, customer_email, customer_phone,
		       satisfaction_rating, used_over_7_days, review_text,
		       marketplace, is_verified, review_screenshot_url,
		       gift_sent, submitted_at
		FROM reviews WHERE campaign_id = $1
		ORDER BY submitted_at DESC
	`

	rows, err := r.db.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []entity.Review
	for rows.Next() {
		var review entity.Review
		if err := rows.Scan(
			&review.ID, &review.CampaignID, &review.OrderID, &review.ProductID, &review.ASIN,
			&review.CustomerName, &review.CustomerEmail, &review.CustomerPhone,
			&review.SatisfactionRating, &review.UsedOver7Days, &review.ReviewText,
			&review.Marketplace, &review.IsVerified, &review.ReviewScreenshotURL,
			&review.GiftSent, &review.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reviews: %w", err)
	}

	return reviews, nil
}
