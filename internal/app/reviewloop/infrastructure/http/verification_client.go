package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// VerificationClient - клиент внешнего сервиса проверки заказов.
// Сервис сверяет номер заказа с данными маркетплейса и возвращает ASIN товара
type VerificationClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewVerificationClient создает новый клиент сервиса верификации
func NewVerificationClient(baseURL string, timeoutSec int) *VerificationClient {
	return &VerificationClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
	}
}

type verifyRequest struct {
	CampaignID string `json:"campaign_id"`
	OrderID    string `json:"order_id"`
}

type verifyResponse struct {
	ASIN  string `json:"asin"`
	Error string `json:"error,omitempty"`
}

// VerifyOrder проверяет заказ и возвращает подтвержденный ASIN.
// Любая ошибка (сеть, не найден, некорректный номер) возвращается с
// сообщением сервиса - воркфлоу показывает его покупателю как есть
func (c *VerificationClient) VerifyOrder(ctx context.Context, campaignID uuid.UUID, orderID string) (string, error) {
	payload, err := json.Marshal(verifyRequest{
		CampaignID: campaignID.String(),
		OrderID:    orderID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal verify request: %w", err)
	}

	url := c.baseURL + "/verify"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var verifyResp verifyResponse
	if err := json.Unmarshal(body, &verifyResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("verification service returned status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("failed to unmarshal verify response: %w", err)
	}

	// Сервис отдает человекочитаемое сообщение в поле error
	if verifyResp.Error != "" {
		return "", fmt.Errorf("%s", verifyResp.Error)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("verification service returned status %d", resp.StatusCode)
	}

	if verifyResp.ASIN == "" {
		return "", fmt.Errorf("verification service returned empty asin")
	}

	return verifyResp.ASIN, nil
}
