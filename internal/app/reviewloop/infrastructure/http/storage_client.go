package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"reviewloop/internal/app/reviewloop/entity"

	"github.com/google/uuid"
)

// StorageClient - клиент HTTP-хранилища скриншотов.
// Файлы складываются в бакет по пути <campaign_id>/<unix_ms>_<имя файла>,
// чтобы скриншоты одной кампании лежали под общим префиксом
type StorageClient struct {
	baseURL    string
	bucket     string
	httpClient *http.Client
	now        func() time.Time
}

// NewStorageClient создает новый клиент хранилища
func NewStorageClient(baseURL, bucket string, timeoutSec int) *StorageClient {
	return &StorageClient{
		baseURL: baseURL,
		bucket:  bucket,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
		now: time.Now,
	}
}

// Upload загружает скриншот и возвращает его публичный URL
func (c *StorageClient) Upload(ctx context.Context, campaignID uuid.UUID, file *entity.EvidenceFile) (string, error) {
	objectPath := fmt.Sprintf("%s/%d_%s", campaignID, c.now().UnixMilli(), file.Filename)
	url := fmt.Sprintf("%s/object/%s/%s", c.baseURL, c.bucket, objectPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(file.Data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("storage returned status %d: %s", resp.StatusCode, string(body))
	}

	// Публичный URL стабилен и строится из пути объекта
	return fmt.Sprintf("%s/object/public/%s/%s", c.baseURL, c.bucket, objectPath), nil
}
