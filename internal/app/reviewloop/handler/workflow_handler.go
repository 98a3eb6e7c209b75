package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"reviewloop/internal/app/reviewloop/entity"
	"reviewloop/internal/app/reviewloop/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Скриншоты больше 10 МБ не принимаем
const maxScreenshotBytes = 10 << 20

type WorkflowServiceInterface interface {
	StartSession(ctx context.Context, campaignID uuid.UUID) (*entity.StartSessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*entity.WorkflowSession, error)
	SubmitProductFeedback(ctx context.Context, sessionID string, req *entity.ProductFeedbackRequest) (*entity.WorkflowSession, error)
	SubmitCustomerDetails(ctx context.Context, sessionID string, req *entity.CustomerDetailsRequest) (*entity.WriteReviewPayload, error)
	StepBack(ctx context.Context, sessionID string) (*entity.WorkflowSession, error)
	SubmitReview(ctx context.Context, sessionID string, req *entity.WriteReviewRequest, evidence *entity.EvidenceFile) (*entity.Review, error)
	AbandonSession(ctx context.Context, sessionID string) error
}

type CampaignResolverInterface interface {
	Resolve(ctx context.Context, id uuid.UUID) (*entity.Campaign, error)
}

type WorkflowHandler struct {
	workflowService WorkflowServiceInterface
	campaigns       CampaignResolverInterface
	validator       *validator.Validate
}

func NewWorkflowHandler(workflowService WorkflowServiceInterface, campaigns CampaignResolverInterface) *WorkflowHandler {
	return &WorkflowHandler{
		workflowService: workflowService,
		campaigns:       campaigns,
		validator:       validator.New(),
	}
}

// GetCampaign - точка входа по QR-коду: кампания с товарами для первого экрана
func (h *WorkflowHandler) GetCampaign(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("campaign_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign ID"})
		return
	}

	campaign, err := h.campaigns.Resolve(c.Request.Context(), campaignID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// StartSession открывает сессию воркфлоу для кампании
func (h *WorkflowHandler) StartSession(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("campaign_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign ID"})
		return
	}

	resp, err := h.workflowService.StartSession(c.Request.Context(), campaignID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetSession возвращает текущий шаг и черновик сессии
func (h *WorkflowHandler) GetSession(c *gin.Context) {
	session, err := h.workflowService.GetSession(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.SessionResponse{
		SessionID: session.ID,
		Step:      session.Step,
		Draft:     session.Draft,
	})
}

// SubmitProductFeedback - первый шаг воркфлоу
func (h *WorkflowHandler) SubmitProductFeedback(c *gin.Context) {
	var req entity.ProductFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	session, err := h.workflowService.SubmitProductFeedback(c.Request.Context(), c.Param("session_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.SessionResponse{
		SessionID: session.ID,
		Step:      session.Step,
		Draft:     session.Draft,
	})
}

// SubmitCustomerDetails - второй шаг воркфлоу
func (h *WorkflowHandler) SubmitCustomerDetails(c *gin.Context) {
	var req entity.CustomerDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	payload, err := h.workflowService.SubmitCustomerDetails(c.Request.Context(), c.Param("session_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payload)
}

// StepBack - одношаговый переход назад
func (h *WorkflowHandler) StepBack(c *gin.Context) {
	session, err := h.workflowService.StepBack(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.SessionResponse{
		SessionID: session.ID,
		Step:      session.Step,
		Draft:     session.Draft,
	})
}

// SubmitReview - третий шаг и финальный сабмит (multipart:
// review_text, external_flow_opened, опциональный файл screenshot)
func (h *WorkflowHandler) SubmitReview(c *gin.Context) {
	req := entity.WriteReviewRequest{
		ReviewText:         c.PostForm("review_text"),
		ExternalFlowOpened: c.PostForm("external_flow_opened") == "true",
	}

	evidence, err := readScreenshot(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.workflowService.SubmitReview(c.Request.Context(), c.Param("session_id"), &req, evidence)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// AbandonSession удаляет сессию, черновик при этом отбрасывается
func (h *WorkflowHandler) AbandonSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	if err := h.workflowService.AbandonSession(c.Request.Context(), sessionID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Session abandoned",
		Data:    gin.H{"session_id": sessionID},
	})
}

// readScreenshot читает опциональный файл screenshot из multipart-формы
func readScreenshot(c *gin.Context) (*entity.EvidenceFile, error) {
	fileHeader, err := c.FormFile("screenshot")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, errors.New("invalid screenshot upload")
	}

	if fileHeader.Size > maxScreenshotBytes {
		return nil, errors.New("screenshot is too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.New("failed to read screenshot")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxScreenshotBytes))
	if err != nil {
		return nil, errors.New("failed to read screenshot")
	}

	return &entity.EvidenceFile{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// respondError транслирует ошибки бизнес-логики в HTTP статусы
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCampaignNotFound):
		c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "campaign_not_found", Message: err.Error()})
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "session_not_found", Message: err.Error()})
	case errors.Is(err, service.ErrSessionCompleted):
		c.JSON(http.StatusGone, entity.ErrorResponse{Error: "session_completed", Message: err.Error()})
	case errors.Is(err, service.ErrInvalidStep):
		c.JSON(http.StatusConflict, entity.ErrorResponse{Error: "invalid_step", Message: err.Error()})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "validation_error", Message: err.Error()})
	case errors.Is(err, service.ErrDuplicateOrder):
		c.JSON(http.StatusConflict, entity.ErrorResponse{Error: "duplicate_order", Message: err.Error()})
	case errors.Is(err, service.ErrVerificationFailed):
		c.JSON(http.StatusUnprocessableEntity, entity.ErrorResponse{Error: "verification_failed", Message: err.Error()})
	case errors.Is(err, service.ErrUploadFailed):
		c.JSON(http.StatusBadGateway, entity.ErrorResponse{Error: "upload_failed", Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "internal_error", Message: "Something went wrong"})
	}
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
