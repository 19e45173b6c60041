package ingredient

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"eatease-backend/internal/api/middleware"
	"eatease-backend/internal/core/detection"
	"eatease-backend/internal/core/feedback"
	"eatease-backend/internal/core/image"
	"eatease-backend/internal/infrastructure/persistence"
	"eatease-backend/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Detector 食材偵測流程
type Detector interface {
	Detect(ctx context.Context, image []byte) (*detection.Result, error)
}

// Feedback 使用者修正與學習對應
type Feedback interface {
	Submit(ctx context.Context, userID uint, corrections []feedback.Correction) (feedback.BatchResult, error)
	LearnedMappings(ctx context.Context) ([]feedback.MappingView, error)
}

// Catalog 食材查詢
type Catalog interface {
	ListIngredients(ctx context.Context, query persistence.IngredientQuery) (persistence.IngredientPage, error)
	IngredientsByNames(ctx context.Context, names []string) ([]persistence.Ingredient, error)
	GetIngredient(ctx context.Context, id uint) (persistence.Ingredient, error)
}

// Handler 食材相關 API
type Handler struct {
	detector Detector
	images   *image.Service
	feedback Feedback
	catalog  Catalog
}

// NewHandler 創建食材處理程序
func NewHandler(detector Detector, images *image.Service, fb Feedback, catalog Catalog) *Handler {
	return &Handler{detector: detector, images: images, feedback: fb, catalog: catalog}
}

// ListQuery 食材列表查詢參數
type ListQuery struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

// List GET /ingredients
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.RespondError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}

	page, err := h.catalog.ListIngredients(c.Request.Context(), persistence.IngredientQuery{
		Category: q.Category,
		Search:   q.Search,
		Page:     q.Page,
		PerPage:  q.PerPage,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get GET /ingredients/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		common.RespondError(c, common.ErrNotFound.WithMessage("Ingredient not found"))
		return
	}

	ing, err := h.catalog.GetIngredient(c.Request.Context(), uint(id))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredient": ing})
}

// DetectResponse 偵測結果
type DetectResponse struct {
	Message             string                        `json:"message"`
	Detections          []detection.ResolvedDetection `json:"detections"`
	IngredientNames     []string                      `json:"ingredient_names"`
	HighConfidence      []string                      `json:"high_confidence_ingredients"`
	DetectedIngredients []persistence.Ingredient      `json:"detected_ingredients"`
	TotalDetected       int                           `json:"total_detected"`
	Provider            string                        `json:"provider,omitempty"`
	Cached              bool                          `json:"cached"`
}

// Detect POST /ingredients/detect，multipart 欄位 image
func (h *Handler) Detect(c *gin.Context) {
	requestID := requestid.Get(c)

	file, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			common.RespondError(c, common.ErrPayloadTooLarge)
			return
		}
		// 檔名為空的欄位會被當成一般表單值
		if errors.Is(err, http.ErrMissingFile) && c.Request.MultipartForm != nil && len(c.Request.MultipartForm.Value["image"]) > 0 {
			common.RespondError(c, common.ErrNoImageSelected)
			return
		}
		common.RespondError(c, common.ErrNoImage)
		return
	}

	if err := h.images.ValidateUpload(file.Filename, file.Size); err != nil {
		common.RespondError(c, err)
		return
	}

	f, err := file.Open()
	if err != nil {
		common.RespondError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}
	defer f.Close()

	data, err := h.images.ReadUpload(f)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	if _, err := h.images.Validate(data); err != nil {
		common.RespondError(c, err)
		return
	}

	result, err := h.detector.Detect(c.Request.Context(), data)
	if err != nil {
		common.LogError("食材偵測失敗",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		// 排隊已滿時保留 503
		if errors.Is(err, common.ErrServiceUnavailable) {
			common.RespondError(c, err)
			return
		}
		common.RespondError(c, common.ErrDetectionFailed.Wrap(err))
		return
	}

	known, err := h.catalog.IngredientsByNames(c.Request.Context(), result.IngredientNames)
	if err != nil {
		common.LogWarn("載入偵測到的食材失敗",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		known = []persistence.Ingredient{}
	}

	c.JSON(http.StatusOK, DetectResponse{
		Message:             "Ingredient detection successful",
		Detections:          result.Detections,
		IngredientNames:     result.IngredientNames,
		HighConfidence:      result.HighConfidence,
		DetectedIngredients: known,
		TotalDetected:       len(result.Detections),
		Provider:            result.Provider,
		Cached:              result.Cached,
	})
}

// FeedbackRequest 修正批次
type FeedbackRequest struct {
	Corrections []feedback.Correction `json:"corrections"`
}

// SubmitFeedback POST /ingredients/detect/feedback
func (h *Handler) SubmitFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}

	userID, _ := middleware.UserID(c)
	result, err := h.feedback.Submit(c.Request.Context(), userID, req.Corrections)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// LearnedMappings GET /ingredients/detect/learned-mappings
func (h *Handler) LearnedMappings(c *gin.Context) {
	mappings, err := h.feedback.LearnedMappings(c.Request.Context())
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mappings":       mappings,
		"total_mappings": len(mappings),
	})
}
