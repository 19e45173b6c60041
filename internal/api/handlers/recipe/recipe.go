package recipe

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"eatease-backend/internal/api/middleware"
	"eatease-backend/internal/core/recommend"
	"eatease-backend/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Recommender 食譜推薦服務
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (recommend.Ranking, error)
	ByCuisine(ctx context.Context, cuisine string, dietary *recommend.DietaryFlags, limit int) ([]recommend.ScoredRecipe, error)
	Quick(ctx context.Context, maxTime, limit int) ([]recommend.ScoredRecipe, error)
	Search(ctx context.Context, ingredients []string, dietary *recommend.DietaryFlags, limit int) ([]recommend.MatchedRecipe, error)
}

// Handler 食譜處理程序
type Handler struct {
	recommender Recommender
}

// NewHandler 創建新的食譜處理程序
func NewHandler(recommender Recommender) *Handler {
	return &Handler{recommender: recommender}
}

// SearchRequest 依食材搜尋
type SearchRequest struct {
	Ingredients []string                `json:"ingredients"`
	Dietary     *recommend.DietaryFlags `json:"dietary_preferences,omitempty"`
	Limit       int                     `json:"limit,omitempty"`
}

// Search POST /recipes/search
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}
	if len(req.Ingredients) == 0 {
		common.RespondError(c, common.NewValidationError("Ingredients list is required"))
		return
	}

	recipes, err := h.recommender.Search(c.Request.Context(), req.Ingredients, req.Dietary, req.Limit)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// RecommendRequest 個人化推薦
type RecommendRequest struct {
	Ingredients []string `json:"ingredients"`
	Limit       int      `json:"limit"`
	Offset      int      `json:"offset"`
}

// Recommend POST /recipes/recommend
func (h *Handler) Recommend(c *gin.Context) {
	var req RecommendRequest
	// 允許空的請求體
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			common.RespondError(c, common.ErrInvalidRequest.Wrap(err))
			return
		}
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	userID, _ := middleware.UserID(c)
	ranking, err := h.recommender.Recommend(c.Request.Context(), recommend.Request{
		UserID:      userID,
		Ingredients: req.Ingredients,
		Limit:       req.Limit,
		Offset:      req.Offset,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ranking)
}

// Quick GET /recipes/recommend/quick
func (h *Handler) Quick(c *gin.Context) {
	maxTime, err := intQuery(c, "max_time")
	if err != nil {
		common.RespondError(c, err)
		return
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		common.RespondError(c, err)
		return
	}

	recipes, err := h.recommender.Quick(c.Request.Context(), maxTime, limit)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recommendations": recipes,
		"total":           len(recipes),
	})
}

// ByCuisine GET /recipes/recommend/cuisine/:cuisine_type
func (h *Handler) ByCuisine(c *gin.Context) {
	cuisine := strings.TrimSpace(c.Param("cuisine_type"))
	limit, err := intQuery(c, "limit")
	if err != nil {
		common.RespondError(c, err)
		return
	}

	flags := recommend.DietaryFlags{
		Vegetarian: flagQuery(c, "is_vegetarian"),
		Vegan:      flagQuery(c, "is_vegan"),
		GlutenFree: flagQuery(c, "is_gluten_free"),
		DairyFree:  flagQuery(c, "is_dairy_free"),
	}
	var dietary *recommend.DietaryFlags
	if flags.Any() {
		dietary = &flags
	}

	recipes, err := h.recommender.ByCuisine(c.Request.Context(), cuisine, dietary, limit)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recommendations": recipes,
		"total":           len(recipes),
		"cuisine_type":    cuisine,
	})
}

// intQuery 讀取整數查詢參數，缺少時回傳 0
func intQuery(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, common.NewValidationError("invalid " + key)
	}
	return v, nil
}

// flagQuery 參數存在且不是 false/0 時視為啟用
func flagQuery(c *gin.Context, key string) bool {
	raw, ok := c.GetQuery(key)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "false", "0", "no":
		return false
	}
	return true
}
