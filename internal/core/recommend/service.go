package recommend

import (
	"context"
	"fmt"
	"time"

	"eatease-backend/internal/pkg/common"

	"go.uber.org/zap"
)

// RecipeFilter 載入候選食譜的條件，零值代表不篩選
type RecipeFilter struct {
	Cuisine      string
	MaxTotalTime int
	Dietary      *DietaryFlags
}

// Catalog 推薦所需的儲存層
type Catalog interface {
	ListRecipes(ctx context.Context, filter RecipeFilter) ([]Recipe, error)
	// DietaryPreferences 使用者沒有設定偏好時回傳 nil
	DietaryPreferences(ctx context.Context, userID uint) (*DietaryFlags, error)
	RecentMealRecipeIDs(ctx context.Context, userID uint, since time.Time) ([]uint, error)
	FavoriteRecipes(ctx context.Context, userID uint, minRating int) (ids []uint, cuisines []string, err error)
}

// Recorder 推薦結果的監控介面
type Recorder interface {
	ObserveRecommendation(mode string, count int)
}

// Config 推薦服務設定
type Config struct {
	MinMatchPercentage float64
	DefaultLimit       int
	MaxLimit           int
	RecentDays         int
	FavoriteMinRating  int
	QuickMaxTime       int
}

// Request 個人化推薦請求
type Request struct {
	UserID      uint
	Ingredients []string
	Limit       int
	Offset      int
}

// Service 載入資料並呼叫排序
type Service struct {
	catalog  Catalog
	recorder Recorder
	cfg      Config
	now      func() time.Time
}

// NewService 建立推薦服務
func NewService(catalog Catalog, recorder Recorder, cfg Config) *Service {
	if cfg.MinMatchPercentage <= 0 {
		cfg.MinMatchPercentage = DefaultMinMatchPercentage
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 10
	}
	if cfg.MaxLimit < cfg.DefaultLimit {
		cfg.MaxLimit = cfg.DefaultLimit
	}
	if cfg.RecentDays <= 0 {
		cfg.RecentDays = 30
	}
	if cfg.FavoriteMinRating <= 0 {
		cfg.FavoriteMinRating = 4
	}
	if cfg.QuickMaxTime <= 0 {
		cfg.QuickMaxTime = DefaultQuickMaxTime
	}
	return &Service{catalog: catalog, recorder: recorder, cfg: cfg, now: time.Now}
}

// Recommend 個人化推薦；偏好與用餐紀錄載入失敗時改為不含個人化的排序
func (s *Service) Recommend(ctx context.Context, req Request) (Ranking, error) {
	criteria := Criteria{
		Available:          req.Ingredients,
		MinMatchPercentage: s.cfg.MinMatchPercentage,
		Offset:             req.Offset,
		Limit:              s.limit(req.Limit),
	}

	if req.UserID != 0 {
		s.loadPersonalization(ctx, req.UserID, &criteria)
	}

	recipes, err := s.catalog.ListRecipes(ctx, RecipeFilter{Dietary: criteria.Dietary})
	if err != nil {
		return Ranking{}, fmt.Errorf("failed to load recipes: %w", err)
	}
	criteria.Candidates = recipes

	ranking := Rank(criteria)
	s.observe("personalized", len(ranking.Recipes))

	common.LogInfo("推薦完成",
		zap.Uint("user_id", req.UserID),
		zap.Int("candidates", len(recipes)),
		zap.Int("ranked", ranking.Total),
		zap.Int("returned", len(ranking.Recipes)),
	)
	return ranking, nil
}

func (s *Service) loadPersonalization(ctx context.Context, userID uint, c *Criteria) {
	prefs, err := s.catalog.DietaryPreferences(ctx, userID)
	if err != nil {
		common.LogWarn("載入飲食偏好失敗", zap.Uint("user_id", userID), zap.Error(err))
	} else if prefs != nil {
		c.Dietary = prefs
	}

	since := s.now().AddDate(0, 0, -s.cfg.RecentDays)
	recent, err := s.catalog.RecentMealRecipeIDs(ctx, userID, since)
	if err != nil {
		common.LogWarn("載入近期餐點失敗", zap.Uint("user_id", userID), zap.Error(err))
	} else {
		c.RecentRecipeIDs = recent
	}

	favorites, cuisines, err := s.catalog.FavoriteRecipes(ctx, userID, s.cfg.FavoriteMinRating)
	if err != nil {
		common.LogWarn("載入喜愛食譜失敗", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	c.FavoriteRecipeIDs = favorites
	c.FavoriteCuisines = cuisines
}

// ByCuisine 指定料理類型的推薦
func (s *Service) ByCuisine(ctx context.Context, cuisine string, dietary *DietaryFlags, limit int) ([]ScoredRecipe, error) {
	recipes, err := s.catalog.ListRecipes(ctx, RecipeFilter{Cuisine: cuisine, Dietary: dietary})
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	out := RankByCuisine(recipes, cuisine, dietary, s.limit(limit))
	s.observe("cuisine", len(out))
	return out, nil
}

// Quick 快速食譜推薦，maxTime 為 0 時使用預設值
func (s *Service) Quick(ctx context.Context, maxTime, limit int) ([]ScoredRecipe, error) {
	if maxTime <= 0 {
		maxTime = s.cfg.QuickMaxTime
	}
	recipes, err := s.catalog.ListRecipes(ctx, RecipeFilter{MaxTotalTime: maxTime})
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	out := RankQuick(recipes, maxTime, s.limit(limit))
	s.observe("quick", len(out))
	return out, nil
}

// Search 依食材搜尋食譜
func (s *Service) Search(ctx context.Context, ingredients []string, dietary *DietaryFlags, limit int) ([]MatchedRecipe, error) {
	recipes, err := s.catalog.ListRecipes(ctx, RecipeFilter{Dietary: dietary})
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	out := paginate(SearchByIngredients(recipes, ingredients, dietary), 0, s.limit(limit))
	s.observe("search", len(out))
	return out, nil
}

func (s *Service) limit(requested int) int {
	if requested <= 0 {
		return s.cfg.DefaultLimit
	}
	if requested > s.cfg.MaxLimit {
		return s.cfg.MaxLimit
	}
	return requested
}

func (s *Service) observe(mode string, count int) {
	if s.recorder != nil {
		s.recorder.ObserveRecommendation(mode, count)
	}
}
