package recommend

import "strings"

// IngredientLine 食譜中的一項食材
type IngredientLine struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Preparation string  `json:"preparation,omitempty"`
	IsOptional  bool    `json:"is_optional"`
}

// Recipe 推薦用的食譜資料，由儲存層載入
type Recipe struct {
	ID           uint             `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	CuisineType  string           `json:"cuisine_type,omitempty"`
	MealType     string           `json:"meal_type,omitempty"`
	Difficulty   string           `json:"difficulty_level,omitempty"`
	PrepTime     int              `json:"prep_time"`
	CookTime     int              `json:"cook_time"`
	TotalTime    int              `json:"total_time"`
	Servings     int              `json:"servings"`
	IsVegetarian bool             `json:"is_vegetarian"`
	IsVegan      bool             `json:"is_vegan"`
	IsGlutenFree bool             `json:"is_gluten_free"`
	IsDairyFree  bool             `json:"is_dairy_free"`
	Rating       float64          `json:"rating"`
	RatingCount  int              `json:"rating_count"`
	ViewCount    int              `json:"view_count"`
	ImageURL     string           `json:"image_url,omitempty"`
	Ingredients  []IngredientLine `json:"ingredients"`
}

// DietaryFlags 飲食限制，設定為 true 的項目必須符合
type DietaryFlags struct {
	Vegetarian bool `json:"is_vegetarian" form:"is_vegetarian"`
	Vegan      bool `json:"is_vegan" form:"is_vegan"`
	GlutenFree bool `json:"is_gluten_free" form:"is_gluten_free"`
	DairyFree  bool `json:"is_dairy_free" form:"is_dairy_free"`
}

// Any 是否有任何限制
func (f DietaryFlags) Any() bool {
	return f.Vegetarian || f.Vegan || f.GlutenFree || f.DairyFree
}

// Allows 食譜是否符合所有限制
func (f DietaryFlags) Allows(r Recipe) bool {
	if f.Vegetarian && !r.IsVegetarian {
		return false
	}
	if f.Vegan && !r.IsVegan {
		return false
	}
	if f.GlutenFree && !r.IsGlutenFree {
		return false
	}
	if f.DairyFree && !r.IsDairyFree {
		return false
	}
	return true
}

// IDSet 食譜 ID 集合
type IDSet map[uint]struct{}

// NewIDSet 建立 ID 集合
func NewIDSet(ids ...uint) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has 是否包含
func (s IDSet) Has(id uint) bool {
	_, ok := s[id]
	return ok
}

// cuisineSet 不分大小寫的料理類型集合
type cuisineSet map[string]struct{}

func newCuisineSet(cuisines []string) cuisineSet {
	s := make(cuisineSet, len(cuisines))
	for _, c := range cuisines {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		s[c] = struct{}{}
	}
	return s
}

func (s cuisineSet) has(cuisine string) bool {
	c := strings.ToLower(strings.TrimSpace(cuisine))
	if c == "" {
		return false
	}
	_, ok := s[c]
	return ok
}

// ScoredRecipe 評分後的食譜
type ScoredRecipe struct {
	Recipe    Recipe       `json:"recipe"`
	Score     float64      `json:"score"`
	MatchInfo *MatchResult `json:"match_info,omitempty"`
	Reasoning string       `json:"reasoning,omitempty"`
}
