package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eatease-backend/internal/core/recommend"
	"eatease-backend/internal/pkg/common"

	"gorm.io/gorm"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// Catalog 食譜、食材與使用者資料的查詢
type Catalog struct {
	db *gorm.DB
}

// NewCatalog 建立查詢物件
func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// ListRecipes 依條件載入食譜與食材，依 ID 排序
func (c *Catalog) ListRecipes(ctx context.Context, filter recommend.RecipeFilter) ([]recommend.Recipe, error) {
	q := c.db.WithContext(ctx).Model(&Recipe{}).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position, id")
		}).
		Preload("Ingredients.Ingredient")

	if cuisine := strings.TrimSpace(filter.Cuisine); cuisine != "" {
		q = q.Where("LOWER(cuisine_type) = ?", strings.ToLower(cuisine))
	}
	if filter.MaxTotalTime > 0 {
		q = q.Where("total_time <= ?", filter.MaxTotalTime)
	}
	if d := filter.Dietary; d != nil {
		if d.Vegetarian {
			q = q.Where("is_vegetarian = ?", true)
		}
		if d.Vegan {
			q = q.Where("is_vegan = ?", true)
		}
		if d.GlutenFree {
			q = q.Where("is_gluten_free = ?", true)
		}
		if d.DairyFree {
			q = q.Where("is_dairy_free = ?", true)
		}
	}

	var rows []Recipe
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	out := make([]recommend.Recipe, 0, len(rows))
	for _, r := range rows {
		out = append(out, toRecipe(r))
	}
	return out, nil
}

// DietaryPreferences 沒有偏好紀錄時回傳 nil
func (c *Catalog) DietaryPreferences(ctx context.Context, userID uint) (*recommend.DietaryFlags, error) {
	var pref UserPreference
	err := c.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return &recommend.DietaryFlags{
		Vegetarian: pref.IsVegetarian,
		Vegan:      pref.IsVegan,
		GlutenFree: pref.IsGlutenFree,
		DairyFree:  pref.IsDairyFree,
	}, nil
}

// RecentMealRecipeIDs since 之後已完成的餐點
func (c *Catalog) RecentMealRecipeIDs(ctx context.Context, userID uint, since time.Time) ([]uint, error) {
	var ids []uint
	err := c.db.WithContext(ctx).Model(&MealPlan{}).
		Where("user_id = ? AND planned_date >= ? AND is_completed = ?", userID, since, true).
		Distinct().
		Order("recipe_id").
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent meals: %w", err)
	}
	return ids, nil
}

// FavoriteRecipes 使用者評分至少 minRating 的食譜，以及這些食譜的料理類型
func (c *Catalog) FavoriteRecipes(ctx context.Context, userID uint, minRating int) ([]uint, []string, error) {
	db := c.db.WithContext(ctx)

	var ids []uint
	if err := db.Model(&MealPlan{}).
		Where("user_id = ? AND user_rating >= ?", userID, minRating).
		Distinct().
		Order("recipe_id").
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load favorite recipes: %w", err)
	}
	if len(ids) == 0 {
		return ids, nil, nil
	}

	var cuisines []string
	if err := db.Model(&Recipe{}).
		Where("id IN ? AND cuisine_type <> ''", ids).
		Distinct().
		Order("cuisine_type").
		Pluck("cuisine_type", &cuisines).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load favorite cuisines: %w", err)
	}
	return ids, cuisines, nil
}

// IngredientQuery 食材列表條件
type IngredientQuery struct {
	Category string
	Search   string
	Page     int
	PerPage  int
}

// IngredientPage 分頁結果
type IngredientPage struct {
	Ingredients []Ingredient `json:"ingredients"`
	Total       int64        `json:"total"`
	Page        int          `json:"page"`
	PerPage     int          `json:"per_page"`
	Pages       int          `json:"pages"`
}

// ListIngredients 依名稱排序的分頁食材列表
func (c *Catalog) ListIngredients(ctx context.Context, query IngredientQuery) (IngredientPage, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PerPage <= 0 {
		query.PerPage = defaultPerPage
	}
	if query.PerPage > maxPerPage {
		query.PerPage = maxPerPage
	}

	q := c.db.WithContext(ctx).Model(&Ingredient{})
	if category := strings.TrimSpace(query.Category); category != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(category))
	}
	if search := strings.TrimSpace(query.Search); search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	q = q.Session(&gorm.Session{})

	page := IngredientPage{Page: query.Page, PerPage: query.PerPage}
	if err := q.Count(&page.Total).Error; err != nil {
		return page, fmt.Errorf("failed to count ingredients: %w", err)
	}

	page.Ingredients = make([]Ingredient, 0, query.PerPage)
	if err := q.Order("name").
		Offset((query.Page - 1) * query.PerPage).
		Limit(query.PerPage).
		Find(&page.Ingredients).Error; err != nil {
		return page, fmt.Errorf("failed to list ingredients: %w", err)
	}
	page.Pages = int((page.Total + int64(query.PerPage) - 1) / int64(query.PerPage))
	return page, nil
}

// FindIngredientByName 不分大小寫查詢食材
func (c *Catalog) FindIngredientByName(ctx context.Context, name string) (uint, string, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, "", false, nil
	}
	var ing Ingredient
	err := c.db.WithContext(ctx).Where("LOWER(name) = ?", strings.ToLower(name)).First(&ing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, "", false, nil
	}
	if err != nil {
		return 0, "", false, fmt.Errorf("failed to find ingredient: %w", err)
	}
	return ing.ID, ing.Name, true, nil
}

// IngredientsByNames 不分大小寫取出名稱相符的食材，依名稱排序
func (c *Catalog) IngredientsByNames(ctx context.Context, names []string) ([]Ingredient, error) {
	lowered := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			lowered = append(lowered, n)
		}
	}
	out := make([]Ingredient, 0, len(lowered))
	if len(lowered) == 0 {
		return out, nil
	}
	if err := c.db.WithContext(ctx).
		Where("LOWER(name) IN ?", lowered).
		Order("name").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to load ingredients: %w", err)
	}
	return out, nil
}

// GetIngredient 依 ID 取出食材，不存在時回傳 ErrNotFound
func (c *Catalog) GetIngredient(ctx context.Context, id uint) (Ingredient, error) {
	var ing Ingredient
	err := c.db.WithContext(ctx).First(&ing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ing, common.ErrNotFound.WithMessage("Ingredient not found")
	}
	if err != nil {
		return ing, fmt.Errorf("failed to load ingredient: %w", err)
	}
	return ing, nil
}

func toRecipe(r Recipe) recommend.Recipe {
	lines := make([]recommend.IngredientLine, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		lines = append(lines, recommend.IngredientLine{
			ID:          ri.IngredientID,
			Name:        ri.Ingredient.Name,
			Quantity:    ri.Quantity,
			Unit:        ri.Unit,
			Preparation: ri.Preparation,
			IsOptional:  ri.IsOptional,
		})
	}
	return recommend.Recipe{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		CuisineType:  r.CuisineType,
		MealType:     r.MealType,
		Difficulty:   r.Difficulty,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		TotalTime:    r.TotalTime,
		Servings:     r.Servings,
		IsVegetarian: r.IsVegetarian,
		IsVegan:      r.IsVegan,
		IsGlutenFree: r.IsGlutenFree,
		IsDairyFree:  r.IsDairyFree,
		Rating:       r.Rating,
		RatingCount:  r.RatingCount,
		ViewCount:    r.ViewCount,
		ImageURL:     r.ImageURL,
		Ingredients:  lines,
	}
}
