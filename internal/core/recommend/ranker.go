package recommend

import (
	"sort"
	"strings"
)

const (
	// DefaultMinMatchPercentage 提供食材時的最低符合度
	DefaultMinMatchPercentage = 20.0
	// DefaultQuickMaxTime 快速食譜的預設時間上限（分鐘）
	DefaultQuickMaxTime = 30

	cuisineScore = 80.0
	quickScore   = 75.0
)

// Criteria 個人化推薦條件
type Criteria struct {
	Candidates []Recipe
	// Dietary 為 nil 表示使用者沒有設定偏好
	Dietary            *DietaryFlags
	Available          []string
	RecentRecipeIDs    []uint
	FavoriteRecipeIDs  []uint
	FavoriteCuisines   []string
	MinMatchPercentage float64
	Offset             int
	Limit              int
}

// Ranking 排序結果，Total 為分頁前的數量
type Ranking struct {
	Recipes []ScoredRecipe `json:"recommendations"`
	Total   int            `json:"total"`
}

// Rank 依個人化分數排序食譜
func Rank(c Criteria) Ranking {
	signals := NewSignals(c.Available, c.RecentRecipeIDs, c.FavoriteRecipeIDs, c.FavoriteCuisines)
	minMatch := c.MinMatchPercentage
	if minMatch <= 0 {
		minMatch = DefaultMinMatchPercentage
	}

	scored := make([]ScoredRecipe, 0, len(c.Candidates))
	for _, r := range c.Candidates {
		if c.Dietary != nil && !c.Dietary.Allows(r) {
			continue
		}

		match := ComputeMatch(r.Ingredients, signals.Available)
		if !signals.Available.Empty() && match.MatchPercentage < minMatch {
			continue
		}

		m := match
		scored = append(scored, ScoredRecipe{
			Recipe:    r,
			Score:     scoreWithMatch(r, signals, match),
			MatchInfo: &m,
			Reasoning: reasoningWithMatch(r, signals, match),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return Ranking{Recipes: paginate(scored, c.Offset, c.Limit), Total: len(scored)}
}

// RankByCuisine 指定料理類型的推薦，依評分再依瀏覽數排序
func RankByCuisine(candidates []Recipe, cuisine string, dietary *DietaryFlags, limit int) []ScoredRecipe {
	cuisine = strings.TrimSpace(cuisine)
	filtered := make([]Recipe, 0, len(candidates))
	for _, r := range candidates {
		if !strings.EqualFold(strings.TrimSpace(r.CuisineType), cuisine) {
			continue
		}
		if dietary != nil && !dietary.Allows(r) {
			continue
		}
		filtered = append(filtered, r)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Rating != filtered[j].Rating {
			return filtered[i].Rating > filtered[j].Rating
		}
		return filtered[i].ViewCount > filtered[j].ViewCount
	})

	return flatScored(filtered, cuisineScore, limit)
}

// RankQuick 烹調時間不超過 maxTime 分鐘的食譜，依評分排序
func RankQuick(candidates []Recipe, maxTime, limit int) []ScoredRecipe {
	if maxTime <= 0 {
		maxTime = DefaultQuickMaxTime
	}
	filtered := make([]Recipe, 0, len(candidates))
	for _, r := range candidates {
		if r.TotalTime <= maxTime {
			filtered = append(filtered, r)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Rating > filtered[j].Rating
	})

	return flatScored(filtered, quickScore, limit)
}

// MatchedRecipe 食材搜尋結果
type MatchedRecipe struct {
	Recipe    Recipe      `json:"recipe"`
	MatchInfo MatchResult `json:"match_info"`
}

// SearchByIngredients 找出至少有一項食材符合的食譜，依符合度排序
func SearchByIngredients(candidates []Recipe, available []string, dietary *DietaryFlags) []MatchedRecipe {
	set := NewAvailableSet(available)
	out := make([]MatchedRecipe, 0)
	if set.Empty() {
		return out
	}
	for _, r := range candidates {
		if dietary != nil && !dietary.Allows(r) {
			continue
		}
		match := ComputeMatch(r.Ingredients, set)
		if match.MatchingCount == 0 {
			continue
		}
		out = append(out, MatchedRecipe{Recipe: r, MatchInfo: match})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchInfo.MatchPercentage > out[j].MatchInfo.MatchPercentage
	})
	return out
}

func flatScored(recipes []Recipe, score float64, limit int) []ScoredRecipe {
	out := make([]ScoredRecipe, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, ScoredRecipe{Recipe: r, Score: score})
	}
	return paginate(out, 0, limit)
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
