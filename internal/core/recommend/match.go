package recommend

import (
	"math"
	"strings"
)

// AvailableSet 使用者手邊的食材，名稱一律小寫
type AvailableSet struct {
	names map[string]struct{}
	order []string
}

// NewAvailableSet 建立可用食材集合，空白名稱會被忽略
func NewAvailableSet(names []string) AvailableSet {
	s := AvailableSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if _, dup := s.names[n]; dup {
			continue
		}
		s.names[n] = struct{}{}
		s.order = append(s.order, n)
	}
	return s
}

// Empty 是否沒有任何食材
func (s AvailableSet) Empty() bool {
	return len(s.order) == 0
}

// Len 食材數量
func (s AvailableSet) Len() int {
	return len(s.order)
}

// IngredientMatches 食譜食材是否在可用食材中：完全相同，或任一方為另一方的子字串
func IngredientMatches(name string, available AvailableSet) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || available.Empty() {
		return false
	}
	if _, ok := available.names[n]; ok {
		return true
	}
	for _, a := range available.order {
		if strings.Contains(a, n) || strings.Contains(n, a) {
			return true
		}
	}
	return false
}

// IngredientRef 比對結果中的食材
type IngredientRef struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	IsOptional bool   `json:"is_optional"`
}

// MatchResult 食譜與可用食材的比對結果
type MatchResult struct {
	MatchPercentage     float64         `json:"match_percentage"`
	MatchingCount       int             `json:"matching_count"`
	TotalCount          int             `json:"total_count"`
	MatchingIngredients []IngredientRef `json:"matching_ingredients"`
	MissingIngredients  []IngredientRef `json:"missing_ingredients"`
}

// fraction 未四捨五入的比例 (0..1)
func (m MatchResult) fraction() float64 {
	if m.TotalCount == 0 {
		return 0
	}
	return float64(m.MatchingCount) / float64(m.TotalCount)
}

// ComputeMatch 計算食譜食材的符合程度
func ComputeMatch(ingredients []IngredientLine, available AvailableSet) MatchResult {
	result := MatchResult{
		TotalCount:          len(ingredients),
		MatchingIngredients: []IngredientRef{},
		MissingIngredients:  []IngredientRef{},
	}

	for _, ing := range ingredients {
		ref := IngredientRef{ID: ing.ID, Name: ing.Name, IsOptional: ing.IsOptional}
		if IngredientMatches(ing.Name, available) {
			result.MatchingCount++
			result.MatchingIngredients = append(result.MatchingIngredients, ref)
			continue
		}
		result.MissingIngredients = append(result.MissingIngredients, ref)
	}

	if result.TotalCount > 0 && !available.Empty() {
		result.MatchPercentage = roundTo(result.fraction()*100, 1)
	}
	return result
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
