package recommend

import (
	"fmt"
	"strings"
)

// 各項評分上限，總和為 100
const (
	weightMatch     = 70.0
	weightRating    = 10.0
	noveltyNew      = 8.0
	noveltyRecent   = 3.0
	affinityFav     = 7.0
	affinityCuisine = 4.0
	prepQuick       = 5.0
	prepMedium      = 3.0
	prepLong        = 2.0

	maxRating = 5.0
)

const (
	reasonSeparator = " • "
	reasonFallback  = "Recommended for you"
)

// Signals 個人化評分所需的資料
type Signals struct {
	Available AvailableSet
	Recent    IDSet
	Favorites IDSet

	cuisines cuisineSet
}

// NewSignals 建立評分資料，favoriteCuisines 為使用者喜愛食譜的料理類型
func NewSignals(available []string, recent, favorites []uint, favoriteCuisines []string) *Signals {
	return &Signals{
		Available: NewAvailableSet(available),
		Recent:    NewIDSet(recent...),
		Favorites: NewIDSet(favorites...),
		cuisines:  newCuisineSet(favoriteCuisines),
	}
}

func (s *Signals) favoriteCuisine(cuisine string) bool {
	return s.cuisines.has(cuisine)
}

// Score 計算食譜推薦分數 (0..100)
func Score(r Recipe, s *Signals) float64 {
	return scoreWithMatch(r, s, ComputeMatch(r.Ingredients, s.Available))
}

func scoreWithMatch(r Recipe, s *Signals, match MatchResult) float64 {
	score := 0.0

	if !s.Available.Empty() {
		score += match.fraction() * weightMatch
	}

	if r.Rating > 0 {
		score += clamp(r.Rating, 0, maxRating) / maxRating * weightRating
	}

	if s.Recent.Has(r.ID) {
		score += noveltyRecent
	} else {
		score += noveltyNew
	}

	switch {
	case s.Favorites.Has(r.ID):
		score += affinityFav
	case s.favoriteCuisine(r.CuisineType):
		score += affinityCuisine
	}

	switch {
	case r.TotalTime <= 30:
		score += prepQuick
	case r.TotalTime <= 45:
		score += prepMedium
	case r.TotalTime <= 60:
		score += prepLong
	}

	return clamp(score, 0, 100)
}

// Reasoning 產生推薦理由，只用於顯示
func Reasoning(r Recipe, s *Signals) string {
	return reasoningWithMatch(r, s, ComputeMatch(r.Ingredients, s.Available))
}

func reasoningWithMatch(r Recipe, s *Signals, match MatchResult) string {
	var reasons []string

	if !s.Available.Empty() {
		pct := match.fraction()
		switch {
		case pct >= 0.8:
			reasons = append(reasons, fmt.Sprintf("Great match with your ingredients (%d%%)", int(pct*100)))
		case pct >= 0.5:
			reasons = append(reasons, fmt.Sprintf("Good match with your ingredients (%d%%)", int(pct*100)))
		}
	}

	if r.Rating >= 4.0 {
		reasons = append(reasons, fmt.Sprintf("Highly rated (%.1f/5)", r.Rating))
	}

	if !s.Recent.Has(r.ID) {
		reasons = append(reasons, "Try something new")
	}

	if r.TotalTime <= 30 {
		reasons = append(reasons, fmt.Sprintf("Quick to make (%d min)", r.TotalTime))
	}

	if strings.EqualFold(r.Difficulty, "easy") {
		reasons = append(reasons, "Easy to prepare")
	}

	if len(reasons) == 0 {
		return reasonFallback
	}
	return strings.Join(reasons, reasonSeparator)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
