package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func adobo() Recipe {
	return Recipe{
		ID:          1,
		Name:        "Chicken Adobo",
		CuisineType: "Filipino",
		Difficulty:  "medium",
		TotalTime:   45,
		Rating:      4.5,
		Ingredients: lines("Chicken", "Garlic", "Soy Sauce", "Vinegar"),
	}
}

func TestScore_Components(t *testing.T) {
	s := NewSignals([]string{"chicken breast", "garlic"}, nil, nil, []string{"filipino"})

	// 35 (一半食材) + 9 (評分) + 8 (新鮮感) + 4 (同料理類型) + 3 (45 分鐘)
	assert.InDelta(t, 59.0, Score(adobo(), s), 1e-9)
}

func TestScore_RecentAndFavorite(t *testing.T) {
	r := adobo()
	s := NewSignals(nil, []uint{r.ID}, []uint{r.ID}, nil)

	// 0 + 9 + 3 + 7 + 3
	assert.InDelta(t, 22.0, Score(r, s), 1e-9)
}

func TestScore_Maximum(t *testing.T) {
	r := Recipe{
		ID:          7,
		Rating:      5,
		TotalTime:   20,
		Ingredients: lines("Rice", "Egg"),
	}
	s := NewSignals([]string{"rice", "eggs"}, nil, []uint{7}, nil)

	assert.InDelta(t, 100.0, Score(r, s), 1e-9)
}

func TestScore_Bounds(t *testing.T) {
	r := Recipe{ID: 3, Rating: 12, TotalTime: 5, Ingredients: lines("Rice")}
	s := NewSignals([]string{"rice"}, nil, []uint{3}, nil)

	score := Score(r, s)
	assert.LessOrEqual(t, score, 100.0)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestScore_PrepTimeTiers(t *testing.T) {
	s := NewSignals(nil, []uint{1}, nil, nil)
	tests := []struct {
		minutes int
		want    float64
	}{
		{0, 8},
		{15, 8},
		{30, 8},
		{31, 6},
		{45, 6},
		{60, 5},
		{61, 3},
	}
	for _, tt := range tests {
		r := Recipe{ID: 1, TotalTime: tt.minutes}
		assert.InDelta(t, tt.want, Score(r, s), 1e-9, "total time %d", tt.minutes)
	}
}

func TestScore_EmptyCuisineNeverMatches(t *testing.T) {
	r := Recipe{ID: 9, TotalTime: 90}
	s := NewSignals(nil, nil, nil, []string{""})
	// 只有新鮮感分數
	assert.InDelta(t, 8.0, Score(r, s), 1e-9)
}

func TestReasoning(t *testing.T) {
	s := NewSignals([]string{"chicken breast", "garlic"}, nil, nil, nil)
	assert.Equal(t,
		"Good match with your ingredients (50%) • Highly rated (4.5/5) • Try something new",
		Reasoning(adobo(), s))

	quick := Recipe{
		ID:          2,
		Difficulty:  "Easy",
		TotalTime:   20,
		Ingredients: lines("Rice", "Egg", "Garlic", "Oil", "Salt"),
	}
	s = NewSignals([]string{"rice", "egg", "garlic", "oil"}, []uint{2}, nil, nil)
	assert.Equal(t,
		"Great match with your ingredients (80%) • Quick to make (20 min) • Easy to prepare",
		Reasoning(quick, s))

	// 未填時間的食譜一樣算快速
	untimed := Recipe{ID: 3, Rating: 3}
	s = NewSignals(nil, []uint{3}, nil, nil)
	assert.Equal(t, "Quick to make (0 min)", Reasoning(untimed, s))
}

func TestReasoning_Fallback(t *testing.T) {
	r := Recipe{ID: 5, TotalTime: 90, Difficulty: "hard"}
	s := NewSignals(nil, []uint{5}, nil, nil)
	assert.Equal(t, "Recommended for you", Reasoning(r, s))
}
