package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPartialMatch(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"short string rejected", "car", "carrot", false},
		{"word boundary accepted", "carrot", "fresh carrot", true},
		{"embedded fragment rejected", "appl", "pineapple", false},
		{"near equal length accepted", "tomato", "tomatos", true},
		{"suffix without boundary below ratio", "salt", "salted", false},
		{"hyphen is a boundary", "garlic", "garlic-powder", true},
		{"identical strings", "ginger", "ginger", true},
		{"both short", "egg", "egg", false},
		{"plural by length ratio", "bananas", "banana", true},
		{"multi word inner phrase", "soy sauce", "dark soy sauce bottle", true},
		{"prefix of a longer word", "pork", "porkchop special", false},
		{"empty", "", "carrot", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPartialMatch(tt.a, tt.b))
		})
	}
}

func TestIsValidPartialMatch_Symmetric(t *testing.T) {
	words := []string{
		"car", "carrot", "fresh carrot", "appl", "pineapple", "apple",
		"soy sauce", "sauce", "chicken breast", "chicken", "egg", "eggs",
		"kamote", "sweet potato", "potato", "luya", "ginger root",
	}
	for _, a := range words {
		for _, b := range words {
			assert.Equal(t, IsValidPartialMatch(a, b), IsValidPartialMatch(b, a), "%q vs %q", a, b)
		}
	}
}

func TestContainsWord(t *testing.T) {
	assert.True(t, containsWord("fresh carrot", "carrot"))
	assert.True(t, containsWord("carrot cake", "carrot"))
	// 第一次出現不在邊界上，第二次才符合
	assert.True(t, containsWord("carrots and carrot", "carrot"))
	assert.False(t, containsWord("carrots", "carrot"))
	assert.False(t, containsWord("pineapple", "apple"))
	assert.True(t, containsWord("ñame root", "root"))
}
