package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDictionary_Lookup(t *testing.T) {
	dict := DefaultDictionary()

	b, ok := dict.Lookup("water spinach")
	require.True(t, ok)
	name, mapped := b.Name()
	assert.True(t, mapped)
	assert.Equal(t, "Kangkong", name)

	b, ok = dict.Lookup("food")
	require.True(t, ok)
	assert.True(t, b.IsSuppressed())
	_, mapped = b.Name()
	assert.False(t, mapped)

	_, ok = dict.Lookup("spaceship")
	assert.False(t, ok)
}

func TestDefaultDictionary_SuppressedTerms(t *testing.T) {
	dict := DefaultDictionary()
	for _, label := range []string{"vegetable", "food", "ingredient", "produce", "meat", "dish", "meal", "cuisine"} {
		b, ok := dict.Lookup(label)
		require.True(t, ok, label)
		assert.True(t, b.IsSuppressed(), label)
	}
}

func TestNewDictionary_OrderAndNormalization(t *testing.T) {
	dict := NewDictionary([]Entry{
		mapped(" Onion ", "Onion"),
		mapped("garlic", "Garlic"),
		suppressed("food"),
		mapped("onion", "Red Onion"),
		mapped("", "Nothing"),
	})

	assert.Equal(t, 3, dict.Len())

	var labels []string
	dict.Each(func(e Entry) bool {
		labels = append(labels, e.Label)
		return true
	})
	assert.Equal(t, []string{"onion", "garlic", "food"}, labels)

	b, ok := dict.Lookup("onion")
	require.True(t, ok)
	name, _ := b.Name()
	assert.Equal(t, "Red Onion", name)

	assert.Equal(t, []string{"Red Onion", "Garlic"}, dict.CanonicalNames())
}

func TestDictionary_EachStops(t *testing.T) {
	count := 0
	DefaultDictionary().Each(func(Entry) bool {
		count++
		return count < 3
	})
	assert.Equal(t, 3, count)
}

func TestDefaultDictionary_CanonicalNamesUnique(t *testing.T) {
	names := DefaultDictionary().CanonicalNames()
	seen := make(map[string]bool)
	for _, n := range names {
		assert.False(t, seen[n], "duplicate canonical name %q", n)
		seen[n] = true
	}
	assert.Contains(t, names, "Kangkong")
	assert.Contains(t, names, "Eggs")
}
