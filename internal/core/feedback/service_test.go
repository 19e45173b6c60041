package feedback

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"eatease-backend/internal/core/detection"
	"eatease-backend/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu      sync.Mutex
	records []Record
	failFor string
	inputs  []CorrectionInput
}

func (m *memoryStore) RecordCorrection(_ context.Context, in CorrectionInput) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, in)
	if in.DetectedLabel == m.failFor {
		return Record{}, errors.New("disk full")
	}
	for i := range m.records {
		r := &m.records[i]
		if r.DetectedLabel == in.DetectedLabel && r.CorrectIngredient == in.CorrectIngredient {
			r.CorrectionCount++
			r.LearnedConfidence = min(0.99, 0.5+0.1*float64(r.CorrectionCount))
			return *r, nil
		}
	}
	rec := Record{
		ID:                uint(len(m.records) + 1),
		DetectedLabel:     in.DetectedLabel,
		CorrectIngredient: in.CorrectIngredient,
		CorrectionCount:   1,
		LearnedConfidence: 0.5,
	}
	m.records = append(m.records, rec)
	return rec, nil
}

func (m *memoryStore) LearnedMappings(_ context.Context, minCorrections int) (map[string]detection.LearnedMapping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]detection.LearnedMapping{}
	for _, r := range m.records {
		if r.CorrectionCount < minCorrections {
			continue
		}
		if cur, ok := out[r.DetectedLabel]; !ok || r.CorrectionCount > cur.Count {
			out[r.DetectedLabel] = detection.LearnedMapping{
				Ingredient: r.CorrectIngredient,
				Count:      r.CorrectionCount,
				Confidence: r.LearnedConfidence,
			}
		}
	}
	return out, nil
}

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate() { c.calls++ }

type catalogFinder struct {
	names map[string]uint
	err   error
}

func (f catalogFinder) FindIngredientByName(_ context.Context, name string) (uint, string, bool, error) {
	if f.err != nil {
		return 0, "", false, f.err
	}
	for canonical, id := range f.names {
		if strings.EqualFold(canonical, name) {
			return id, canonical, true, nil
		}
	}
	return 0, "", false, nil
}

func TestSubmit_PartialFailureDoesNotAbort(t *testing.T) {
	store := &memoryStore{failFor: "broken"}
	inv := &countingInvalidator{}
	svc := NewService(store, inv)

	out, err := svc.Submit(context.Background(), 3, []Correction{
		{DetectedLabel: "  Kangkong Leaves ", CorrectIngredient: "Kangkong"},
		{DetectedLabel: "", CorrectIngredient: "Garlic"},
		{DetectedLabel: "broken", CorrectIngredient: "Onion"},
		{DetectedLabel: "leafy green", CorrectIngredient: " "},
	})
	require.NoError(t, err)
	require.Len(t, out.Results, 4)
	assert.Equal(t, 1, out.Learned)

	assert.True(t, out.Results[0].Success)
	assert.Equal(t, "kangkong leaves", out.Results[0].DetectedLabel)
	assert.Equal(t, "Learned: 'kangkong leaves' -> 'Kangkong'", out.Results[0].Message)

	for _, r := range out.Results[1:] {
		assert.False(t, r.Success)
		assert.NotEmpty(t, r.Error)
	}
	assert.Equal(t, 1, inv.calls)

	require.NotEmpty(t, store.inputs)
	require.NotNil(t, store.inputs[0].UserID)
	assert.Equal(t, uint(3), *store.inputs[0].UserID)
}

func TestSubmit_NothingStoredKeepsCache(t *testing.T) {
	inv := &countingInvalidator{}
	svc := NewService(&memoryStore{}, inv)

	out, err := svc.Submit(context.Background(), 0, []Correction{{DetectedLabel: "x"}})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Learned)
	assert.Equal(t, 0, inv.calls)
}

func TestSubmit_BatchValidation(t *testing.T) {
	svc := NewService(&memoryStore{}, nil, WithBatchLimit(2))

	_, err := svc.Submit(context.Background(), 0, nil)
	assert.True(t, common.IsValidationError(err))

	_, err = svc.Submit(context.Background(), 0, make([]Correction, 3))
	assert.True(t, common.IsValidationError(err))
}

func TestSubmit_UsesCanonicalIngredient(t *testing.T) {
	store := &memoryStore{}
	finder := catalogFinder{names: map[string]uint{"Water Spinach": 12}}
	svc := NewService(store, nil, WithIngredientFinder(finder))

	ai := " Spinach "
	out, err := svc.Submit(context.Background(), 0, []Correction{
		{DetectedLabel: "swamp cabbage", AIMapped: &ai, CorrectIngredient: "water spinach"},
	})
	require.NoError(t, err)
	require.True(t, out.Results[0].Success)

	in := store.inputs[0]
	assert.Equal(t, "Water Spinach", in.CorrectIngredient)
	require.NotNil(t, in.IngredientID)
	assert.Equal(t, uint(12), *in.IngredientID)
	require.NotNil(t, in.AIMapped)
	assert.Equal(t, "Spinach", *in.AIMapped)
	assert.Nil(t, in.UserID)
}

func TestSubmit_FinderErrorStillStores(t *testing.T) {
	store := &memoryStore{}
	svc := NewService(store, nil, WithIngredientFinder(catalogFinder{err: errors.New("timeout")}))

	out, err := svc.Submit(context.Background(), 0, []Correction{
		{DetectedLabel: "ube", CorrectIngredient: "Purple Yam"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Learned)
	assert.Nil(t, store.inputs[0].IngredientID)
}

func TestSubmit_CorrectionTakesEffectImmediately(t *testing.T) {
	store := &memoryStore{}
	cache := detection.NewLearnedCache(store)
	resolver := detection.NewResolver(nil, cache)
	svc := NewService(store, cache)
	ctx := context.Background()

	_, ok := resolver.Resolve(ctx, "mystery leaf")
	require.False(t, ok)

	_, err := svc.Submit(ctx, 0, []Correction{{DetectedLabel: "Mystery Leaf", CorrectIngredient: "Malunggay"}})
	require.NoError(t, err)

	name, ok := resolver.Resolve(ctx, "mystery leaf")
	require.True(t, ok)
	assert.Equal(t, "Malunggay", name)
}

func TestLearnedMappings_SortedByLabel(t *testing.T) {
	store := &memoryStore{}
	svc := NewService(store, nil)
	ctx := context.Background()

	for _, c := range []Correction{
		{DetectedLabel: "sitaw pods", CorrectIngredient: "String Beans"},
		{DetectedLabel: "ampalaya fruit", CorrectIngredient: "Bitter Gourd"},
		{DetectedLabel: "ampalaya fruit", CorrectIngredient: "Bitter Gourd"},
		{DetectedLabel: "ampalaya fruit", CorrectIngredient: "Cucumber"},
	} {
		_, err := svc.Submit(ctx, 0, []Correction{c})
		require.NoError(t, err)
	}

	views, err := svc.LearnedMappings(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "ampalaya fruit", views[0].DetectedLabel)
	assert.Equal(t, "Bitter Gourd", views[0].Ingredient)
	assert.Equal(t, 2, views[0].CorrectionCount)
	assert.InDelta(t, 0.7, views[0].LearnedConfidence, 1e-9)
	assert.Equal(t, "sitaw pods", views[1].DetectedLabel)
}
