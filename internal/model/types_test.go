package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestProductFilterMatch(t *testing.T) {
	rated := &Product{Price: 50, Featured: true, Rating: ptr(4.5)}
	unrated := &Product{Price: 150}

	tests := []struct {
		name   string
		filter ProductFilter
		p      *Product
		want   bool
	}{
		{"zero filter", ProductFilter{}, unrated, true},
		{"featured match", ProductFilter{Featured: ptr(true)}, rated, true},
		{"featured miss", ProductFilter{Featured: ptr(true)}, unrated, false},
		{"price below", ProductFilter{MaxPrice: ptr(100.0)}, rated, true},
		{"price equal is excluded", ProductFilter{MaxPrice: ptr(50.0)}, rated, false},
		{"price above", ProductFilter{MaxPrice: ptr(100.0)}, unrated, false},
		{"rating above", ProductFilter{MinRating: ptr(4.0)}, rated, true},
		{"rating equal is excluded", ProductFilter{MinRating: ptr(4.5)}, rated, false},
		{"no rating never matches", ProductFilter{MinRating: ptr(-1.0)}, unrated, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(tt.p))
		})
	}
}

func TestProductPatchApply(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	p := Product{ID: "x", Name: "old", Price: 10, Company: "ikea"}

	assert.True(t, ProductPatch{}.Empty())

	patch := ProductPatch{Name: ptr("new"), Rating: ptr(3.0), CreatedAt: &created}
	assert.False(t, patch.Empty())
	patch.Apply(&p)

	assert.Equal(t, "new", p.Name)
	assert.Equal(t, 10.0, p.Price)
	assert.Equal(t, "ikea", p.Company)
	assert.Equal(t, created, p.CreatedAt)
	if assert.NotNil(t, p.Rating) {
		assert.Equal(t, 3.0, *p.Rating)
	}
}

func TestProductPatchClearRating(t *testing.T) {
	p := Product{Name: "lamp", Rating: ptr(4.5)}

	patch := ProductPatch{ClearRating: true}
	assert.False(t, patch.Empty())
	patch.Apply(&p)
	assert.Nil(t, p.Rating)
	assert.Equal(t, "lamp", p.Name)
}

func TestProductUnmarshal_CreatedAt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"timestamp", `"2024-03-01T10:00:00Z"`, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"date only", `"2024-03-01"`, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"null", `null`, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Product
			require.NoError(t, json.Unmarshal([]byte(`{"name":"lamp","createdAt":`+tt.in+`}`), &p))
			assert.Equal(t, "lamp", p.Name)
			assert.True(t, tt.want.Equal(p.CreatedAt), "got %v", p.CreatedAt)
		})
	}

	var p Product
	assert.Error(t, json.Unmarshal([]byte(`{"createdAt":"yesterday"}`), &p))
}

func TestProductPatchUnmarshal(t *testing.T) {
	var absent ProductPatch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"desk"}`), &absent))
	assert.Nil(t, absent.Rating)
	assert.False(t, absent.ClearRating)
	assert.Equal(t, "desk", *absent.Name)

	var cleared ProductPatch
	require.NoError(t, json.Unmarshal([]byte(`{"rating":null}`), &cleared))
	assert.Nil(t, cleared.Rating)
	assert.True(t, cleared.ClearRating)
	assert.False(t, cleared.Empty())

	var set ProductPatch
	require.NoError(t, json.Unmarshal([]byte(`{"rating":3.5,"createdAt":"2024-03-02"}`), &set))
	require.NotNil(t, set.Rating)
	assert.Equal(t, 3.5, *set.Rating)
	require.NotNil(t, set.CreatedAt)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), *set.CreatedAt)

	var bad ProductPatch
	assert.Error(t, json.Unmarshal([]byte(`{"rating":"high"}`), &bad))
}
