package recipe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eatease-backend/internal/core/recommend"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRecommender struct {
	req     recommend.Request
	cuisine string
	dietary *recommend.DietaryFlags
	maxTime int
	limit   int
	search  []string
	err     error
}

func (f *fakeRecommender) Recommend(ctx context.Context, req recommend.Request) (recommend.Ranking, error) {
	f.req = req
	if f.err != nil {
		return recommend.Ranking{}, f.err
	}
	return recommend.Ranking{
		Recipes: []recommend.ScoredRecipe{{Recipe: recommend.Recipe{ID: 1, Name: "Adobo"}, Score: 80}},
		Total:   3,
	}, nil
}

func (f *fakeRecommender) ByCuisine(ctx context.Context, cuisine string, dietary *recommend.DietaryFlags, limit int) ([]recommend.ScoredRecipe, error) {
	f.cuisine, f.dietary, f.limit = cuisine, dietary, limit
	return []recommend.ScoredRecipe{{Recipe: recommend.Recipe{ID: 2, Name: "Sinigang"}, Score: 4.5}}, f.err
}

func (f *fakeRecommender) Quick(ctx context.Context, maxTime, limit int) ([]recommend.ScoredRecipe, error) {
	f.maxTime, f.limit = maxTime, limit
	return []recommend.ScoredRecipe{}, f.err
}

func (f *fakeRecommender) Search(ctx context.Context, ingredients []string, dietary *recommend.DietaryFlags, limit int) ([]recommend.MatchedRecipe, error) {
	f.search, f.dietary, f.limit = ingredients, dietary, limit
	return []recommend.MatchedRecipe{{Recipe: recommend.Recipe{ID: 3, Name: "Tinola"}}}, f.err
}

func newRouter(f *fakeRecommender) *gin.Engine {
	h := NewHandler(f)
	r := gin.New()
	r.POST("/search", h.Search)
	r.POST("/recommend", func(c *gin.Context) {
		c.Set("user_id", uint(5))
		h.Recommend(c)
	})
	r.GET("/quick", h.Quick)
	r.GET("/cuisine/:cuisine_type", h.ByCuisine)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSearch(t *testing.T) {
	f := &fakeRecommender{}
	r := newRouter(f)

	w := do(r, http.MethodPost, "/search", `{"ingredients":["chicken","garlic"],"dietary_preferences":{"is_vegan":true},"limit":5}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"chicken", "garlic"}, f.search)
	require.NotNil(t, f.dietary)
	assert.True(t, f.dietary.Vegan)
	assert.Equal(t, 5, f.limit)
	assert.Contains(t, w.Body.String(), `"recipes":[`)
	assert.Contains(t, w.Body.String(), "Tinola")

	w = do(r, http.MethodPost, "/search", `{"ingredients":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Ingredients list is required")

	w = do(r, http.MethodPost, "/search", `{bad`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommend(t *testing.T) {
	f := &fakeRecommender{}
	r := newRouter(f)

	w := do(r, http.MethodPost, "/recommend", `{"ingredients":["pork"],"limit":2,"offset":-4}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, recommend.Request{UserID: 5, Ingredients: []string{"pork"}, Limit: 2, Offset: 0}, f.req)
	assert.Contains(t, w.Body.String(), `"recommendations":[`)
	assert.Contains(t, w.Body.String(), `"total":3`)

	// 空的請求體也可以
	w = do(r, http.MethodPost, "/recommend", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(5), f.req.UserID)
	assert.Empty(t, f.req.Ingredients)

	f.err = errors.New("db gone")
	w = do(r, http.MethodPost, "/recommend", `{}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db gone")
}

func TestQuick(t *testing.T) {
	f := &fakeRecommender{}
	r := newRouter(f)

	w := do(r, http.MethodGet, "/quick?max_time=20&limit=4", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 20, f.maxTime)
	assert.Equal(t, 4, f.limit)
	assert.JSONEq(t, `{"recommendations":[],"total":0}`, w.Body.String())

	w = do(r, http.MethodGet, "/quick?max_time=soon", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestByCuisine(t *testing.T) {
	f := &fakeRecommender{}
	r := newRouter(f)

	w := do(r, http.MethodGet, "/cuisine/Filipino?is_vegetarian=true&is_dairy_free=0&limit=3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Filipino", f.cuisine)
	assert.Equal(t, 3, f.limit)
	require.NotNil(t, f.dietary)
	assert.Equal(t, recommend.DietaryFlags{Vegetarian: true}, *f.dietary)
	assert.Contains(t, w.Body.String(), `"cuisine_type":"Filipino"`)
	assert.Contains(t, w.Body.String(), `"total":1`)

	do(r, http.MethodGet, "/cuisine/Thai", "")
	assert.Nil(t, f.dietary)
}

func TestFlagQuery(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"", false},
		{"is_vegan", true},
		{"is_vegan=true", true},
		{"is_vegan=1", true},
		{"is_vegan=false", false},
		{"is_vegan=0", false},
		{"is_vegan=No", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			assert.Equal(t, tt.want, flagQuery(c, "is_vegan"))
		})
	}
}
