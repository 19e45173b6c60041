package common

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomError_IsByCode(t *testing.T) {
	wrapped := fmt.Errorf("upload: %w", ErrInvalidImageSize.Wrap(errors.New("too big")))
	assert.ErrorIs(t, wrapped, ErrInvalidImageSize)
	assert.NotErrorIs(t, wrapped, ErrInvalidImageType)

	withMsg := ErrNotFound.WithMessage("Ingredient not found")
	assert.ErrorIs(t, withMsg, ErrNotFound)
	assert.Equal(t, "資源不存在", ErrNotFound.Message)
}

func TestToErrorResponse(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
		msg    string
	}{
		{"custom", ErrNoImage, http.StatusBadRequest, "NO_IMAGE", "No image file provided"},
		{"wrapped custom", fmt.Errorf("x: %w", ErrDetectionFailed.Wrap(errors.New("secret upstream"))), http.StatusBadGateway, "DETECTION_FAILED", "Ingredient detection failed"},
		{"validation", NewValidationError("limit must be positive"), http.StatusBadRequest, ErrCodeInvalidRequest, "limit must be positive"},
		{"plain", errors.New("sql: connection refused"), http.StatusInternalServerError, ErrCodeInternalError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := ToErrorResponse(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.msg, body.Message)
		})
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	RespondError(c, ErrConflict)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"code":"CONFLICT","error":"Duplicate request in progress"}`, w.Body.String())
	assert.True(t, c.IsAborted())
	require.Len(t, c.Errors, 1)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n[{\"label\":\"rice\"}]\n```", `[{"label":"rice"}]`},
		{"Here you go: [\"egg\", \"onion\"] hope it helps", `["egg", "onion"]`},
		{`{"ingredients":[]}`, `{"ingredients":[]}`},
		{"no json here", "no json here"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractJSON(tt.in))
	}
}

func TestQuoteJSONKeys(t *testing.T) {
	assert.Equal(t, `[{"label":"egg","confidence":0.5}]`, QuoteJSONKeys(`[{label:"egg",confidence:0.5}]`))
}

func TestParseJSON_RejectsTrailingData(t *testing.T) {
	var v []string
	require.NoError(t, ParseJSON(`["a"]`, &v))
	assert.Equal(t, []string{"a"}, v)

	assert.Error(t, ParseJSON(`["a"] ["b"]`, &v))
	assert.Error(t, ParseJSONBytes([]byte(`{`), &v))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", ParseLevel("DEBUG").String())
	assert.Equal(t, "warn", ParseLevel("warn").String())
	assert.Equal(t, "info", ParseLevel("nonsense").String())
}
