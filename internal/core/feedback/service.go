package feedback

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"eatease-backend/internal/core/detection"
	"eatease-backend/internal/pkg/common"

	"go.uber.org/zap"
)

// DefaultBatchLimit 單次回饋的最大筆數
const DefaultBatchLimit = 50

// Correction 使用者送出的一筆修正
type Correction struct {
	DetectedLabel     string  `json:"detected_label"`
	AIMapped          *string `json:"ai_mapped"`
	CorrectIngredient string  `json:"correct_ingredient"`
}

// CorrectionInput 寫入儲存層的修正，DetectedLabel 已正規化
type CorrectionInput struct {
	DetectedLabel     string
	CorrectIngredient string
	AIMapped          *string
	IngredientID      *uint
	UserID            *uint
}

// Record 已儲存的修正紀錄
type Record struct {
	ID                  uint      `json:"id"`
	DetectedLabel       string    `json:"detected_label"`
	AIMapped            *string   `json:"ai_mapped_ingredient"`
	CorrectIngredient   string    `json:"correct_ingredient"`
	CorrectIngredientID *uint     `json:"correct_ingredient_id"`
	CorrectionCount     int       `json:"correction_count"`
	LearnedConfidence   float64   `json:"learned_confidence"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Store 修正紀錄的儲存層
type Store interface {
	detection.MappingSource
	RecordCorrection(ctx context.Context, in CorrectionInput) (Record, error)
}

// IngredientFinder 依名稱（不分大小寫）查詢食材
type IngredientFinder interface {
	FindIngredientByName(ctx context.Context, name string) (id uint, canonical string, found bool, err error)
}

// Invalidator 修正寫入後需要失效的快取
type Invalidator interface {
	Invalidate()
}

// Recorder 回饋結果的監控介面
type Recorder interface {
	ObserveFeedback(stored, failed int)
}

// ItemResult 單筆修正的處理結果
type ItemResult struct {
	DetectedLabel string `json:"detected_label"`
	Success       bool   `json:"success"`
	Message       string `json:"message,omitempty"`
	Error         string `json:"error,omitempty"`
}

// BatchResult 整批回饋的結果
type BatchResult struct {
	Results []ItemResult `json:"results"`
	Learned int          `json:"learned"`
}

// MappingView 學習對應的列表項目
type MappingView struct {
	DetectedLabel     string  `json:"detected_label"`
	Ingredient        string  `json:"ingredient"`
	CorrectionCount   int     `json:"correction_count"`
	LearnedConfidence float64 `json:"learned_confidence"`
}

// Service 處理使用者對偵測結果的修正
type Service struct {
	store          Store
	finder         IngredientFinder
	cache          Invalidator
	recorder       Recorder
	batchLimit     int
	minCorrections int
}

// Option 服務選項
type Option func(*Service)

// WithIngredientFinder 啟用食材 ID 查詢
func WithIngredientFinder(f IngredientFinder) Option {
	return func(s *Service) { s.finder = f }
}

// WithRecorder 設定監控
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithBatchLimit 設定單次最大筆數
func WithBatchLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchLimit = n
		}
	}
}

// WithMinCorrections 設定列表的最低修正次數
func WithMinCorrections(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minCorrections = n
		}
	}
}

// NewService 建立回饋服務，cache 可為 nil
func NewService(store Store, cache Invalidator, opts ...Option) *Service {
	s := &Service{
		store:          store,
		cache:          cache,
		batchLimit:     DefaultBatchLimit,
		minCorrections: detection.DefaultMinCorrections,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NormalizeLabel 修正標籤一律小寫並去除空白
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Submit 逐筆寫入修正；單筆失敗不影響其他筆，只要有寫入就讓學習快取失效
func (s *Service) Submit(ctx context.Context, userID uint, corrections []Correction) (BatchResult, error) {
	if len(corrections) == 0 {
		return BatchResult{}, common.NewValidationError("No corrections provided")
	}
	if len(corrections) > s.batchLimit {
		return BatchResult{}, common.NewValidationError(
			fmt.Sprintf("Too many corrections (max %d)", s.batchLimit))
	}

	var uid *uint
	if userID != 0 {
		uid = &userID
	}

	out := BatchResult{Results: make([]ItemResult, 0, len(corrections))}
	for _, c := range corrections {
		res := s.submitOne(ctx, uid, c)
		if res.Success {
			out.Learned++
		}
		out.Results = append(out.Results, res)
	}

	if out.Learned > 0 && s.cache != nil {
		s.cache.Invalidate()
	}
	if s.recorder != nil {
		s.recorder.ObserveFeedback(out.Learned, len(corrections)-out.Learned)
	}

	common.LogInfo("偵測回饋已處理",
		zap.Int("submitted", len(corrections)),
		zap.Int("learned", out.Learned),
	)
	return out, nil
}

func (s *Service) submitOne(ctx context.Context, userID *uint, c Correction) ItemResult {
	label := NormalizeLabel(c.DetectedLabel)
	ingredient := strings.TrimSpace(c.CorrectIngredient)
	res := ItemResult{DetectedLabel: label}

	if label == "" || ingredient == "" {
		res.Error = "Missing detected_label or correct_ingredient"
		return res
	}

	in := CorrectionInput{
		DetectedLabel:     label,
		CorrectIngredient: ingredient,
		AIMapped:          trimmedOrNil(c.AIMapped),
		UserID:            userID,
	}

	if s.finder != nil {
		id, canonical, found, err := s.finder.FindIngredientByName(ctx, ingredient)
		switch {
		case err != nil:
			common.LogWarn("查詢食材失敗", zap.String("ingredient", ingredient), zap.Error(err))
		case found:
			in.IngredientID = &id
			in.CorrectIngredient = canonical
		}
	}

	if _, err := s.store.RecordCorrection(ctx, in); err != nil {
		common.LogError("寫入修正失敗",
			zap.String("detected_label", label),
			zap.String("correct_ingredient", in.CorrectIngredient),
			zap.Error(err),
		)
		res.Error = "Failed to save correction"
		return res
	}

	res.Success = true
	res.Message = fmt.Sprintf("Learned: '%s' -> '%s'", label, in.CorrectIngredient)
	return res
}

// LearnedMappings 列出所有學習對應，依標籤排序
func (s *Service) LearnedMappings(ctx context.Context) ([]MappingView, error) {
	mappings, err := s.store.LearnedMappings(ctx, s.minCorrections)
	if err != nil {
		return nil, fmt.Errorf("failed to load learned mappings: %w", err)
	}

	out := make([]MappingView, 0, len(mappings))
	for label, m := range mappings {
		out = append(out, MappingView{
			DetectedLabel:     label,
			Ingredient:        m.Ingredient,
			CorrectionCount:   m.Count,
			LearnedConfidence: m.Confidence,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DetectedLabel < out[j].DetectedLabel })
	return out, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
