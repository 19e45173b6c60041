package detection

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"eatease-backend/internal/pkg/common"

	"go.uber.org/zap"
)

// DefaultRawFallbackCount 沒有任何食材對應時回傳的原始標籤數量
const DefaultRawFallbackCount = 5

// Detector 影像偵測器，回傳原始標籤
type Detector interface {
	Name() string
	Detect(ctx context.Context, image []byte) ([]RawDetection, error)
}

// RawCache 以圖片雜湊保存偵測器的原始結果
type RawCache interface {
	Get(ctx context.Context, key string) ([]RawDetection, bool)
	Set(ctx context.Context, key string, detections []RawDetection) error
}

// Recorder 偵測流程的監控介面
type Recorder interface {
	ObserveDetection(provider string, cached bool, err error)
	ObserveResolution(resolved, unresolved int)
}

// Result 單次偵測的結果
type Result struct {
	Detections      []ResolvedDetection `json:"detections"`
	IngredientNames []string            `json:"ingredient_names"`
	HighConfidence  []string            `json:"high_confidence_ingredients"`
	Provider        string              `json:"provider"`
	Cached          bool                `json:"cached"`
}

// ServiceConfig 偵測流程設定
type ServiceConfig struct {
	HighConfidence   float64
	RawFallbackCount int
}

// Service 串接偵測器、原始結果快取與解析器
type Service struct {
	detector Detector
	cache    RawCache
	resolver *Resolver
	recorder Recorder
	cfg      ServiceConfig
}

// NewService 建立偵測服務，detector、cache、recorder 皆可為 nil
func NewService(detector Detector, cache RawCache, resolver *Resolver, recorder Recorder, cfg ServiceConfig) *Service {
	if cfg.HighConfidence <= 0 {
		cfg.HighConfidence = DefaultHighConfidence
	}
	if cfg.RawFallbackCount <= 0 {
		cfg.RawFallbackCount = DefaultRawFallbackCount
	}
	return &Service{
		detector: detector,
		cache:    cache,
		resolver: resolver,
		recorder: recorder,
		cfg:      cfg,
	}
}

// Available 是否已設定偵測器
func (s *Service) Available() bool {
	return s.detector != nil
}

// Detect 偵測圖片中的食材
func (s *Service) Detect(ctx context.Context, image []byte) (*Result, error) {
	if s.detector == nil {
		common.LogWarn("未設定影像偵測器，回傳空結果")
		return &Result{
			Detections:      []ResolvedDetection{},
			IngredientNames: []string{},
			HighConfidence:  []string{},
		}, nil
	}

	raw, cached, err := s.rawDetections(ctx, image)
	if s.recorder != nil {
		s.recorder.ObserveDetection(s.detector.Name(), cached, err)
	}
	if err != nil {
		return nil, err
	}

	detections := s.Resolve(ctx, raw)
	result := &Result{
		Detections:      detections,
		IngredientNames: IngredientNames(detections),
		HighConfidence:  HighConfidenceNames(detections, s.cfg.HighConfidence),
		Provider:        s.detector.Name(),
		Cached:          cached,
	}

	common.LogInfo("食材偵測完成",
		zap.String("provider", result.Provider),
		zap.Int("raw_count", len(raw)),
		zap.Int("ingredient_count", len(result.IngredientNames)),
		zap.Bool("cached", cached),
	)
	return result, nil
}

// Resolve 解析原始結果；完全沒有食材時只保留信心最高的幾個原始標籤供使用者回饋
func (s *Service) Resolve(ctx context.Context, raw []RawDetection) []ResolvedDetection {
	detections := s.resolver.ResolveAll(ctx, raw)

	resolvedCount := 0
	for _, d := range detections {
		if d.Resolved() {
			resolvedCount++
		}
	}
	if s.recorder != nil {
		s.recorder.ObserveResolution(resolvedCount, len(detections)-resolvedCount)
	}
	if resolvedCount > 0 {
		return detections
	}

	fallback := make([]ResolvedDetection, 0, len(detections))
	for _, d := range detections {
		if d.Source == SourceObject {
			continue
		}
		d.Source = SourceRaw
		fallback = append(fallback, d)
	}
	sort.SliceStable(fallback, func(i, j int) bool {
		return fallback[i].Confidence > fallback[j].Confidence
	})
	if len(fallback) > s.cfg.RawFallbackCount {
		fallback = fallback[:s.cfg.RawFallbackCount]
	}
	return fallback
}

func (s *Service) rawDetections(ctx context.Context, image []byte) ([]RawDetection, bool, error) {
	key := ImageKey(s.detector.Name(), image)
	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, key); ok {
			return raw, true, nil
		}
	}

	raw, err := s.detector.Detect(ctx, image)
	if err != nil {
		return nil, false, fmt.Errorf("%s detection failed: %w", s.detector.Name(), err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, raw); err != nil {
			common.LogWarn("儲存偵測快取失敗",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
	return raw, false, nil
}

// ImageKey 產生快取鍵
func ImageKey(provider string, image []byte) string {
	hash := sha256.Sum256(image)
	return fmt.Sprintf("detect:%s:%s", provider, hex.EncodeToString(hash[:]))
}
