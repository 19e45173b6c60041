package detection

// SourceKind 偵測來源類型
type SourceKind string

const (
	SourceLabel  SourceKind = "label"     // 整張圖片的分類標籤
	SourceObject SourceKind = "object"    // 物件定位結果，帶有框選區域
	SourceRaw    SourceKind = "label_raw" // 未對應食材的原始標籤，供使用者回饋
)

// BoundingBox 正規化座標 (0..1) 的框選區域
type BoundingBox struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// RawDetection 偵測器回傳的原始結果
type RawDetection struct {
	Label      string       `json:"label"`
	Confidence float64      `json:"confidence"`
	Source     SourceKind   `json:"source"`
	Box        *BoundingBox `json:"bbox,omitempty"`
}

// ResolvedDetection 解析後的偵測結果，Name 為 nil 表示無法對應到食材
type ResolvedDetection struct {
	Name       *string      `json:"name"`
	Confidence float64      `json:"confidence"`
	Label      string       `json:"original_label"`
	Source     SourceKind   `json:"source"`
	Box        *BoundingBox `json:"bbox,omitempty"`
}

// Resolved 是否已對應到標準食材名稱
func (d ResolvedDetection) Resolved() bool {
	return d.Name != nil
}

// LearnedMapping 由使用者修正學到的對應
type LearnedMapping struct {
	Ingredient string  `json:"ingredient"`
	Count      int     `json:"correction_count"`
	Confidence float64 `json:"learned_confidence"`
}
