package detection

import (
	"context"
	"strings"
)

// DefaultHighConfidence 高信心食材的預設門檻
const DefaultHighConfidence = 0.7

// Resolver 將偵測標籤轉換為標準食材名稱。
// 優先順序：學習精確 → 學習部分 → 詞典精確 → 詞典部分。
type Resolver struct {
	dict    *Dictionary
	learned *LearnedCache
}

// NewResolver 建立解析器，learned 可為 nil
func NewResolver(dict *Dictionary, learned *LearnedCache) *Resolver {
	if dict == nil {
		dict = DefaultDictionary()
	}
	return &Resolver{dict: dict, learned: learned}
}

// Resolve 解析單一標籤，無法對應時 ok 為 false
func (r *Resolver) Resolve(ctx context.Context, raw string) (string, bool) {
	return r.resolveWith(r.snapshot(ctx), raw)
}

func (r *Resolver) snapshot(ctx context.Context) *LearnedSnapshot {
	if r.learned == nil {
		return nil
	}
	return r.learned.Get(ctx)
}

// resolveWith 以指定的學習對應快照解析，snap 為 nil 時只查詞典
func (r *Resolver) resolveWith(snap *LearnedSnapshot, raw string) (string, bool) {
	label := strings.ToLower(strings.TrimSpace(raw))
	if label == "" {
		return "", false
	}

	if snap != nil {
		if m, ok := snap.Lookup(label); ok {
			return m.Ingredient, true
		}

		var found string
		snap.Each(func(key string, m LearnedMapping) bool {
			if IsValidPartialMatch(key, label) && (strings.Contains(label, key) || strings.Contains(key, label)) {
				found = m.Ingredient
				return false
			}
			return true
		})
		if found != "" {
			return found, true
		}
	}

	// Suppressed 條目不回傳，繼續往下做部分比對
	if b, ok := r.dict.Lookup(label); ok {
		if name, mapped := b.Name(); mapped {
			return name, true
		}
	}

	var found string
	r.dict.Each(func(e Entry) bool {
		name, mapped := e.Binding.Name()
		if !mapped {
			return true
		}
		if (strings.Contains(label, e.Label) || strings.Contains(e.Label, label)) && IsValidPartialMatch(e.Label, label) {
			found = name
			return false
		}
		return true
	})
	if found != "" {
		return found, true
	}

	return "", false
}

// ResolveAll 解析整批偵測結果，整批共用同一份學習對應快照。
// 每個食材只保留信心最高的一筆，依首次出現順序輸出，未解析的結果依原順序附加在後。
func (r *Resolver) ResolveAll(ctx context.Context, raw []RawDetection) []ResolvedDetection {
	if len(raw) == 0 {
		return []ResolvedDetection{}
	}

	byName := make(map[string]int)
	resolved := make([]ResolvedDetection, 0, len(raw))
	var unresolved []ResolvedDetection
	snap := r.snapshot(ctx)

	for _, det := range raw {
		name, ok := r.resolveWith(snap, det.Label)
		if !ok {
			unresolved = append(unresolved, ResolvedDetection{
				Confidence: det.Confidence,
				Label:      det.Label,
				Source:     det.Source,
				Box:        det.Box,
			})
			continue
		}

		candidate := ResolvedDetection{
			Name:       &name,
			Confidence: det.Confidence,
			Label:      det.Label,
			Source:     det.Source,
			Box:        det.Box,
		}
		if i, seen := byName[name]; seen {
			if det.Confidence > resolved[i].Confidence {
				resolved[i] = candidate
			}
			continue
		}
		byName[name] = len(resolved)
		resolved = append(resolved, candidate)
	}

	return append(resolved, unresolved...)
}

// IngredientNames 回傳已解析的不重複食材名稱
func IngredientNames(detections []ResolvedDetection) []string {
	return HighConfidenceNames(detections, 0)
}

// HighConfidenceNames 回傳信心值不低於 min 的食材名稱
func HighConfidenceNames(detections []ResolvedDetection, min float64) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0, len(detections))
	for _, d := range detections {
		if d.Name == nil || d.Confidence < min {
			continue
		}
		if _, dup := seen[*d.Name]; dup {
			continue
		}
		seen[*d.Name] = struct{}{}
		names = append(names, *d.Name)
	}
	return names
}
