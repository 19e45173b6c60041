package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eatease-backend/internal/core/detection"
	"eatease-backend/internal/core/feedback"
	"eatease-backend/internal/pkg/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	initialConfidence = 0.5
	maxConfidence     = 0.99
	confidenceStep    = 0.1
)

// CorrectionStore detection_feedback 資料表的存取
type CorrectionStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewCorrectionStore 建立修正紀錄存取
func NewCorrectionStore(db *gorm.DB) *CorrectionStore {
	return &CorrectionStore{db: db, now: time.Now}
}

// confidenceExpr learned_confidence = min(0.99, 0.5 + 0.1 * (count + 1))
func confidenceExpr(countColumn string) clause.Expr {
	next := fmt.Sprintf("(%s + 1)", countColumn)
	return gorm.Expr(fmt.Sprintf(
		"CASE WHEN %[1]g + %[2]g * %[3]s > %[4]g THEN %[4]g ELSE %[1]g + %[2]g * %[3]s END",
		initialConfidence, confidenceStep, next, maxConfidence,
	))
}

// RecordCorrection 新增修正，或將既有紀錄的修正次數加一
func (s *CorrectionStore) RecordCorrection(ctx context.Context, in feedback.CorrectionInput) (feedback.Record, error) {
	label := feedback.NormalizeLabel(in.DetectedLabel)
	ingredient := strings.TrimSpace(in.CorrectIngredient)
	if label == "" || ingredient == "" {
		return feedback.Record{}, common.NewValidationError("detected_label and correct_ingredient are required")
	}

	now := s.now()
	row := DetectionFeedback{
		DetectedLabel:       label,
		AIMappedIngredient:  in.AIMapped,
		CorrectIngredient:   ingredient,
		CorrectIngredientID: in.IngredientID,
		CorrectionCount:     1,
		LearnedConfidence:   initialConfidence,
		UserID:              in.UserID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	db := s.db.WithContext(ctx)
	table := row.TableName()
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "detected_label"}, {Name: "correct_ingredient"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"correction_count":      gorm.Expr(table + ".correction_count + 1"),
			"learned_confidence":    confidenceExpr(table + ".correction_count"),
			"correct_ingredient_id": gorm.Expr("COALESCE(excluded.correct_ingredient_id, " + table + ".correct_ingredient_id)"),
			"updated_at":            now,
		}),
	}).Create(&row).Error

	// 部分驅動程式在並行寫入時仍可能回報唯一鍵衝突，改為更新
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = s.increment(db, label, ingredient, now)
	}
	if err != nil {
		return feedback.Record{}, fmt.Errorf("failed to record correction: %w", err)
	}

	var saved DetectionFeedback
	if err := db.Where("detected_label = ? AND correct_ingredient = ?", label, ingredient).
		First(&saved).Error; err != nil {
		return feedback.Record{}, fmt.Errorf("failed to reload correction: %w", err)
	}
	return toRecord(saved), nil
}

func (s *CorrectionStore) increment(db *gorm.DB, label, ingredient string, now time.Time) error {
	res := db.Model(&DetectionFeedback{}).
		Where("detected_label = ? AND correct_ingredient = ?", label, ingredient).
		Updates(map[string]interface{}{
			"correction_count":   gorm.Expr("correction_count + 1"),
			"learned_confidence": confidenceExpr("correction_count"),
			"updated_at":         now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// LearnedMappings 每個標籤取修正次數最高的紀錄，次數相同時以較早的紀錄為準
func (s *CorrectionStore) LearnedMappings(ctx context.Context, minCorrections int) (map[string]detection.LearnedMapping, error) {
	var rows []DetectionFeedback
	if err := s.db.WithContext(ctx).
		Where("correction_count >= ?", minCorrections).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load corrections: %w", err)
	}

	out := make(map[string]detection.LearnedMapping, len(rows))
	for _, r := range rows {
		if cur, ok := out[r.DetectedLabel]; ok && r.CorrectionCount <= cur.Count {
			continue
		}
		out[r.DetectedLabel] = detection.LearnedMapping{
			Ingredient: r.CorrectIngredient,
			Count:      r.CorrectionCount,
			Confidence: r.LearnedConfidence,
		}
	}
	return out, nil
}

func toRecord(r DetectionFeedback) feedback.Record {
	return feedback.Record{
		ID:                  r.ID,
		DetectedLabel:       r.DetectedLabel,
		AIMapped:            r.AIMappedIngredient,
		CorrectIngredient:   r.CorrectIngredient,
		CorrectIngredientID: r.CorrectIngredientID,
		CorrectionCount:     r.CorrectionCount,
		LearnedConfidence:   r.LearnedConfidence,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}
