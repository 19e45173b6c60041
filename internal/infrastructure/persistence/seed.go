package persistence

import (
	"context"
	"fmt"
	"strings"

	"eatease-backend/internal/pkg/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const seedBatchSize = 100

// SeedIngredients 新增資料表中尚未存在的食材名稱，回傳新增數量
func SeedIngredients(ctx context.Context, db *gorm.DB, names []string) (int, error) {
	seen := make(map[string]struct{}, len(names))
	rows := make([]Ingredient, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		key := strings.ToLower(n)
		if n == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, Ingredient{Name: n})
	}
	if len(rows) == 0 {
		return 0, nil
	}

	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		CreateInBatches(&rows, seedBatchSize)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to seed ingredients: %w", res.Error)
	}

	inserted := int(res.RowsAffected)
	common.LogInfo("食材資料初始化完成", zap.Int("candidates", len(rows)), zap.Int("inserted", inserted))
	return inserted, nil
}
