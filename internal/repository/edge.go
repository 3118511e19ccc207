package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// toggleEdge 单条件写实现的开关：先按唯一键删除，未删除到再插入
// 插入冲突（并发下另一请求先插入）视为边已存在，返回 true
func toggleEdge(ctx context.Context, db *gorm.DB, edge any, query string, args ...any) (bool, error) {
	result := db.WithContext(ctx).Where(query, args...).Delete(edge)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return false, nil
	}

	if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(edge).Error; err != nil {
		return false, err
	}
	return true, nil
}
