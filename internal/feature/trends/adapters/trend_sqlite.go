// Package adapters はtrendsフィーチャーの読み取り実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"mindscan_backend/internal/feature/trends/domain/entity"
	"mindscan_backend/internal/feature/trends/usecase"
)

type trendSQLite struct {
	db *gorm.DB
}

var _ usecase.TrendRepository = (*trendSQLite)(nil)

// NewTrendSQLite はentriesテーブルを読み取り専用で集計するリポジトリを生成します。
func NewTrendSQLite(db *gorm.DB) *trendSQLite {
	return &trendSQLite{db: db}
}

// trendRow はentriesテーブルからトレンド集計に必要な列だけを写し取ります。
type trendRow struct {
	CreatedAt time.Time
	Sentiment float64
	Emotion   string
}

// FindPointsSince は指定時刻以降の感情スコア点列を時刻の昇順で返します。
func (r *trendSQLite) FindPointsSince(ctx context.Context, userID uint, since time.Time) ([]entity.TrendPoint, error) {
	var rows []trendRow
	err := r.db.WithContext(ctx).
		Table("entries").
		Select("created_at", "sentiment", "emotion").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entity.TrendPoint, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.TrendPoint{
			Time:      row.CreatedAt,
			Sentiment: row.Sentiment,
			Emotion:   row.Emotion,
		})
	}
	return out, nil
}
