// Package adapters はentriesフィーチャーの永続化実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"mindscan_backend/internal/feature/entries/domain/entity"
	"mindscan_backend/internal/feature/entries/usecase"
)

type entrySQLite struct {
	db *gorm.DB
}

var _ usecase.EntryRepository = (*entrySQLite)(nil)

// NewEntrySQLite はgormベースのエントリーリポジトリを生成します。
func NewEntrySQLite(db *gorm.DB) *entrySQLite {
	return &entrySQLite{db: db}
}

// EntryModel はentriesテーブルのgormモデルです。
type EntryModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Text      string    `gorm:"type:text"`
	Sentiment float64   `gorm:"not null;default:0"`
	Emotion   string    `gorm:"size:32;not null"`
	CreatedAt time.Time `gorm:"index;not null"`
}

func (EntryModel) TableName() string {
	return "entries"
}

func toModel(e *entity.Entry) EntryModel {
	return EntryModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Text:      e.Text,
		Sentiment: e.Sentiment,
		Emotion:   e.Emotion,
		CreatedAt: e.CreatedAt,
	}
}

func (m EntryModel) toEntity() entity.Entry {
	return entity.Entry{
		ID:        m.ID,
		UserID:    m.UserID,
		Text:      m.Text,
		Sentiment: m.Sentiment,
		Emotion:   m.Emotion,
		CreatedAt: m.CreatedAt,
	}
}

// Create はエントリーを保存し、採番されたIDと作成時刻を書き戻します。
func (r *entrySQLite) Create(ctx context.Context, e *entity.Entry) error {
	m := toModel(e)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	e.ID = m.ID
	e.CreatedAt = m.CreatedAt
	return nil
}

// FindByID はユーザーが所有するエントリーを1件検索します。
func (r *entrySQLite) FindByID(ctx context.Context, userID, entryID uint) (*entity.Entry, error) {
	var m EntryModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	e := m.toEntity()
	return &e, nil
}

// FindSince は指定時刻以降のエントリーを作成時刻の昇順で返します。
func (r *entrySQLite) FindSince(ctx context.Context, userID uint, since time.Time) ([]entity.Entry, error) {
	var rows []EntryModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Entry, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}
