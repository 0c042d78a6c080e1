// Package usecase はジャーナルエントリー操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	analysisentity "mindscan_backend/internal/feature/analysis/domain/entity"
	"mindscan_backend/internal/feature/entries/domain/entity"
)

const (
	// DefaultWindowDays はエントリー一覧のデフォルト取得期間（日数）です。
	DefaultWindowDays = 7
	// MaxWindowDays はエントリー一覧の最大取得期間（日数）です。
	MaxWindowDays = 90
	// MaxEntryRunes はエントリー本文の最大文字数です。
	MaxEntryRunes = 10000
)

// EntryRepository はエントリーの永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type EntryRepository interface {
	// Create はエントリーを保存し、採番されたIDと作成時刻をeに書き戻します。
	Create(ctx context.Context, e *entity.Entry) error
	// FindByID はユーザーが所有するエントリーを1件検索します。
	// 存在しない、または他ユーザーのエントリーの場合はErrEntryNotFoundを返します。
	FindByID(ctx context.Context, userID, entryID uint) (*entity.Entry, error)
	// FindSince は指定時刻以降のエントリーを作成時刻の昇順で返します。
	FindSince(ctx context.Context, userID uint, since time.Time) ([]entity.Entry, error)
}

// EntryAnalyzer はエントリー内容の感情分析を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type EntryAnalyzer interface {
	AnalyzeEntry(ctx context.Context, text string, imageData []byte) (*analysisentity.EntryAnalysis, error)
}

// CreateEntryResult は保存されたエントリーと、どのモダリティが
// 分析に寄与したかのフラグを束ねます。
type CreateEntryResult struct {
	Entry        *entity.Entry
	TextAnalyzed bool // 本文テキストが分析されたか
	FaceAnalyzed bool // 顔写真が分析されたか
}

// entriesUsecase はジャーナルエントリー操作のユースケースを定義します。
type entriesUsecase struct {
	entries  EntryRepository
	analyzer EntryAnalyzer
}

// NewEntriesUsecase はentriesUsecaseの新しいインスタンスを生成します。
func NewEntriesUsecase(entries EntryRepository, analyzer EntryAnalyzer) *entriesUsecase {
	return &entriesUsecase{entries: entries, analyzer: analyzer}
}

// CreateEntry は本文と（任意の）顔写真を分析し、スコア付きのエントリーとして保存します。
// 本文は前後の空白を除去してから分析・保存されます。
func (u *entriesUsecase) CreateEntry(ctx context.Context, userID uint, text string, imageData []byte) (*CreateEntryResult, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > MaxEntryRunes {
		return nil, ErrEntryTooLong
	}

	analysis, err := u.analyzer.AnalyzeEntry(ctx, text, imageData)
	if err != nil {
		return nil, err
	}

	e := &entity.Entry{
		UserID:    userID,
		Text:      text,
		Sentiment: analysis.Sentiment,
		Emotion:   analysis.Emotion,
	}
	if err := u.entries.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	return &CreateEntryResult{
		Entry:        e,
		TextAnalyzed: analysis.TextAnalyzed,
		FaceAnalyzed: analysis.FaceAnalyzed,
	}, nil
}

// ListEntries は直近days日分のエントリーを新しい順で返します。
// daysが範囲外（0以下またはMaxWindowDays超）の場合はデフォルト値を使用します。
func (u *entriesUsecase) ListEntries(ctx context.Context, userID uint, days int) ([]entity.Entry, error) {
	if days <= 0 || days > MaxWindowDays {
		days = DefaultWindowDays
	}
	since := time.Now().AddDate(0, 0, -days)

	es, err := u.entries.FindSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	// リポジトリは古い順で返すため、一覧表示用に新しい順へ反転する
	for i, j := 0, len(es)-1; i < j; i, j = i+1, j-1 {
		es[i], es[j] = es[j], es[i]
	}
	return es, nil
}

// GetEntry はユーザーが所有するエントリーを1件取得します。
func (u *entriesUsecase) GetEntry(ctx context.Context, userID, entryID uint) (*entity.Entry, error) {
	return u.entries.FindByID(ctx, userID, entryID)
}
