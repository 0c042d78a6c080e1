// Package usecase は気分トレンド集計のビジネスロジックを実装します。
package usecase

import (
	"context"
	"sort"
	"time"

	"mindscan_backend/internal/feature/trends/domain/entity"
)

const (
	// DefaultWindowDays はトレンド集計のデフォルト期間（日数）です。
	DefaultWindowDays = 7
	// MaxWindowDays はトレンド集計の最大期間（日数）です。
	MaxWindowDays = 90
)

// TrendRepository はトレンド集計用の読み取りレイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TrendRepository interface {
	// FindPointsSince は指定時刻以降の感情スコア点列を時刻の昇順で返します。
	FindPointsSince(ctx context.Context, userID uint, since time.Time) ([]entity.TrendPoint, error)
}

// trendsUsecase は気分トレンドチャート用のデータを組み立てます。
type trendsUsecase struct {
	trends TrendRepository
}

// NewTrendsUsecase はtrendsUsecaseの新しいインスタンスを生成します。
func NewTrendsUsecase(trends TrendRepository) *trendsUsecase {
	return &trendsUsecase{trends: trends}
}

// MoodTrend は直近days日分のエントリーを集計し、チャート描画用のデータを返します。
// daysが範囲外（0以下またはMaxWindowDays超）の場合はデフォルト値を使用します。
// エントリーが1件もない場合は空の系列とゼロ平均を返します。
func (u *trendsUsecase) MoodTrend(ctx context.Context, userID uint, days int) (*entity.MoodTrend, error) {
	if days <= 0 || days > MaxWindowDays {
		days = DefaultWindowDays
	}
	since := time.Now().AddDate(0, 0, -days)

	points, err := u.trends.FindPointsSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	trend := &entity.MoodTrend{
		Days:     days,
		Series:   points,
		Daily:    dailyAverages(points),
		Emotions: emotionCounts(points),
		Count:    len(points),
	}
	if len(points) > 0 {
		var sum float64
		for _, p := range points {
			sum += p.Sentiment
		}
		trend.Average = sum / float64(len(points))
	}
	return trend, nil
}

// dailyAverages は点列をUTCの暦日ごとに平均します。結果は日付の昇順です。
// エントリーのない日は埋めません（チャート側で隙間として扱う）。
func dailyAverages(points []entity.TrendPoint) []entity.DailyMood {
	type bucket struct {
		sum   float64
		count int
	}
	byDay := make(map[time.Time]*bucket)
	for _, p := range points {
		y, m, d := p.Time.UTC().Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		b := byDay[day]
		if b == nil {
			b = &bucket{}
			byDay[day] = b
		}
		b.sum += p.Sentiment
		b.count++
	}

	out := make([]entity.DailyMood, 0, len(byDay))
	for day, b := range byDay {
		out = append(out, entity.DailyMood{
			Date:    day,
			Average: b.sum / float64(b.count),
			Count:   b.count,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// emotionCounts は感情ラベルの出現回数を数えます。
// 結果は回数の降順、同数の場合はラベルの昇順です。
func emotionCounts(points []entity.TrendPoint) []entity.EmotionCount {
	byLabel := make(map[string]int)
	for _, p := range points {
		byLabel[p.Emotion]++
	}

	out := make([]entity.EmotionCount, 0, len(byLabel))
	for label, n := range byLabel {
		out = append(out, entity.EmotionCount{Emotion: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Emotion < out[j].Emotion
	})
	return out
}
