// Package handler はtrendsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"mindscan_backend/internal/api"
	"mindscan_backend/internal/feature/trends/domain/entity"
	jwtmw "mindscan_backend/internal/platform/jwt"
)

// TrendsUsecase は気分トレンド集計のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type TrendsUsecase interface {
	MoodTrend(ctx context.Context, userID uint, days int) (*entity.MoodTrend, error)
}

// TrendsHandler は気分トレンドチャートデータのHTTPリクエストを処理します。
type TrendsHandler struct {
	uc TrendsUsecase
}

// NewTrendsHandler は指定されたusecaseでTrendsHandlerの新しいインスタンスを生成します。
func NewTrendsHandler(uc TrendsUsecase) *TrendsHandler {
	return &TrendsHandler{uc: uc}
}

// MoodTrend は直近days日分の気分トレンドデータをJSONで返します。
// エントリーがない場合は空の系列を返し、表示はクライアント側に任せます。
//
// エンドポイント例:
// GET /trends/mood?days=7
func (h *TrendsHandler) MoodTrend(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	// 未指定・不正値はusecase側でデフォルトに補正される
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	trend, err := h.uc.MoodTrend(c.Request.Context(), userID, days)
	if err != nil {
		slog.Error("failed to build mood trend", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to build mood trend"})
		return
	}

	c.JSON(http.StatusOK, toMoodTrendResponse(trend))
}

// toMoodTrendResponse はドメインの集計結果をAPIレスポンスへ変換します。
// 空の系列はnullではなく空配列として返します。
func toMoodTrendResponse(trend *entity.MoodTrend) api.MoodTrendResponse {
	series := make([]api.TrendPoint, 0, len(trend.Series))
	for _, p := range trend.Series {
		series = append(series, api.TrendPoint{
			Time:      p.Time,
			Sentiment: p.Sentiment,
			Emotion:   p.Emotion,
		})
	}

	daily := make([]api.DailyMood, 0, len(trend.Daily))
	for _, d := range trend.Daily {
		daily = append(daily, api.DailyMood{
			Date:    openapi_types.Date{Time: d.Date},
			Average: d.Average,
			Count:   d.Count,
		})
	}

	emotions := make([]api.EmotionCount, 0, len(trend.Emotions))
	for _, e := range trend.Emotions {
		emotions = append(emotions, api.EmotionCount{
			Emotion: e.Emotion,
			Count:   e.Count,
		})
	}

	return api.MoodTrendResponse{
		Days:     trend.Days,
		Series:   series,
		Daily:    daily,
		Emotions: emotions,
		Average:  trend.Average,
		Count:    trend.Count,
	}
}
