package di

import (
	"context"
	"log/slog"

	"mindscan_backend/internal/feature/analysis/adapters/vision"
	analysisusecase "mindscan_backend/internal/feature/analysis/usecase"
)

// NewFaceDetector はCloud Visionの顔感情検出器を組み立てます。
// 初期化に失敗した場合はnilを返し、アプリはテキストのみの分析で継続します。
// 失敗時に具象型のnilポインタを返すとインターフェースのnil判定が
// 効かなくなるため、必ずインターフェース型のnilを返します。
func NewFaceDetector(ctx context.Context) analysisusecase.FaceEmotionDetector {
	detector, err := vision.NewVisionFaceDetector(ctx)
	if err != nil {
		slog.Warn("face emotion detection disabled", "error", err)
		return nil
	}
	return detector
}
