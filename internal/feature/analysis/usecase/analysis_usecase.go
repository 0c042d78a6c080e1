// Package usecase はanalysisフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"mindscan_backend/internal/feature/analysis/domain/entity"
)

const (
	// MaxImageSize は顔写真アップロードの最大サイズ（10MB）です。
	MaxImageSize = 10 * 1024 * 1024
	// NeutralEmotion は感情が判定できない場合のフォールバックラベルです。
	NeutralEmotion = "neutral"

	// テキストと顔写真のスコアを統合する際の加重比率。
	textWeight = 0.7
	faceWeight = 0.3
)

// faceSentiment は顔の感情ラベルを感情スコア（-1.0〜+1.0）へ写像します。
var faceSentiment = map[string]float64{
	"happy":    1.0,
	"neutral":  0.0,
	"sad":      -1.0,
	"angry":    -1.0,
	"fear":     -1.0,
	"disgust":  -1.0,
	"surprise": 0.2,
}

// TextAnalyzer はテキストの感情分類を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TextAnalyzer interface {
	// AnalyzeText は本文テキストを分類し、感情スコアと感情ラベルを返します。
	AnalyzeText(ctx context.Context, text string) (*entity.TextAnalysis, error)
}

// FaceEmotionDetector は顔写真からの感情検出を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type FaceEmotionDetector interface {
	// DetectEmotion は画像バイト列から顔の感情を検出します。
	// 顔が見つからない場合は (nil, nil) を返します。
	DetectEmotion(ctx context.Context, imageData []byte) (*entity.FaceEmotion, error)
}

// analysisUsecase はテキスト・顔写真それぞれの分析結果を統合します。
type analysisUsecase struct {
	text TextAnalyzer
	face FaceEmotionDetector // nilの場合、顔分析は利用不可としてスキップ
}

// NewAnalysisUsecase はanalysisUsecaseの新しいインスタンスを生成します。
// faceがnilの場合、顔写真は分析されずテキストのみで判定します。
func NewAnalysisUsecase(text TextAnalyzer, face FaceEmotionDetector) *analysisUsecase {
	return &analysisUsecase{text: text, face: face}
}

// AnalyzeEntry はテキストと（任意の）顔写真を分析して統合結果を返します。
// テキスト分類の失敗はエラー、顔分析の失敗は警告ログの上テキストのみで続行します。
func (u *analysisUsecase) AnalyzeEntry(ctx context.Context, text string, imageData []byte) (*entity.EntryAnalysis, error) {
	if text == "" && len(imageData) == 0 {
		return nil, ErrNothingToAnalyze
	}
	if len(imageData) > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	var textResult *entity.TextAnalysis
	if text != "" {
		ta, err := u.text.AnalyzeText(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTextAnalysisFailed, err)
		}
		textResult = ta
	}

	var faceResult *entity.FaceEmotion
	if len(imageData) > 0 && u.face != nil {
		fe, err := u.face.DetectEmotion(ctx, imageData)
		if err != nil {
			// 顔分析は補助情報。失敗してもテキストのみで続行する。
			slog.Warn("face emotion detection failed", "error", err)
		} else {
			faceResult = fe
		}
	}

	return combine(textResult, faceResult), nil
}

// combine はテキストと顔写真の分析結果を統合します。
// 両方ある場合はスコアを加重平均し、感情ラベルはテキスト側を優先します。
func combine(text *entity.TextAnalysis, face *entity.FaceEmotion) *entity.EntryAnalysis {
	switch {
	case text != nil && face != nil:
		return &entity.EntryAnalysis{
			Sentiment:    textWeight*text.Sentiment + faceWeight*faceSentiment[face.Emotion],
			Emotion:      emotionOr(text.Emotion, face.Emotion),
			TextAnalyzed: true,
			FaceAnalyzed: true,
		}
	case text != nil:
		return &entity.EntryAnalysis{
			Sentiment:    text.Sentiment,
			Emotion:      emotionOr(text.Emotion),
			TextAnalyzed: true,
		}
	case face != nil:
		return &entity.EntryAnalysis{
			Sentiment:    faceSentiment[face.Emotion],
			Emotion:      emotionOr(face.Emotion),
			FaceAnalyzed: true,
		}
	default:
		// テキストなし・顔未検出。スコアは付けられないため中立とする。
		return &entity.EntryAnalysis{Emotion: NeutralEmotion}
	}
}

// emotionOr は最初の空でないラベルを返します。どれも空の場合はneutralです。
func emotionOr(labels ...string) string {
	for _, l := range labels {
		if l != "" {
			return l
		}
	}
	return NeutralEmotion
}
