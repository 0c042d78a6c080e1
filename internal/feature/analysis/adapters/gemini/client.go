// Package gemini はGoogle Gemini APIを使用したテキスト感情分類クライアントを提供します。
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"mindscan_backend/internal/feature/analysis/domain/entity"
	"mindscan_backend/internal/feature/analysis/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"

	// promptTemplate は感情分類のプロンプトテンプレートです。
	// JSON以外を返させないため、スキーマと許可ラベルを明示します。
	promptTemplate = `Classify the sentiment and emotion of the following journal entry.
Respond with a single JSON object, no prose:
{"sentiment": <float between -1.0 and 1.0>, "emotion": <one of "anger","disgust","fear","joy","neutral","sadness","surprise">, "confidence": <float between 0.0 and 1.0>}

Entry:
%s`
)

// emotionLabels は応答として受け入れる感情ラベルです。
// huggingfaceバックエンドの語彙と揃え、バックエンド切替時もデータの互換性を保ちます。
var emotionLabels = map[string]struct{}{
	"anger":    {},
	"disgust":  {},
	"fear":     {},
	"joy":      {},
	"neutral":  {},
	"sadness":  {},
	"surprise": {},
}

// GeminiAnalyzer はGoogle Gemini APIを使用してテキストの感情分類を行います。
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
}

// GeminiAnalyzerがTextAnalyzerを実装していることをコンパイル時に検証します。
var _ usecase.TextAnalyzer = (*GeminiAnalyzer)(nil)

// NewGeminiAnalyzer はADCを使用してGeminiAnalyzerの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewGeminiAnalyzer(ctx context.Context) (*GeminiAnalyzer, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiAnalyzer{client: client, model: DefaultModel}, nil
}

// classification はGeminiのJSON応答を受けるDTOです。
type classification struct {
	Sentiment  float64 `json:"sentiment"`
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

// AnalyzeText は本文テキストを分類し、感情スコアと感情ラベルを返します。
func (g *GeminiAnalyzer) AnalyzeText(ctx context.Context, text string) (*entity.TextAnalysis, error) {
	prompt := fmt.Sprintf(promptTemplate, text)
	config := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("gemini API request failed: %w", err)
	}

	return parseClassification(resp.Text())
}

// parseClassification はGeminiのJSON応答を検証してエンティティへ変換します。
// 範囲外のスコアはクランプし、語彙外の感情ラベルはneutralに落とします。
func parseClassification(raw string) (*entity.TextAnalysis, error) {
	var c classification
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("failed to parse gemini classification %q: %w", raw, err)
	}

	emotion := strings.ToLower(strings.TrimSpace(c.Emotion))
	if _, ok := emotionLabels[emotion]; !ok {
		emotion = usecase.NeutralEmotion
	}

	return &entity.TextAnalysis{
		Sentiment:  clamp(c.Sentiment, -1.0, 1.0),
		Emotion:    emotion,
		Confidence: clamp(c.Confidence, 0.0, 1.0),
	}, nil
}

// clamp は値を[lo, hi]の範囲に収めます。
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
