package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"mindscan_backend/internal/feature/analysis/adapters/huggingface/dto"
	"mindscan_backend/internal/feature/analysis/domain/entity"
	"mindscan_backend/internal/feature/analysis/usecase"
	"mindscan_backend/internal/shared/ratelimiter"
)

// sentimentScores は感情分類モデルの出力ラベルをスコアへ写像します。
// cardiffnlp/twitter-roberta-base-sentiment: LABEL_0=negative, LABEL_1=neutral, LABEL_2=positive
var sentimentScores = map[string]float64{
	"LABEL_0": -1.0,
	"LABEL_1": 0.0,
	"LABEL_2": 1.0,
}

// HuggingFaceAnalyzer はHugging Face Inference APIからテキスト分類結果を取得するTextAnalyzer実装です。
type HuggingFaceAnalyzer struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// HuggingFaceAnalyzerがTextAnalyzerを実装していることをコンパイル時に検証します。
var _ usecase.TextAnalyzer = (*HuggingFaceAnalyzer)(nil)

// NewHuggingFaceAnalyzer は指定された設定とHTTPクライアントでHuggingFaceAnalyzerの新しいインスタンスを生成します。
// limiterは外部APIの呼び出し頻度制限に使われます（nil可）。
func NewHuggingFaceAnalyzer(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *HuggingFaceAnalyzer {
	return &HuggingFaceAnalyzer{cfg: cfg, client: client, limiter: limiter}
}

// AnalyzeText は感情スコアモデルと感情ラベルモデルを順に呼び出し、
// entity.TextAnalysisとして返します。
func (h *HuggingFaceAnalyzer) AnalyzeText(ctx context.Context, text string) (*entity.TextAnalysis, error) {
	sentiment, err := h.classify(ctx, h.cfg.SentimentModel, text)
	if err != nil {
		return nil, err
	}
	emotion, err := h.classify(ctx, h.cfg.EmotionModel, text)
	if err != nil {
		return nil, err
	}

	sentTop := topLabel(sentiment)
	emoTop := topLabel(emotion)

	return &entity.TextAnalysis{
		Sentiment:  sentimentScores[sentTop.Label], // 未知ラベルは0（中立）
		Emotion:    strings.ToLower(emoTop.Label),
		Confidence: emoTop.Score,
	}, nil
}

// classify は1つの分類モデルを呼び出し、ラベルスコア列を返します。
func (h *HuggingFaceAnalyzer) classify(ctx context.Context, model, text string) ([]dto.LabelScore, error) {
	if h.limiter != nil {
		h.limiter.WaitIfNeeded()
	}

	// モデルがコールドスタート中でも503ではなく完了まで待つ
	payload, err := json.Marshal(map[string]any{
		"inputs":  text,
		"options": map[string]bool{"wait_for_model": true},
	})
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/models/%s", h.cfg.BaseURL, model)

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if h.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+h.cfg.APIToken)
	}

	// リクエストを実行
	res, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		var apiErr dto.ErrorResponse
		if err := json.NewDecoder(res.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("huggingface %s: %s", model, apiErr.Error)
		}
		return nil, fmt.Errorf("huggingface http %d", res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.ClassificationResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode classification response: %w", err)
	}
	if len(body) == 0 || len(body[0]) == 0 {
		return nil, fmt.Errorf("huggingface %s: empty classification response", model)
	}
	return body[0], nil
}

// topLabel は最高スコアのラベルを返します。APIのソート順には依存しません。
func topLabel(scores []dto.LabelScore) dto.LabelScore {
	top := scores[0]
	for _, s := range scores[1:] {
		if s.Score > top.Score {
			top = s
		}
	}
	return top
}
