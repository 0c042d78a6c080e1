// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"mindscan_backend/internal/feature/analysis/adapters/gemini"
	"mindscan_backend/internal/feature/analysis/adapters/huggingface"
	analysisusecase "mindscan_backend/internal/feature/analysis/usecase"
	"mindscan_backend/internal/platform/cache"
	platformhttp "mindscan_backend/internal/platform/http"
	"mindscan_backend/internal/shared/ratelimiter"
)

const (
	// EnvAnalyzerBackend はテキスト分類バックエンドを選択する環境変数です。
	EnvAnalyzerBackend = "ANALYZER_BACKEND"

	// BackendHuggingFace はHugging Face Inference APIバックエンドです（デフォルト）。
	BackendHuggingFace = "huggingface"
	// BackendGemini はGemini APIバックエンドです。
	BackendGemini = "gemini"

	// analysisCacheTTL は分析結果キャッシュの保持期間です。
	// 同一テキストの分類結果は決定的なので長めに保持する。
	analysisCacheTTL = 24 * time.Hour

	// hfRequestsPerMinute はInference API呼び出しの分あたり上限です。
	hfRequestsPerMinute = 30
)

// NewTextAnalyzer は設定されたバックエンドのテキスト分類器を組み立て、
// Redisキャッシュデコレーターで包んで返します。rdbはnilでも構いません
// （その場合キャッシュは素通しになります）。
func NewTextAnalyzer(ctx context.Context, rdb *redis.Client) (analysisusecase.TextAnalyzer, error) {
	backend := os.Getenv(EnvAnalyzerBackend)
	if backend == "" {
		backend = BackendHuggingFace
	}

	var (
		inner analysisusecase.TextAnalyzer
		err   error
	)
	switch backend {
	case BackendHuggingFace:
		cfg := huggingface.LoadConfig()
		httpClient := platformhttp.NewHTTPClient(cfg.Timeout)
		limiter := ratelimiter.NewRateLimiter(hfRequestsPerMinute, time.Minute)
		inner = huggingface.NewHuggingFaceAnalyzer(cfg, httpClient, limiter)

	case BackendGemini:
		inner, err = gemini.NewGeminiAnalyzer(ctx)
		if err != nil {
			return nil, fmt.Errorf("gemini analyzer: %w", err)
		}

	default:
		return nil, fmt.Errorf("unknown analyzer backend %q", backend)
	}

	// バックエンドごとにスコア体系が異なるため、キャッシュキーの名前空間を分ける
	return cache.NewCachingTextAnalyzer(rdb, analysisCacheTTL, inner, "analysis:"+backend), nil
}
