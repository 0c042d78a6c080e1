// Package router はアプリケーションの全HTTPルートを組み立てます。
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "mindscan_backend/internal/feature/auth/transport/handler"
	entrieshandler "mindscan_backend/internal/feature/entries/transport/handler"
	trendshandler "mindscan_backend/internal/feature/trends/transport/handler"
	healthhandler "mindscan_backend/internal/platform/http/handler"
	jwtmw "mindscan_backend/internal/platform/jwt"
	ratelimitmw "mindscan_backend/internal/platform/ratelimit"
)

// 認証エンドポイントのIP単位レート制限。バーストで5回、以降毎秒1回まで。
const (
	authRatePerSecond = 1.0
	authRateBurst     = 5
)

// NewRouter は全ハンドラーを受け取り、ルーティング済みのginエンジンを返します。
func NewRouter(auth *authhandler.AuthHandler, entries *entrieshandler.EntriesHandler,
	trends *trendshandler.TrendsHandler) *gin.Engine {
	r := gin.Default()

	// CORS（ブラウザUIは別オリジンで配信される）。ルート登録より先に適用する。
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", healthhandler.Health)

	// 資格情報を受けるエンドポイントはブルートフォース対策でレート制限する
	authLimit := ratelimitmw.RateLimit(authRatePerSecond, authRateBurst)
	// 新規ユーザー登録
	r.POST("/signup", authLimit, auth.Signup)
	// ログイン（アクセストークン＋リフレッシュトークン発行）
	r.POST("/login", authLimit, auth.Login)
	// リフレッシュトークンの更新（ローテーション）
	r.POST("/refresh", auth.Refresh)
	// ログアウト（リフレッシュセッション失効）
	r.POST("/logout", auth.Logout)

	// 認証必須のルート
	authorized := r.Group("/")
	authorized.Use(jwtmw.AuthRequired())
	{
		authorized.GET("/me", auth.Me)
		authorized.POST("/entries", entries.CreateEntry)
		authorized.GET("/entries", entries.ListEntries)
		authorized.GET("/entries/:id", entries.GetEntry)
		authorized.GET("/trends/mood", trends.MoodTrend)
	}

	return r
}
