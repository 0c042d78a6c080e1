package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "mindscan_backend/internal/feature/auth/adapters"
	"mindscan_backend/internal/feature/auth/usecase"
	"mindscan_backend/internal/platform/session"
)

// NewSessionRepository はセッションストアを組み立てます。Redisが利用可能なら
// Redis実装を、そうでなければリレーショナルDBのフォールバック実装を返します。
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return authadapters.NewSessionSQLite(db)
}
