package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"mindscan_backend/internal/app/di"
	"mindscan_backend/internal/app/router"
	analysisusecase "mindscan_backend/internal/feature/analysis/usecase"
	authadapters "mindscan_backend/internal/feature/auth/adapters"
	authhandler "mindscan_backend/internal/feature/auth/transport/handler"
	authusecase "mindscan_backend/internal/feature/auth/usecase"
	entriesadapters "mindscan_backend/internal/feature/entries/adapters"
	entrieshandler "mindscan_backend/internal/feature/entries/transport/handler"
	entriesusecase "mindscan_backend/internal/feature/entries/usecase"
	trendsadapters "mindscan_backend/internal/feature/trends/adapters"
	trendshandler "mindscan_backend/internal/feature/trends/transport/handler"
	trendsusecase "mindscan_backend/internal/feature/trends/usecase"
	platformdb "mindscan_backend/internal/platform/db"
	jwtmw "mindscan_backend/internal/platform/jwt"
	platformredis "mindscan_backend/internal/platform/redis"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	ctx := context.Background()

	// db
	db, err := platformdb.Open(platformdb.LoadConfig())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	// マイグレーション
	if err := platformdb.Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// 分析バックエンド（ANALYZER_BACKENDで選択、Redisキャッシュ付き）
	textAnalyzer, err := di.NewTextAnalyzer(ctx, rdb)
	if err != nil {
		log.Fatalf("failed to configure text analyzer: %v", err)
	}
	faceDetector := di.NewFaceDetector(ctx)

	// Repository
	userRepo := authadapters.NewUserSQLite(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	entryRepo := entriesadapters.NewEntrySQLite(db)
	trendRepo := trendsadapters.NewTrendSQLite(db)

	// JWT_SECRETチェック（開発中の注意喚起）
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	jwtGen := jwtmw.NewGenerator(secret, authusecase.AccessTokenTTL)

	// Usecase
	analysisUC := analysisusecase.NewAnalysisUsecase(textAnalyzer, faceDetector)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtGen)
	entriesUC := entriesusecase.NewEntriesUsecase(entryRepo, analysisUC)
	trendsUC := trendsusecase.NewTrendsUsecase(trendRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	entriesH := entrieshandler.NewEntriesHandler(entriesUC)
	trendsH := trendshandler.NewTrendsHandler(trendsUC)

	// ルータ生成
	router := router.NewRouter(authH, entriesH, trendsH)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
