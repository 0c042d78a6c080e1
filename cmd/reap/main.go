package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	authadapters "mindscan_backend/internal/feature/auth/adapters"
	platformdb "mindscan_backend/internal/platform/db"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	db, err := platformdb.Open(platformdb.LoadConfig())
	if err != nil {
		log.Fatal("failed to open database:", err)
	}
	sessions := authadapters.NewSessionSQLite(db)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	deleted, err := sessions.DeleteExpired(ctx)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("reap ok: removed %d expired sessions", deleted)
}
