// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mindscan_backend/internal/feature/auth/domain/entity"
	"mindscan_backend/internal/feature/auth/usecase"
)

// userSQLite はusecase.UserRepositoryのGORM実装です。
// platform/dbが開いた接続ならSQLiteでもPostgresでもそのまま動作します。
type userSQLite struct {
	db *gorm.DB
}

var _ usecase.UserRepository = (*userSQLite)(nil)

// NewUserSQLite はDI用コンストラクタです。
func NewUserSQLite(db *gorm.DB) *userSQLite {
	return &userSQLite{db: db}
}

// Create は新規ユーザーを永続化します。メールアドレスが既に使われている
// 場合はusecase.ErrEmailAlreadyExistsを返します。
func (r *userSQLite) Create(ctx context.Context, u *entity.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	// TranslateError有効時、ユニーク制約違反はgorm.ErrDuplicatedKeyに正規化される
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return usecase.ErrEmailAlreadyExists
	}
	return err
}

// findOne は1件取得の共通処理で、未ヒットをusecase.ErrUserNotFoundへ変換します。
func (r *userSQLite) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail はログインID（メールアドレス）でユーザーを引きます。
func (r *userSQLite) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByID は主キーでユーザーを引きます。
func (r *userSQLite) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}
