package mysql

import (
	"context"
	"time"

	userDomain "themis-backend/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, userID uint64) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	return &out, res.Error
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("username = ?", username).First(&out)
	if res.Error != nil {
		return &out, res.Error
	}
	// MySQL collations compare case-insensitively
	if out.Username != username {
		return &userDomain.User{}, gorm.ErrRecordNotFound
	}
	return &out, nil
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&userDomain.User{}).Where("username = ?", username).Count(&n).Error
	return n > 0, err
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&userDomain.User{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, userID uint64, hash string) error {
	return r.db.WithContext(ctx).Model(&userDomain.User{}).
		Where("user_id = ?", userID).
		Update("password_hash", hash).Error
}

func (r *UserRepository) UpdateRole(ctx context.Context, userID uint64, roleID uint) error {
	return r.db.WithContext(ctx).Model(&userDomain.User{}).
		Where("user_id = ?", userID).
		Update("role_id", roleID).Error
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, userID uint64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&userDomain.User{}).
		Where("user_id = ?", userID).
		Update("last_login", at.UTC()).Error
}

func (r *UserRepository) Delete(ctx context.Context, userID uint64) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&userDomain.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]userDomain.View, error) {
	var out []userDomain.View
	err := r.db.WithContext(ctx).
		Table("users u").
		Select("u.user_id, u.username, u.role_id, r.name AS role_name, u.email, u.full_name, u.visitor_id, u.created_at, u.last_login").
		Joins("LEFT JOIN roles r ON r.role_id = u.role_id").
		Order("u.user_id").
		Scan(&out).Error
	return out, err
}
