package mysql

import (
	"context"

	blacklistDomain "themis-backend/internal/domain/blacklist"

	"gorm.io/gorm"
)

type BlacklistRepository struct{ db *gorm.DB }

func NewBlacklistRepository(db *gorm.DB) *BlacklistRepository { return &BlacklistRepository{db: db} }

func (r *BlacklistRepository) Create(ctx context.Context, e *blacklistDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *BlacklistRepository) GetByID(ctx context.Context, blackID uint64) (*blacklistDomain.Entry, error) {
	var out blacklistDomain.Entry
	res := r.db.WithContext(ctx).Where("black_id = ?", blackID).First(&out)
	return &out, res.Error
}

func (r *BlacklistRepository) GetByVisitorID(ctx context.Context, visitorID uint64) (*blacklistDomain.Entry, error) {
	var out blacklistDomain.Entry
	res := r.db.WithContext(ctx).Where("visitor_id = ?", visitorID).First(&out)
	return &out, res.Error
}

func (r *BlacklistRepository) List(ctx context.Context) ([]blacklistDomain.View, error) {
	var out []blacklistDomain.View
	err := r.db.WithContext(ctx).
		Table("blacklist b").
		Select("b.black_id, b.pupc_id, b.visitor_id, b.reason, b.added_at, " +
			"v.first_name AS visitor_first_name, v.last_name AS visitor_last_name, " +
			"p.first_name AS puc_first_name, p.last_name AS puc_last_name").
		Joins("LEFT JOIN visitors v ON v.visitor_id = b.visitor_id").
		Joins("LEFT JOIN pupcs p ON p.pupc_id = b.pupc_id").
		Order("b.added_at DESC, b.black_id DESC").
		Scan(&out).Error
	return out, err
}

func (r *BlacklistRepository) Delete(ctx context.Context, blackID uint64) error {
	res := r.db.WithContext(ctx).Where("black_id = ?", blackID).Delete(&blacklistDomain.Entry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
