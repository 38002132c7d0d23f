package mysql

import (
	"context"
	"strings"

	pucDomain "themis-backend/internal/domain/puc"

	"gorm.io/gorm"
)

const pucViewColumns = "p.pupc_id, p.first_name, p.last_name, p.gender, p.age, p.arrest_date, p.release_date, " +
	"p.status, p.category_id, p.crime_id, p.mugshot_path, p.created_at, " +
	"cc.name AS category_name, ct.name AS crime_name"

type PUCRepository struct{ db *gorm.DB }

func NewPUCRepository(db *gorm.DB) *PUCRepository { return &PUCRepository{db: db} }

func (r *PUCRepository) Create(ctx context.Context, p *pucDomain.PUC) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PUCRepository) Save(ctx context.Context, p *pucDomain.PUC) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PUCRepository) GetByID(ctx context.Context, pucID uint64) (*pucDomain.PUC, error) {
	var out pucDomain.PUC
	res := r.db.WithContext(ctx).Where("pupc_id = ?", pucID).First(&out)
	return &out, res.Error
}

func (r *PUCRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("pupcs p").
		Select(pucViewColumns).
		Joins("LEFT JOIN crimecategories cc ON cc.category_id = p.category_id").
		Joins("LEFT JOIN crimetypes ct ON ct.crime_id = p.crime_id")
}

func (r *PUCRepository) GetView(ctx context.Context, pucID uint64) (*pucDomain.View, error) {
	var out []pucDomain.View
	if err := r.viewQuery(ctx).Where("p.pupc_id = ?", pucID).Limit(1).Scan(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &out[0], nil
}

func (r *PUCRepository) Search(ctx context.Context, term string) ([]pucDomain.View, error) {
	q := r.viewQuery(ctx)
	if term = strings.TrimSpace(term); term != "" {
		like := "%" + term + "%"
		q = q.Where("p.first_name LIKE ? OR p.last_name LIKE ? OR p.status LIKE ?", like, like, like)
	}
	var out []pucDomain.View
	err := q.Order("p.last_name, p.first_name").Scan(&out).Error
	return out, err
}

func (r *PUCRepository) ListCategories(ctx context.Context) ([]pucDomain.Category, error) {
	var out []pucDomain.Category
	err := r.db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}

func (r *PUCRepository) ListCrimeTypes(ctx context.Context) ([]pucDomain.CrimeType, error) {
	var out []pucDomain.CrimeType
	err := r.db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}
