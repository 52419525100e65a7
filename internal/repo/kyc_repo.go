package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"rental-backoffice/internal/domain"
	"rental-backoffice/pkg/utils"
)

type KYCRepo struct{ db *gorm.DB }

func (r *KYCRepo) Create(ctx context.Context, k *domain.KYC) error {
	if k.ID == "" {
		k.ID = utils.NewID()
	}
	if k.SubmittedAt.IsZero() {
		k.SubmittedAt = time.Now()
	}
	return dbErr("create kyc", r.db.WithContext(ctx).Create(k).Error)
}

func (r *KYCRepo) FindByID(ctx context.Context, id string) (*domain.KYC, error) {
	var k domain.KYC
	if err := r.db.WithContext(ctx).First(&k, "id = ?", id).Error; err != nil {
		return nil, dbErr("kyc", err)
	}
	return &k, nil
}

func (r *KYCRepo) FindByUserID(ctx context.Context, userID string) (*domain.KYC, error) {
	var k domain.KYC
	if err := r.db.WithContext(ctx).First(&k, "user_id = ?", userID).Error; err != nil {
		return nil, dbErr("kyc", err)
	}
	return &k, nil
}

func (r *KYCRepo) List(ctx context.Context, status domain.KYCStatus, p utils.Pagination) ([]domain.KYC, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&domain.KYC{})
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, domain.Upstream("count kyc", err)
	}
	var ks []domain.KYC
	if err := base().Order("submitted_at DESC").Order("id ASC").
		Limit(p.Limit()).Offset(p.Offset()).Find(&ks).Error; err != nil {
		return nil, 0, domain.Upstream("list kyc", err)
	}
	return ks, total, nil
}

func (r *KYCRepo) Update(ctx context.Context, id string, cols map[string]any) error {
	return updateByID(ctx, r.db, &domain.KYC{}, "kyc", id, cols)
}

func (r *KYCRepo) CountByStatus(ctx context.Context, status domain.KYCStatus) (int64, error) {
	return count(ctx, r.db, &domain.KYC{}, "kyc", "status = ?", status)
}
