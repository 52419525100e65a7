package repo

import (
	"context"

	"gorm.io/gorm"

	"rental-backoffice/internal/domain"
	"rental-backoffice/pkg/utils"
)

type DisputeRepo struct{ db *gorm.DB }

func (r *DisputeRepo) Create(ctx context.Context, d *domain.Dispute) error {
	if d.ID == "" {
		d.ID = utils.NewID()
	}
	return dbErr("create dispute", r.db.WithContext(ctx).Create(d).Error)
}

func (r *DisputeRepo) FindByID(ctx context.Context, id string) (*domain.Dispute, error) {
	var d domain.Dispute
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, dbErr("dispute", err)
	}
	return &d, nil
}

func (r *DisputeRepo) List(ctx context.Context, status domain.DisputeStatus) ([]domain.Dispute, error) {
	q := r.db.WithContext(ctx).Model(&domain.Dispute{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var ds []domain.Dispute
	if err := q.Order("created_at DESC").Order("id ASC").Find(&ds).Error; err != nil {
		return nil, domain.Upstream("list disputes", err)
	}
	if err := withDisputeDetails(ctx, r.db, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

func (r *DisputeRepo) Update(ctx context.Context, id string, cols map[string]any) error {
	return updateByID(ctx, r.db, &domain.Dispute{}, "dispute", id, cols)
}

func (r *DisputeRepo) CountByStatus(ctx context.Context, status domain.DisputeStatus) (int64, error) {
	return count(ctx, r.db, &domain.Dispute{}, "disputes", "status = ?", status)
}
