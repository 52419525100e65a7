package repo

import (
	"context"

	"gorm.io/gorm"

	"rental-backoffice/internal/domain"
	"rental-backoffice/pkg/utils"
)

const AuditPageLimit = 100

type AuditRepo struct{ db *gorm.DB }

func (r *AuditRepo) Create(ctx context.Context, a *domain.AdminAction) error {
	if a.ID == "" {
		a.ID = utils.NewID()
	}
	return dbErr("create admin action", r.db.WithContext(ctx).Create(a).Error)
}

// List returns at most limit rows, newest first. limit <= 0 or above
// AuditPageLimit is clamped to AuditPageLimit.
func (r *AuditRepo) List(ctx context.Context, f domain.AuditFilter, limit int) ([]domain.AdminAction, error) {
	if limit <= 0 || limit > AuditPageLimit {
		limit = AuditPageLimit
	}
	q := r.db.WithContext(ctx).Model(&domain.AdminAction{})
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.AdminID != "" {
		q = q.Where("admin_id = ?", f.AdminID)
	}
	if f.TargetType != "" {
		q = q.Where("target_type = ?", f.TargetType)
	}
	var out []domain.AdminAction
	if err := q.Order("created_at DESC").Order("id ASC").Limit(limit).Find(&out).Error; err != nil {
		return nil, domain.Upstream("list admin actions", err)
	}
	return out, nil
}
