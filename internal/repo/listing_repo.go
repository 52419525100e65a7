package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"rental-backoffice/internal/domain"
	"rental-backoffice/pkg/utils"
)

type ListingFilter struct {
	Query  string               `form:"query"`
	City   string               `form:"city"`
	Status domain.ListingStatus `form:"status"`
}

type ListingRepo struct{ db *gorm.DB }

func (r *ListingRepo) Create(ctx context.Context, l *domain.Listing) error {
	if l.ID == "" {
		l.ID = utils.NewID()
	}
	return dbErr("create listing", r.db.WithContext(ctx).Create(l).Error)
}

func (r *ListingRepo) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	var l domain.Listing
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, dbErr("listing", err)
	}
	return &l, nil
}

func (r *ListingRepo) List(ctx context.Context, f ListingFilter, p utils.Pagination) ([]domain.Listing, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&domain.Listing{})
		if s := strings.TrimSpace(f.Query); s != "" {
			like := contains(s)
			q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?", like, like, like)
		}
		if c := strings.TrimSpace(f.City); c != "" {
			q = q.Where("LOWER(city) LIKE ?", contains(c))
		}
		switch f.Status {
		case domain.ListingAvailable:
			q = q.Where("is_available = ? AND is_paused = ?", true, false)
		case domain.ListingPaused:
			q = q.Where("is_paused = ?", true)
		case domain.ListingUnavailable:
			q = q.Where("is_available = ?", false)
		}
		return q
	}
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, domain.Upstream("count listings", err)
	}
	var ls []domain.Listing
	if err := base().Order("created_at DESC").Order("id ASC").
		Limit(p.Limit()).Offset(p.Offset()).Find(&ls).Error; err != nil {
		return nil, 0, domain.Upstream("list listings", err)
	}
	if err := withListingDetails(ctx, r.db, ls); err != nil {
		return nil, 0, err
	}
	return ls, total, nil
}

// ListPending returns listings waiting for a first review: not yet available
// and not paused by a rejection.
func (r *ListingRepo) ListPending(ctx context.Context) ([]domain.Listing, error) {
	var ls []domain.Listing
	err := r.db.WithContext(ctx).
		Where("is_available = ? AND is_paused = ?", false, false).
		Order("created_at DESC").Order("id ASC").
		Find(&ls).Error
	if err != nil {
		return nil, domain.Upstream("list pending listings", err)
	}
	if err := withListingDetails(ctx, r.db, ls); err != nil {
		return nil, err
	}
	return ls, nil
}

func (r *ListingRepo) Update(ctx context.Context, id string, cols map[string]any) error {
	return updateByID(ctx, r.db, &domain.Listing{}, "listing", id, cols)
}

// Save writes every column of l, images included.
func (r *ListingRepo) Save(ctx context.Context, l *domain.Listing) error {
	return dbErr("save listing", r.db.WithContext(ctx).Save(l).Error)
}

// FlipPaused negates is_paused in a single statement and returns the new value.
// Call it inside a transaction so the read-back sees the row it just locked.
func (r *ListingRepo) FlipPaused(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Listing{}).
		Where("id = ?", id).
		Update("is_paused", gorm.Expr("NOT is_paused"))
	if res.Error != nil {
		return false, domain.Upstream("flip listing pause", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, domain.NotFound("listing not found")
	}
	var l domain.Listing
	if err := r.db.WithContext(ctx).Select("id", "is_paused").First(&l, "id = ?", id).Error; err != nil {
		return false, dbErr("listing", err)
	}
	return l.IsPaused, nil
}

func (r *ListingRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Listing{})
	if res.Error != nil {
		return domain.Upstream("delete listing", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("listing not found")
	}
	return nil
}

func (r *ListingRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, &domain.Listing{}, "listings")
}
