package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"rental-backoffice/internal/domain"
	"rental-backoffice/pkg/utils"
)

type BookingFilter struct {
	Query  string               `form:"query"`
	Status domain.BookingStatus `form:"status"`
}

type BookingRepo struct{ db *gorm.DB }

func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = utils.NewID()
	}
	return dbErr("create booking", r.db.WithContext(ctx).Create(b).Error)
}

func (r *BookingRepo) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, dbErr("booking", err)
	}
	return &b, nil
}

// List matches query against the listing title and the renter/lender names.
func (r *BookingRepo) List(ctx context.Context, f BookingFilter, p utils.Pagination) ([]domain.Booking, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&domain.Booking{})
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		if s := strings.TrimSpace(f.Query); s != "" {
			like := contains(s)
			listings := r.db.Model(&domain.Listing{}).Select("id").Where("LOWER(title) LIKE ?", like)
			people := r.db.Model(&domain.User{}).Select("id").Where("LOWER(name) LIKE ?", like)
			q = q.Where(r.db.Where("listing_id IN (?)", listings).
				Or("renter_id IN (?)", people).
				Or("lender_id IN (?)", people))
		}
		return q
	}
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, domain.Upstream("count bookings", err)
	}
	var bs []domain.Booking
	if err := base().Order("requested_at DESC").Order("id ASC").
		Limit(p.Limit()).Offset(p.Offset()).Find(&bs).Error; err != nil {
		return nil, 0, domain.Upstream("list bookings", err)
	}
	if err := withBookingDetails(ctx, r.db, bs); err != nil {
		return nil, 0, err
	}
	return bs, total, nil
}

func (r *BookingRepo) Update(ctx context.Context, id string, cols map[string]any) error {
	return updateByID(ctx, r.db, &domain.Booking{}, "booking", id, cols)
}

func (r *BookingRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, &domain.Booking{}, "bookings")
}

func (r *BookingRepo) CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	return count(ctx, r.db, &domain.Booking{}, "bookings", "status = ?", status)
}
