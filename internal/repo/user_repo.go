package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"rental-backoffice/internal/domain"
	"rental-backoffice/pkg/utils"
)

type UserRepo struct{ db *gorm.DB }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = utils.NewID()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return dbErr("create user", r.db.WithContext(ctx).Create(u).Error)
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, dbErr("user", err)
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error; err != nil {
		return nil, dbErr("user", err)
	}
	return &u, nil
}

// List matches query against name and email, newest first.
func (r *UserRepo) List(ctx context.Context, query string, p utils.Pagination) ([]domain.User, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&domain.User{})
		if s := strings.TrimSpace(query); s != "" {
			like := contains(s)
			q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
		}
		return q
	}
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, domain.Upstream("count users", err)
	}
	var us []domain.User
	if err := base().Order("created_at DESC").Order("id ASC").
		Limit(p.Limit()).Offset(p.Offset()).Find(&us).Error; err != nil {
		return nil, 0, domain.Upstream("list users", err)
	}
	if err := withUserDetails(ctx, r.db, us); err != nil {
		return nil, 0, err
	}
	return us, total, nil
}

func (r *UserRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	var us []domain.User
	if err := r.db.WithContext(ctx).Where("role = ?", role).Order("id ASC").Find(&us).Error; err != nil {
		return nil, domain.Upstream("list users by role", err)
	}
	return us, nil
}

func (r *UserRepo) Update(ctx context.Context, id string, cols map[string]any) error {
	return updateByID(ctx, r.db, &domain.User{}, "user", id, cols)
}

// CountIDs reports how many of ids exist.
func (r *UserRepo) CountIDs(ctx context.Context, ids []string) (int64, error) {
	return count(ctx, r.db, &domain.User{}, "users", "id IN ?", ids)
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, &domain.User{}, "users")
}
