package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"rental-backoffice/internal/domain"
)

// Store hands out repositories bound to one *gorm.DB, either the pool or an
// open transaction.
type Store struct{ db *gorm.DB }

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Users() *UserRepo                 { return &UserRepo{db: s.db} }
func (s *Store) KYCs() *KYCRepo                   { return &KYCRepo{db: s.db} }
func (s *Store) Listings() *ListingRepo           { return &ListingRepo{db: s.db} }
func (s *Store) Bookings() *BookingRepo           { return &BookingRepo{db: s.db} }
func (s *Store) Disputes() *DisputeRepo           { return &DisputeRepo{db: s.db} }
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{db: s.db} }
func (s *Store) Audit() *AuditRepo                { return &AuditRepo{db: s.db} }

// Transaction runs fn inside one database transaction. Errors returned by fn
// roll back and pass through unchanged; begin/commit failures become Upstream.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.Upstream("transaction", err)
}

// Migrate creates every back-office table.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(domain.Models()...)
}

func dbErr(what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFound(what + " not found")
	}
	return domain.Upstream(what, err)
}

// contains builds a case-insensitive LIKE pattern.
func contains(s string) string { return "%" + strings.ToLower(strings.TrimSpace(s)) + "%" }

// updateByID writes cols to the row with id. Zero affected rows are only a
// NotFound when the row is really absent (MySQL reports 0 for no-op updates).
func updateByID(ctx context.Context, db *gorm.DB, model any, what, id string, cols map[string]any) error {
	if len(cols) == 0 {
		return exists(ctx, db, model, what, id)
	}
	res := db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return domain.Upstream("update "+what, res.Error)
	}
	if res.RowsAffected == 0 {
		return exists(ctx, db, model, what, id)
	}
	return nil
}

func exists(ctx context.Context, db *gorm.DB, model any, what, id string) error {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return domain.Upstream("lookup "+what, err)
	}
	if n == 0 {
		return domain.NotFound(what + " not found")
	}
	return nil
}

func count(ctx context.Context, db *gorm.DB, model any, what string, where ...any) (int64, error) {
	q := db.WithContext(ctx).Model(model)
	if len(where) > 0 {
		q = q.Where(where[0], where[1:]...)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, domain.Upstream("count "+what, err)
	}
	return n, nil
}
