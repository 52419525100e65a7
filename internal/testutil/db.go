// Package testutil opens throwaway stores for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rental-backoffice/internal/core/database"
	"rental-backoffice/internal/domain"
	"rental-backoffice/pkg/utils"
)

// NewDB returns a migrated in-memory sqlite database. A single connection
// keeps the database alive for the whole test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, domain.Models()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Fixtures inserts rows with sane defaults. Fields left zero by the caller
// are filled in before the insert.
type Fixtures struct {
	t  testing.TB
	db *gorm.DB
	n  int
}

func NewFixtures(t testing.TB, db *gorm.DB) *Fixtures { return &Fixtures{t: t, db: db} }

func (f *Fixtures) seq() int { f.n++; return f.n }

// at returns strictly increasing timestamps so "newest first" is predictable.
func (f *Fixtures) at() time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.seq()) * time.Minute)
}

func (f *Fixtures) create(v any) {
	f.t.Helper()
	require.NoError(f.t, f.db.Create(v).Error)
}

func (f *Fixtures) User(u domain.User) *domain.User {
	f.t.Helper()
	if u.ID == "" {
		u.ID = utils.NewID()
	}
	if u.Email == "" {
		u.Email = u.ID + "@example.com"
	}
	if u.Name == "" {
		u.Name = "user-" + u.ID[:8]
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = f.at()
	}
	f.create(&u)
	return &u
}

func (f *Fixtures) Admin() *domain.User {
	f.t.Helper()
	return f.User(domain.User{Role: domain.RoleAdmin, Name: "admin"})
}

func (f *Fixtures) KYC(k domain.KYC) *domain.KYC {
	f.t.Helper()
	if k.ID == "" {
		k.ID = utils.NewID()
	}
	if k.UserID == "" {
		k.UserID = f.User(domain.User{}).ID
	}
	if k.Status == "" {
		k.Status = domain.KYCPending
	}
	if k.DocumentType == "" {
		k.DocumentType = "PASSPORT"
	}
	if k.SubmittedAt.IsZero() {
		k.SubmittedAt = f.at()
	}
	f.create(&k)
	return &k
}

func (f *Fixtures) Listing(l domain.Listing) *domain.Listing {
	f.t.Helper()
	if l.ID == "" {
		l.ID = utils.NewID()
	}
	if l.UserID == "" {
		l.UserID = f.User(domain.User{}).ID
	}
	if l.Title == "" {
		l.Title = "Listing " + l.ID[:8]
	}
	if l.PricePerDay == 0 {
		l.PricePerDay = 25
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = f.at()
	}
	f.create(&l)
	return &l
}

func (f *Fixtures) Booking(b domain.Booking) *domain.Booking {
	f.t.Helper()
	if b.ID == "" {
		b.ID = utils.NewID()
	}
	if b.ListingID == "" {
		b.ListingID = f.Listing(domain.Listing{}).ID
	}
	if b.RenterID == "" {
		b.RenterID = f.User(domain.User{}).ID
	}
	if b.LenderID == "" {
		b.LenderID = f.User(domain.User{}).ID
	}
	if b.Status == "" {
		b.Status = domain.BookingConfirmed
	}
	if b.TotalAmount == 0 {
		b.TotalAmount = 1000
	}
	if b.RequestedAt.IsZero() {
		b.RequestedAt = f.at()
	}
	if b.StartDate.IsZero() {
		b.StartDate = b.RequestedAt.Add(24 * time.Hour)
		b.EndDate = b.StartDate.Add(72 * time.Hour)
	}
	f.create(&b)
	return &b
}

func (f *Fixtures) Dispute(d domain.Dispute) *domain.Dispute {
	f.t.Helper()
	if d.ID == "" {
		d.ID = utils.NewID()
	}
	if d.BookingID == "" {
		d.BookingID = f.Booking(domain.Booking{Status: domain.BookingDisputed}).ID
	}
	if d.ReportedBy == "" {
		d.ReportedBy = f.User(domain.User{}).ID
	}
	if d.Status == "" {
		d.Status = domain.DisputeOpen
	}
	if d.Reason == "" {
		d.Reason = "item damaged"
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = f.at()
	}
	f.create(&d)
	return &d
}
