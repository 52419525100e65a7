package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"rental-backoffice/internal/core/cache"
	"rental-backoffice/internal/domain"
)

type Analytics struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalListings  int64 `json:"totalListings"`
	TotalBookings  int64 `json:"totalBookings"`
	ActiveBookings int64 `json:"activeBookings"`
	PendingKYCs    int64 `json:"pendingKYCs"`
	OpenDisputes   int64 `json:"openDisputes"`
}

// GetAnalytics returns the dashboard counters, from redis when a cache is
// configured. An unreachable redis degrades to counting on every call.
func (s *Service) GetAnalytics(ctx context.Context, actorID string) (*Analytics, error) {
	if _, err := s.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if s.cache == nil {
		return s.countAll(ctx)
	}
	key := analyticsEntry(s.cache.Generation(ctx, analyticsGenKey))
	return cache.GetOrLoadJSON(ctx, s.cache, key, s.analyticsTTL, s.countAll)
}

func (s *Service) countAll(ctx context.Context) (*Analytics, error) {
	var a Analytics
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { a.TotalUsers, err = s.store.Users().Count(ctx); return })
	g.Go(func() (err error) { a.TotalListings, err = s.store.Listings().Count(ctx); return })
	g.Go(func() (err error) { a.TotalBookings, err = s.store.Bookings().Count(ctx); return })
	g.Go(func() (err error) {
		a.ActiveBookings, err = s.store.Bookings().CountByStatus(ctx, domain.BookingActive)
		return
	})
	g.Go(func() (err error) { a.PendingKYCs, err = s.store.KYCs().CountByStatus(ctx, domain.KYCPending); return })
	g.Go(func() (err error) {
		a.OpenDisputes, err = s.store.Disputes().CountByStatus(ctx, domain.DisputeOpen)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &a, nil
}
