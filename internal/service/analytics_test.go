package service

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"rental-backoffice/internal/core/cache"
	"rental-backoffice/internal/domain"
)

func TestGetAnalytics(t *testing.T) {
	e := newEnv(t)
	e.fx.KYC(domain.KYC{})
	e.fx.KYC(domain.KYC{Status: domain.KYCApproved})
	e.fx.Booking(domain.Booking{Status: domain.BookingActive})
	e.fx.Dispute(domain.Dispute{})

	a, err := e.svc.GetAnalytics(e.ctx, e.admin.ID)
	require.NoError(t, err)

	users, err := e.store.Users().Count(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, users, a.TotalUsers)
	assert.EqualValues(t, 2, a.TotalListings)
	assert.EqualValues(t, 2, a.TotalBookings)
	assert.EqualValues(t, 1, a.ActiveBookings)
	assert.EqualValues(t, 1, a.PendingKYCs)
	assert.EqualValues(t, 1, a.OpenDisputes)

	plain := e.fx.User(domain.User{})
	_, err = e.svc.GetAnalytics(e.ctx, plain.ID)
	assert.True(t, domain.IsKind(err, domain.KindUnauthorized))
}

func TestGetAnalyticsWithUnreachableCache(t *testing.T) {
	e := newEnv(t)
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 50 * time.Millisecond})
	t.Cleanup(func() { _ = rdb.Close() })
	e.svc = New(e.store, Deps{Cache: cache.NewWithClient(rdb), Logger: zaptest.NewLogger(t)})

	a, err := e.svc.GetAnalytics(e.ctx, e.admin.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, a.TotalUsers)

	// invalidation failures are logged, not returned
	u := e.fx.User(domain.User{})
	require.NoError(t, e.svc.BanUser(e.ctx, e.admin.ID, u.ID, ""))
}

func newCachedEnv(t *testing.T) (*env, *miniredis.Miniredis) {
	t.Helper()
	e := newEnv(t)
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	e.svc = New(e.store, Deps{Cache: c, AnalyticsTTL: time.Minute, Logger: zaptest.NewLogger(t)})
	return e, mr
}

func TestGetAnalyticsCachedUntilMutation(t *testing.T) {
	e, _ := newCachedEnv(t)

	a, err := e.svc.GetAnalytics(e.ctx, e.admin.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, a.TotalUsers)

	// 直接写库不经过 service，缓存仍命中
	u := e.fx.User(domain.User{})
	a, err = e.svc.GetAnalytics(e.ctx, e.admin.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, a.TotalUsers)

	require.NoError(t, e.svc.SuspendUser(e.ctx, e.admin.ID, u.ID, "spam"))
	a, err = e.svc.GetAnalytics(e.ctx, e.admin.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, a.TotalUsers)
}

func TestGetAnalyticsIgnoresLateWriteOfOldGeneration(t *testing.T) {
	e, mr := newCachedEnv(t)
	u := e.fx.User(domain.User{})

	// a count that started before the commit and lands after it
	require.NoError(t, e.svc.BanUser(e.ctx, e.admin.ID, u.ID, ""))
	require.NoError(t, mr.Set(analyticsEntry(0), `{"totalUsers":999}`))

	a, err := e.svc.GetAnalytics(e.ctx, e.admin.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, a.TotalUsers)
	assert.True(t, mr.Exists(analyticsEntry(1)))
}
