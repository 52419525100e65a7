package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backoffice/internal/domain"
)

func (e *env) booking(t *testing.T, id string) *domain.Booking {
	t.Helper()
	b, err := e.store.Bookings().FindByID(e.ctx, id)
	require.NoError(t, err)
	return b
}

func TestCancelBookingNotifiesRenter(t *testing.T) {
	e := newEnv(t)
	b := e.fx.Booking(domain.Booking{})

	require.NoError(t, e.svc.CancelBooking(e.ctx, e.admin.ID, b.ID, "listing removed"))
	assert.Equal(t, domain.BookingCancelled, e.booking(t, b.ID).Status)

	ns := e.notes(t, b.RenterID)
	require.Len(t, ns, 1)
	assert.Equal(t, "Booking cancelled: listing removed", ns[0].Message)
	assert.Empty(t, e.notes(t, b.LenderID))

	rows := e.audit(t, domain.AuditFilter{Action: domain.ActionCancelBooking})
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Reason)
	assert.Equal(t, "listing removed", *rows[0].Reason)
}

func TestCompleteBooking(t *testing.T) {
	e := newEnv(t)
	b := e.fx.Booking(domain.Booking{Status: domain.BookingActive})

	require.NoError(t, e.svc.CompleteBooking(e.ctx, e.admin.ID, b.ID))
	assert.Equal(t, domain.BookingCompleted, e.booking(t, b.ID).Status)

	err := e.svc.CompleteBooking(e.ctx, e.admin.ID, "missing")
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestRefundBooking(t *testing.T) {
	e := newEnv(t)
	b := e.fx.Booking(domain.Booking{TotalAmount: 300, Status: domain.BookingActive})

	err := e.svc.RefundBooking(e.ctx, e.admin.ID, b.ID, -1, "")
	assert.True(t, domain.IsKind(err, domain.KindValidation))
	assert.Nil(t, e.booking(t, b.ID).RefundAmount)

	// 含押金，可高于租金总额
	require.NoError(t, e.svc.RefundBooking(e.ctx, e.admin.ID, b.ID, 350, ""))
	assert.Equal(t, 350.0, *e.booking(t, b.ID).RefundAmount)

	require.NoError(t, e.svc.RefundBooking(e.ctx, e.admin.ID, b.ID, 120, "late delivery"))
	got := e.booking(t, b.ID)
	require.NotNil(t, got.RefundAmount)
	assert.Equal(t, 120.0, *got.RefundAmount)
	assert.Equal(t, domain.BookingActive, got.Status, "refund does not change status")
	assert.Len(t, e.audit(t, domain.AuditFilter{Action: domain.ActionRefundBooking}), 2)
}

func TestListBookingsStatusValidation(t *testing.T) {
	e := newEnv(t)
	q := BookingQuery{}
	q.Status = "LOST"
	_, err := e.svc.ListBookings(e.ctx, e.admin.ID, q)
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	e.fx.Booking(domain.Booking{Status: domain.BookingActive})
	e.fx.Booking(domain.Booking{})
	q.Status = domain.BookingActive
	pg, err := e.svc.ListBookings(e.ctx, e.admin.ID, q)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pg.Total)
}
