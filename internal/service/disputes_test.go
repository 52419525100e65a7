package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backoffice/internal/domain"
)

func TestResolveDispute(t *testing.T) {
	e := newEnv(t)
	d := e.fx.Dispute(domain.Dispute{})

	require.NoError(t, e.svc.ResolveDispute(e.ctx, e.admin.ID, d.ID, "split the deposit", 500))

	got, err := e.store.Disputes().FindByID(e.ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DisputeResolved, got.Status)
	require.NotNil(t, got.Resolution)
	assert.Equal(t, "split the deposit", *got.Resolution)
	require.NotNil(t, got.ResolvedBy)
	assert.Equal(t, e.admin.ID, *got.ResolvedBy)
	assert.NotNil(t, got.ResolvedAt)
	require.NotNil(t, got.DepositRefundAmount)
	assert.Equal(t, 500.0, *got.DepositRefundAmount)

	b := e.booking(t, d.BookingID)
	assert.Equal(t, domain.BookingCompleted, b.Status)
	require.NotNil(t, b.RefundAmount)
	assert.Equal(t, 500.0, *b.RefundAmount)

	ns := e.notes(t, d.ReportedBy)
	require.Len(t, ns, 1)
	assert.Equal(t, domain.NotifDisputeResolved, ns[0].Type)
	assert.Len(t, e.audit(t, domain.AuditFilter{Action: domain.ActionResolveDispute}), 1)

	err = e.svc.ResolveDispute(e.ctx, e.admin.ID, d.ID, "again", 0)
	assert.True(t, domain.IsKind(err, domain.KindDomainViolation))
	assert.Len(t, e.notes(t, d.ReportedBy), 1)
}

func TestResolveDisputeValidation(t *testing.T) {
	e := newEnv(t)
	d := e.fx.Dispute(domain.Dispute{})

	err := e.svc.ResolveDispute(e.ctx, e.admin.ID, d.ID, "  ", 10)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
	err = e.svc.ResolveDispute(e.ctx, e.admin.ID, d.ID, "ok", -5)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
	err = e.svc.ResolveDispute(e.ctx, e.admin.ID, "missing", "ok", 5)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestResolveDisputeRollsBackWhenBookingIsGone(t *testing.T) {
	e := newEnv(t)
	d := e.fx.Dispute(domain.Dispute{BookingID: "deleted-booking"})

	err := e.svc.ResolveDispute(e.ctx, e.admin.ID, d.ID, "refund", 50)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	got, err := e.store.Disputes().FindByID(e.ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DisputeOpen, got.Status, "dispute update must roll back")
	assert.Nil(t, got.Resolution)
	assert.Empty(t, e.notes(t, d.ReportedBy))
	assert.Empty(t, e.audit(t, domain.AuditFilter{}))
}

func TestListDisputes(t *testing.T) {
	e := newEnv(t)
	open := e.fx.Dispute(domain.Dispute{})
	e.fx.Dispute(domain.Dispute{Status: domain.DisputeResolved})

	all, err := e.svc.ListDisputes(e.ctx, e.admin.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	only, err := e.svc.ListDisputes(e.ctx, e.admin.ID, domain.DisputeOpen)
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, open.ID, only[0].ID)
}
