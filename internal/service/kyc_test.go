package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backoffice/internal/domain"
	"rental-backoffice/pkg/utils"
)

func (e *env) kyc(t *testing.T, id string) *domain.KYC {
	t.Helper()
	k, err := e.store.KYCs().FindByID(e.ctx, id)
	require.NoError(t, err)
	return k
}

func TestRejectKYCRequiresReason(t *testing.T) {
	e := newEnv(t)
	k := e.fx.KYC(domain.KYC{})

	for _, reason := range []string{"", "   "} {
		err := e.svc.RejectKYC(e.ctx, e.admin.ID, k.ID, reason)
		assert.True(t, domain.IsKind(err, domain.KindValidation), "reason %q", reason)
	}
	assert.Equal(t, domain.KYCPending, e.kyc(t, k.ID).Status)

	require.NoError(t, e.svc.RejectKYC(e.ctx, e.admin.ID, k.ID, "blurry"))
	got := e.kyc(t, k.ID)
	assert.Equal(t, domain.KYCRejected, got.Status)
	require.NotNil(t, got.RejectionReason)
	assert.Equal(t, "blurry", *got.RejectionReason)
	require.NotNil(t, got.ReviewedBy)
	assert.Equal(t, e.admin.ID, *got.ReviewedBy)
	assert.NotNil(t, got.ReviewedAt)

	ns := e.notes(t, k.UserID)
	require.Len(t, ns, 1)
	assert.Equal(t, domain.NotifKYCStatus, ns[0].Type)
	assert.Contains(t, ns[0].Message, "blurry")
	assert.Len(t, e.audit(t, domain.AuditFilter{Action: domain.ActionRejectKYC}), 1)
}

func TestApproveKYC(t *testing.T) {
	e := newEnv(t)
	reason := "blurry"
	k := e.fx.KYC(domain.KYC{Status: domain.KYCRejected, RejectionReason: &reason})

	require.NoError(t, e.svc.ApproveKYC(e.ctx, e.admin.ID, k.ID))
	got := e.kyc(t, k.ID)
	assert.Equal(t, domain.KYCApproved, got.Status)
	assert.Nil(t, got.RejectionReason)
	require.NotNil(t, got.ReviewedBy)
	assert.Equal(t, e.admin.ID, *got.ReviewedBy)

	ns := e.notes(t, k.UserID)
	require.Len(t, ns, 1)
	assert.Equal(t, "KYC Approved", ns[0].Title)

	err := e.svc.ApproveKYC(e.ctx, e.admin.ID, k.ID)
	assert.True(t, domain.IsKind(err, domain.KindDomainViolation))
	assert.Len(t, e.notes(t, k.UserID), 1)

	err = e.svc.ApproveKYC(e.ctx, e.admin.ID, "missing")
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestResetKYC(t *testing.T) {
	e := newEnv(t)
	pending := e.fx.KYC(domain.KYC{})

	err := e.svc.ResetKYC(e.ctx, e.admin.ID, pending.UserID)
	assert.True(t, domain.IsKind(err, domain.KindDomainViolation))
	assert.Empty(t, e.audit(t, domain.AuditFilter{}))

	require.NoError(t, e.svc.RejectKYC(e.ctx, e.admin.ID, pending.ID, "expired id"))
	require.NoError(t, e.svc.ResetKYC(e.ctx, e.admin.ID, pending.UserID))
	got := e.kyc(t, pending.ID)
	assert.Equal(t, domain.KYCPending, got.Status)
	assert.Nil(t, got.ReviewedAt)
	assert.Nil(t, got.ReviewedBy)
	assert.Nil(t, got.RejectionReason)

	rows := e.audit(t, domain.AuditFilter{Action: domain.ActionResetKYC})
	require.Len(t, rows, 1)
	assert.Equal(t, domain.TargetKYC, rows[0].TargetType)

	noKYC := e.fx.User(domain.User{})
	err = e.svc.ResetKYC(e.ctx, e.admin.ID, noKYC.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestListKYC(t *testing.T) {
	e := newEnv(t)
	p1 := e.fx.KYC(domain.KYC{})
	e.fx.KYC(domain.KYC{Status: domain.KYCApproved})
	p2 := e.fx.KYC(domain.KYC{})

	pg, err := e.svc.ListKYC(e.ctx, e.admin.ID, KYCQuery{Status: domain.KYCPending})
	require.NoError(t, err)
	assert.EqualValues(t, 2, pg.Total)
	require.Len(t, pg.Items, 2)
	assert.Equal(t, p2.ID, pg.Items[0].ID)
	assert.Equal(t, p1.ID, pg.Items[1].ID)

	_, err = e.svc.ListKYC(e.ctx, e.admin.ID, KYCQuery{Status: "LOST", Pagination: utils.Pagination{}})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}
