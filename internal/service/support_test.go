package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backoffice/internal/domain"
	"rental-backoffice/internal/repo"
	"rental-backoffice/internal/testutil"
)

func TestSubmitSupportRequestBroadcasts(t *testing.T) {
	e := newEnv(t)
	second := e.fx.Admin()
	plain := e.fx.User(domain.User{})

	require.NoError(t, e.svc.SubmitSupportRequest(e.ctx, SupportRequest{
		Message: "I cannot upload photos", UserEmail: "jo@example.com",
	}))

	for _, id := range []string{e.admin.ID, second.ID} {
		ns := e.notes(t, id)
		require.Len(t, ns, 1)
		assert.Equal(t, domain.NotifSupportRequest, ns[0].Type)
		assert.Equal(t, "From: jo@example.com\nReason: Support\nI cannot upload photos", ns[0].Message)
	}
	assert.Empty(t, e.notes(t, plain.ID))

	err := e.svc.SubmitSupportRequest(e.ctx, SupportRequest{Message: " "})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestSubmitSupportRequestWithoutAdmins(t *testing.T) {
	db := testutil.NewDB(t)
	store := repo.NewStore(db)
	svc := New(store, Deps{})
	u := testutil.NewFixtures(t, db).User(domain.User{})

	err := svc.SubmitSupportRequest(t.Context(), SupportRequest{Message: "help"})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	ns, err := store.Notifications().ListByUser(t.Context(), u.ID)
	require.NoError(t, err)
	assert.Empty(t, ns)
}
