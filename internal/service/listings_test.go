package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backoffice/internal/domain"
)

func (e *env) listing(t *testing.T, id string) *domain.Listing {
	t.Helper()
	l, err := e.store.Listings().FindByID(e.ctx, id)
	require.NoError(t, err)
	return l
}

func TestTogglePauseIsItsOwnInverse(t *testing.T) {
	e := newEnv(t)
	l := e.fx.Listing(domain.Listing{IsAvailable: true})

	paused, err := e.svc.ToggleListingPause(e.ctx, e.admin.ID, l.ID)
	require.NoError(t, err)
	assert.True(t, paused)
	assert.True(t, e.listing(t, l.ID).IsPaused)

	paused, err = e.svc.ToggleListingPause(e.ctx, e.admin.ID, l.ID)
	require.NoError(t, err)
	assert.False(t, paused)
	assert.False(t, e.listing(t, l.ID).IsPaused)

	assert.Len(t, e.audit(t, domain.AuditFilter{Action: domain.ActionPauseListing}), 1)
	assert.Len(t, e.audit(t, domain.AuditFilter{Action: domain.ActionResumeListing}), 1)

	_, err = e.svc.ToggleListingPause(e.ctx, e.admin.ID, "missing")
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestDeleteListing(t *testing.T) {
	e := newEnv(t)
	l := e.fx.Listing(domain.Listing{})

	require.NoError(t, e.svc.DeleteListing(e.ctx, e.admin.ID, l.ID))
	_, err := e.store.Listings().FindByID(e.ctx, l.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	assert.Len(t, e.audit(t, domain.AuditFilter{Action: domain.ActionDeleteListing}), 1)

	err = e.svc.DeleteListing(e.ctx, e.admin.ID, l.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestUpdateListingDropsUnknownKeys(t *testing.T) {
	e := newEnv(t)
	l := e.fx.Listing(domain.Listing{Title: "Old title"})

	got, err := e.svc.UpdateListing(e.ctx, e.admin.ID, l.ID, map[string]any{
		"title":       "Camping tent for four",
		"pricePerDay": 42.5,
		"images":      []string{"https://cdn.example.com/tent.jpg"},
		"userId":      "someone-else",
		"hackerField": "x",
	})
	require.NoError(t, err)
	assert.Equal(t, "Camping tent for four", got.Title)
	assert.Equal(t, 42.5, got.PricePerDay)
	assert.Equal(t, l.UserID, got.UserID)

	stored := e.listing(t, l.ID)
	assert.Equal(t, []string{"https://cdn.example.com/tent.jpg"}, stored.Images)
	assert.Equal(t, l.UserID, stored.UserID)

	rows := e.audit(t, domain.AuditFilter{Action: domain.ActionUpdateListing})
	require.Len(t, rows, 1)
	var meta struct{ Fields []string }
	require.NoError(t, json.Unmarshal([]byte(*rows[0].Metadata), &meta))
	assert.Equal(t, []string{"images", "price_per_day", "title"}, meta.Fields)
}

func TestUpdateListingValidation(t *testing.T) {
	e := newEnv(t)
	l := e.fx.Listing(domain.Listing{Title: "Old title"})

	for name, fields := range map[string]map[string]any{
		"short title":    {"title": "ab"},
		"negative price": {"pricePerDay": -1.0},
		"bad image url":  {"images": []string{"not a url"}},
		"wrong type":     {"title": 12},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := e.svc.UpdateListing(e.ctx, e.admin.ID, l.ID, fields)
			assert.True(t, domain.IsKind(err, domain.KindValidation), "got %v", err)
		})
	}
	assert.Equal(t, "Old title", e.listing(t, l.ID).Title)
	assert.Empty(t, e.audit(t, domain.AuditFilter{}))
}

func TestApproveAndRejectListing(t *testing.T) {
	e := newEnv(t)
	l := e.fx.Listing(domain.Listing{Title: "Drill"})

	pending, err := e.svc.ListPendingListings(e.ctx, e.admin.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, e.svc.ApproveListing(e.ctx, e.admin.ID, l.ID, ""))
	assert.True(t, e.listing(t, l.ID).Visible())
	pending, err = e.svc.ListPendingListings(e.ctx, e.admin.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.NoError(t, e.svc.RejectListing(e.ctx, e.admin.ID, l.ID, "counterfeit"))
	got := e.listing(t, l.ID)
	assert.False(t, got.IsAvailable)
	assert.True(t, got.IsPaused)

	ns := e.notes(t, l.UserID)
	require.Len(t, ns, 2)
	types := []domain.NotificationType{ns[0].Type, ns[1].Type}
	assert.ElementsMatch(t, []domain.NotificationType{domain.NotifListingApproved, domain.NotifListingRejected}, types)
	for _, n := range ns {
		if n.Type == domain.NotifListingRejected {
			assert.Contains(t, n.Message, "counterfeit")
		}
	}
}

func TestListListingsStatusValidation(t *testing.T) {
	e := newEnv(t)
	q := ListingQuery{}
	q.Status = "archived"
	_, err := e.svc.ListListings(e.ctx, e.admin.ID, q)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}
