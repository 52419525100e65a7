package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"rental-backoffice/internal/domain"
	"rental-backoffice/internal/repo"
	"rental-backoffice/pkg/utils"
)

type ListingQuery struct {
	repo.ListingFilter
	utils.Pagination
}

func (s *Service) ListListings(ctx context.Context, actorID string, q ListingQuery) (utils.Page[domain.Listing], error) {
	if _, err := s.RequireAdmin(ctx, actorID); err != nil {
		return utils.Page[domain.Listing]{}, err
	}
	if q.Status != "" && !q.Status.Valid() {
		return utils.Page[domain.Listing]{}, domain.Invalidf("invalid listing status %q", q.Status)
	}
	p := q.Pagination.Normalize()
	ls, total, err := s.store.Listings().List(ctx, q.ListingFilter, p)
	if err != nil {
		return utils.Page[domain.Listing]{}, err
	}
	return utils.NewPage(ls, total, p), nil
}

// ListPendingListings returns listings that were never approved nor rejected.
func (s *Service) ListPendingListings(ctx context.Context, actorID string) ([]domain.Listing, error) {
	if _, err := s.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.store.Listings().ListPending(ctx)
}

// ToggleListingPause flips is_paused in the database and labels the audit row
// with the value it actually wrote.
func (s *Service) ToggleListingPause(ctx context.Context, actorID, listingID string) (bool, error) {
	admin, err := s.RequireAdmin(ctx, actorID)
	if err != nil {
		return false, err
	}
	var paused bool
	err = s.mutate(ctx, func(tx *repo.Store, fx *effects) error {
		v, err := tx.Listings().FlipPaused(ctx, listingID)
		if err != nil {
			return err
		}
		paused = v
		action := domain.ActionResumeListing
		if v {
			action = domain.ActionPauseListing
		}
		return fx.audit(admin.ID, action, domain.TargetListing, listingID, nil, nil)
	})
	return paused, err
}

func (s *Service) DeleteListing(ctx context.Context, actorID, listingID string) error {
	admin, err := s.RequireAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func(tx *repo.Store, fx *effects) error {
		l, err := tx.Listings().FindByID(ctx, listingID)
		if err != nil {
			return err
		}
		if err := tx.Listings().Delete(ctx, listingID); err != nil {
			return err
		}
		return fx.audit(admin.ID, domain.ActionDeleteListing, domain.TargetListing, listingID, nil,
			map[string]any{"title": l.Title, "ownerId": l.UserID})
	})
}

// UpdateListing applies the schema fields present in fields. Unknown keys are
// ignored; a schema violation is returned before anything is written.
func (s *Service) UpdateListing(ctx context.Context, actorID, listingID string, fields map[string]any) (*domain.Listing, error) {
	admin, err := s.RequireAdmin(ctx, actorID)
	if err != nil {
		return nil, err
	}
	var u domain.ListingUpdate
	if err := decodeAllowed(fields, &u); err != nil {
		return nil, err
	}
	if err := s.validate.StructCtx(ctx, u); err != nil {
		return nil, validationError(err)
	}
	var out *domain.Listing
	err = s.mutate(ctx, func(tx *repo.Store, fx *effects) error {
		if err := tx.Listings().Update(ctx, listingID, u.Columns()); err != nil {
			return err
		}
		l, err := tx.Listings().FindByID(ctx, listingID)
		if err != nil {
			return err
		}
		if u.Images != nil {
			// serializer tags only apply to struct writes
			l.Images = *u.Images
			if err := tx.Listings().Save(ctx, l); err != nil {
				return err
			}
		}
		out = l
		return fx.audit(admin.ID, domain.ActionUpdateListing, domain.TargetListing, listingID, nil,
			map[string]any{"fields": u.Fields()})
	})
	return out, err
}

func (s *Service) ApproveListing(ctx context.Context, actorID, listingID, reason string) error {
	admin, err := s.RequireAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	return s.mutate(ctx, func(tx *repo.Store, fx *effects) error {
		l, err := tx.Listings().FindByID(ctx, listingID)
		if err != nil {
			return err
		}
		if err := tx.Listings().Update(ctx, l.ID, map[string]any{"is_available": true}); err != nil {
			return err
		}
		fx.notify(l.UserID, domain.NotifListingApproved, "Listing Approved",
			fmt.Sprintf("Your listing %q has been approved and is now visible to renters.", l.Title),
			domain.TargetListing, l.ID)
		return fx.audit(admin.ID, domain.ActionApproveListing, domain.TargetListing, l.ID, optional(reason), nil)
	})
}

func (s *Service) RejectListing(ctx context.Context, actorID, listingID, reason string) error {
	admin, err := s.RequireAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	return s.mutate(ctx, func(tx *repo.Store, fx *effects) error {
		l, err := tx.Listings().FindByID(ctx, listingID)
		if err != nil {
			return err
		}
		err = tx.Listings().Update(ctx, l.ID, map[string]any{"is_available": false, "is_paused": true})
		if err != nil {
			return err
		}
		msg := fmt.Sprintf("Your listing %q has been rejected.", l.Title)
		if reason != "" {
			msg = fmt.Sprintf("Your listing %q has been rejected. Reason: %s", l.Title, reason)
		}
		fx.notify(l.UserID, domain.NotifListingRejected, "Listing Rejected", msg, domain.TargetListing, l.ID)
		return fx.audit(admin.ID, domain.ActionRejectListing, domain.TargetListing, l.ID, optional(reason), nil)
	})
}

// validationError flattens validator output into one ValidationFailed error.
func validationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return domain.Invalidf("invalid fields: %v", err)
	}
	parts := make([]string, 0, len(ves))
	for _, fe := range ves {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
	}
	return domain.Invalidf("invalid fields: %s", strings.Join(parts, ", "))
}
