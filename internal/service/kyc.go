package service

import (
	"context"
	"strings"
	"time"

	"rental-backoffice/internal/domain"
	"rental-backoffice/internal/repo"
	"rental-backoffice/pkg/utils"
)

type KYCQuery struct {
	Status domain.KYCStatus `form:"status"`
	utils.Pagination
}

func (s *Service) ListKYC(ctx context.Context, actorID string, q KYCQuery) (utils.Page[domain.KYC], error) {
	if _, err := s.RequireAdmin(ctx, actorID); err != nil {
		return utils.Page[domain.KYC]{}, err
	}
	if q.Status != "" && !q.Status.Valid() {
		return utils.Page[domain.KYC]{}, domain.Invalidf("invalid KYC status %q", q.Status)
	}
	p := q.Pagination.Normalize()
	ks, total, err := s.store.KYCs().List(ctx, q.Status, p)
	if err != nil {
		return utils.Page[domain.KYC]{}, err
	}
	return utils.NewPage(ks, total, p), nil
}

func (s *Service) ApproveKYC(ctx context.Context, actorID, kycID string) error {
	admin, err := s.RequireAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func(tx *repo.Store, fx *effects) error {
		k, err := tx.KYCs().FindByID(ctx, kycID)
		if err != nil {
			return err
		}
		to, err := domain.NextKYCStatus(k.Status, domain.KYCEventApprove)
		if err != nil {
			return err
		}
		err = tx.KYCs().Update(ctx, k.ID, map[string]any{
			"status":           to,
			"reviewed_at":      time.Now(),
			"reviewed_by":      admin.ID,
			"rejection_reason": nil,
		})
		if err != nil {
			return err
		}
		fx.notify(k.UserID, domain.NotifKYCStatus, "KYC Approved",
			"Your KYC has been approved. You can now list items.", domain.TargetKYC, k.ID)
		return fx.audit(admin.ID, domain.ActionApproveKYC, domain.TargetKYC, k.ID, nil,
			map[string]any{"userId": k.UserID})
	})
}

// RejectKYC stores reason verbatim; a blank reason is refused.
func (s *Service) RejectKYC(ctx context.Context, actorID, kycID, reason string) error {
	admin, err := s.RequireAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return domain.Invalid("rejection reason is required")
	}
	return s.mutate(ctx, func(tx *repo.Store, fx *effects) error {
		k, err := tx.KYCs().FindByID(ctx, kycID)
		if err != nil {
			return err
		}
		to, err := domain.NextKYCStatus(k.Status, domain.KYCEventReject)
		if err != nil {
			return err
		}
		err = tx.KYCs().Update(ctx, k.ID, map[string]any{
			"status":           to,
			"reviewed_at":      time.Now(),
			"reviewed_by":      admin.ID,
			"rejection_reason": reason,
		})
		if err != nil {
			return err
		}
		fx.notify(k.UserID, domain.NotifKYCStatus, "KYC Rejected",
			"Your KYC was rejected. Reason: "+reason, domain.TargetKYC, k.ID)
		return fx.audit(admin.ID, domain.ActionRejectKYC, domain.TargetKYC, k.ID, &reason,
			map[string]any{"userId": k.UserID})
	})
}

// ResetKYC sends a reviewed KYC back to the queue, keyed by the owner's id.
func (s *Service) ResetKYC(ctx context.Context, actorID, userID string) error {
	admin, err := s.RequireAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func(tx *repo.Store, fx *effects) error {
		k, err := tx.KYCs().FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		to, err := domain.NextKYCStatus(k.Status, domain.KYCEventReset)
		if err != nil {
			return err
		}
		err = tx.KYCs().Update(ctx, k.ID, map[string]any{
			"status":           to,
			"reviewed_at":      nil,
			"reviewed_by":      nil,
			"rejection_reason": nil,
		})
		if err != nil {
			return err
		}
		return fx.audit(admin.ID, domain.ActionResetKYC, domain.TargetKYC, k.ID, nil,
			map[string]any{"userId": userID, "previousStatus": k.Status})
	})
}
