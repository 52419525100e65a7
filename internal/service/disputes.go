package service

import (
	"context"
	"strings"
	"time"

	"rental-backoffice/internal/domain"
	"rental-backoffice/internal/repo"
)

func (s *Service) ListDisputes(ctx context.Context, actorID string, status domain.DisputeStatus) ([]domain.Dispute, error) {
	if _, err := s.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, domain.Invalidf("invalid dispute status %q", status)
	}
	return s.store.Disputes().List(ctx, status)
}

// ResolveDispute closes the dispute, completes its booking with the deposit
// refund and notifies the reporter. Either every write lands or none does.
func (s *Service) ResolveDispute(ctx context.Context, actorID, disputeID, resolution string, depositRefund float64) error {
	admin, err := s.RequireAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	resolution = strings.TrimSpace(resolution)
	if resolution == "" {
		return domain.Invalid("resolution is required")
	}
	if err := checkRefund(depositRefund); err != nil {
		return err
	}
	return s.mutate(ctx, func(tx *repo.Store, fx *effects) error {
		d, err := tx.Disputes().FindByID(ctx, disputeID)
		if err != nil {
			return err
		}
		if d.Status == domain.DisputeResolved {
			return domain.Violationf("dispute %s is already resolved", d.ID)
		}
		err = tx.Disputes().Update(ctx, d.ID, map[string]any{
			"status":                domain.DisputeResolved,
			"resolution":            resolution,
			"deposit_refund_amount": depositRefund,
			"resolved_by":           admin.ID,
			"resolved_at":           time.Now(),
		})
		if err != nil {
			return err
		}
		err = tx.Bookings().Update(ctx, d.BookingID, map[string]any{
			"status":        domain.BookingCompleted,
			"refund_amount": depositRefund,
		})
		if err != nil {
			return err
		}
		fx.notify(d.ReportedBy, domain.NotifDisputeResolved, "Dispute Resolved",
			"Your dispute has been resolved: "+resolution, domain.TargetDispute, d.ID)
		return fx.audit(admin.ID, domain.ActionResolveDispute, domain.TargetDispute, d.ID, nil,
			map[string]any{"bookingId": d.BookingID, "depositRefundAmount": depositRefund})
	})
}
