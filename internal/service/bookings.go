package service

import (
	"context"
	"strings"

	"rental-backoffice/internal/domain"
	"rental-backoffice/internal/repo"
	"rental-backoffice/pkg/utils"
)

type BookingQuery struct {
	repo.BookingFilter
	utils.Pagination
}

func (s *Service) ListBookings(ctx context.Context, actorID string, q BookingQuery) (utils.Page[domain.Booking], error) {
	if _, err := s.RequireAdmin(ctx, actorID); err != nil {
		return utils.Page[domain.Booking]{}, err
	}
	if q.Status != "" && !q.Status.Valid() {
		return utils.Page[domain.Booking]{}, domain.Invalidf("invalid booking status %q", q.Status)
	}
	p := q.Pagination.Normalize()
	bs, total, err := s.store.Bookings().List(ctx, q.BookingFilter, p)
	if err != nil {
		return utils.Page[domain.Booking]{}, err
	}
	return utils.NewPage(bs, total, p), nil
}

func (s *Service) CancelBooking(ctx context.Context, actorID, bookingID, reason string) error {
	admin, err := s.RequireAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	return s.mutate(ctx, func(tx *repo.Store, fx *effects) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b.ID, map[string]any{"status": domain.BookingCancelled}); err != nil {
			return err
		}
		msg := "Booking cancelled by admin."
		if reason != "" {
			msg = "Booking cancelled: " + reason
		}
		fx.notify(b.RenterID, domain.NotifBookingCancelled, "Booking Cancelled", msg, domain.TargetBooking, b.ID)
		return fx.audit(admin.ID, domain.ActionCancelBooking, domain.TargetBooking, b.ID, optional(reason),
			map[string]any{"previousStatus": b.Status})
	})
}

func (s *Service) CompleteBooking(ctx context.Context, actorID, bookingID string) error {
	admin, err := s.RequireAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func(tx *repo.Store, fx *effects) error {
		if err := tx.Bookings().Update(ctx, bookingID, map[string]any{"status": domain.BookingCompleted}); err != nil {
			return err
		}
		return fx.audit(admin.ID, domain.ActionCompleteBooking, domain.TargetBooking, bookingID, nil, nil)
	})
}

// RefundBooking records amount as the refund. The booking status is unchanged.
// The amount may include the deposit, so it is not capped at the total.
func (s *Service) RefundBooking(ctx context.Context, actorID, bookingID string, amount float64, reason string) error {
	admin, err := s.RequireAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	if err := checkRefund(amount); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	return s.mutate(ctx, func(tx *repo.Store, fx *effects) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b.ID, map[string]any{"refund_amount": amount}); err != nil {
			return err
		}
		return fx.audit(admin.ID, domain.ActionRefundBooking, domain.TargetBooking, b.ID, optional(reason),
			map[string]any{"amount": amount})
	})
}

// checkRefund is the rule for every write to refund_amount.
func checkRefund(amount float64) error {
	if amount < 0 {
		return domain.Invalid("refund amount must not be negative")
	}
	return nil
}
