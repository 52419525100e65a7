package service

import (
	"context"

	"rental-backoffice/internal/domain"
)

// MarkNotificationRead flags one of the caller's own notifications as read.
func (s *Service) MarkNotificationRead(ctx context.Context, userID, id string) error {
	if userID == "" {
		return domain.Unauthorized("unauthorized")
	}
	return s.store.Notifications().MarkRead(ctx, userID, id)
}
