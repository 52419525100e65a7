package service

import (
	"context"

	"rental-backoffice/internal/domain"
	"rental-backoffice/internal/repo"
)

// ListAuditLog returns the most recent admin actions matching f, newest first.
func (s *Service) ListAuditLog(ctx context.Context, actorID string, f domain.AuditFilter) ([]domain.AdminAction, error) {
	if _, err := s.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.store.Audit().List(ctx, f, repo.AuditPageLimit)
}
