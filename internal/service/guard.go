package service

import (
	"context"
	"strings"

	"rental-backoffice/internal/domain"
)

// RequireAdmin resolves actorID to an ADMIN account. Anything else, including
// an unknown id, is Unauthorized; store failures stay Upstream.
func (s *Service) RequireAdmin(ctx context.Context, actorID string) (*domain.User, error) {
	if strings.TrimSpace(actorID) == "" {
		return nil, domain.Unauthorized("unauthorized")
	}
	u, err := s.store.Users().FindByID(ctx, actorID)
	switch {
	case domain.IsKind(err, domain.KindNotFound):
		return nil, domain.Unauthorized("unauthorized")
	case err != nil:
		return nil, err
	case u.Role != domain.RoleAdmin:
		return nil, domain.Unauthorized("admin role required")
	}
	return u, nil
}
