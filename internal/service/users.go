package service

import (
	"context"
	"strings"

	"rental-backoffice/internal/domain"
	"rental-backoffice/internal/repo"
	"rental-backoffice/pkg/utils"
)

type UserQuery struct {
	Query string `form:"query"`
	utils.Pagination
}

func (s *Service) ListUsers(ctx context.Context, actorID string, q UserQuery) (utils.Page[domain.User], error) {
	if _, err := s.RequireAdmin(ctx, actorID); err != nil {
		return utils.Page[domain.User]{}, err
	}
	p := q.Pagination.Normalize()
	us, total, err := s.store.Users().List(ctx, q.Query, p)
	if err != nil {
		return utils.Page[domain.User]{}, err
	}
	return utils.NewPage(us, total, p), nil
}

func (s *Service) UpdateUserRole(ctx context.Context, actorID, userID string, role domain.Role) error {
	admin, err := s.RequireAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	if !role.Valid() {
		return domain.Invalidf("invalid role %q", role)
	}
	return s.mutate(ctx, func(tx *repo.Store, fx *effects) error {
		if err := tx.Users().Update(ctx, userID, map[string]any{"role": role}); err != nil {
			return err
		}
		return fx.audit(admin.ID, domain.ActionUpdateUserRole, domain.TargetUser, userID, nil,
			map[string]any{"role": role})
	})
}

func (s *Service) SuspendUser(ctx context.Context, actorID, userID, reason string) error {
	return s.setUserFlag(ctx, actorID, []string{userID}, reason, domain.ActionSuspendUser)
}

func (s *Service) UnsuspendUser(ctx context.Context, actorID, userID string) error {
	return s.setUserFlag(ctx, actorID, []string{userID}, "", domain.ActionUnsuspendUser)
}

func (s *Service) BanUser(ctx context.Context, actorID, userID, reason string) error {
	return s.setUserFlag(ctx, actorID, []string{userID}, reason, domain.ActionBanUser)
}

func (s *Service) UnbanUser(ctx context.Context, actorID, userID string) error {
	return s.setUserFlag(ctx, actorID, []string{userID}, "", domain.ActionUnbanUser)
}

// BulkSuspendUsers suspends every user in ids or none of them.
func (s *Service) BulkSuspendUsers(ctx context.Context, actorID string, ids []string, reason string) error {
	return s.setUserFlag(ctx, actorID, ids, reason, domain.ActionSuspendUser)
}

// BulkBanUsers bans every user in ids or none of them.
func (s *Service) BulkBanUsers(ctx context.Context, actorID string, ids []string, reason string) error {
	return s.setUserFlag(ctx, actorID, ids, reason, domain.ActionBanUser)
}

func userFlagColumns(action, reason string) map[string]any {
	switch action {
	case domain.ActionSuspendUser:
		return map[string]any{"is_suspended": true, "suspension_reason": optional(reason)}
	case domain.ActionUnsuspendUser:
		return map[string]any{"is_suspended": false, "suspension_reason": nil}
	case domain.ActionBanUser:
		return map[string]any{"is_banned": true, "banned_reason": optional(reason)}
	default:
		return map[string]any{"is_banned": false, "banned_reason": nil}
	}
}

func (s *Service) setUserFlag(ctx context.Context, actorID string, ids []string, reason, action string) error {
	admin, err := s.RequireAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return domain.Invalid("no user ids given")
	}
	reason = strings.TrimSpace(reason)
	return s.mutate(ctx, func(tx *repo.Store, fx *effects) error {
		if len(ids) > 1 {
			n, err := tx.Users().CountIDs(ctx, ids)
			if err != nil {
				return err
			}
			if n != int64(len(ids)) {
				return domain.NotFound("one or more users not found")
			}
		}
		cols := userFlagColumns(action, reason)
		for _, id := range ids {
			if err := tx.Users().Update(ctx, id, cols); err != nil {
				return err
			}
			if err := fx.audit(admin.ID, action, domain.TargetUser, id, optional(reason), nil); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateUserProfile writes the contact and delivery fields present in fields.
// Keys outside that set, role included, are ignored.
func (s *Service) UpdateUserProfile(ctx context.Context, actorID, userID string, fields map[string]any) (*domain.User, error) {
	if _, err := s.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	var p domain.ProfileUpdate
	if err := decodeAllowed(fields, &p); err != nil {
		return nil, err
	}
	var out *domain.User
	err := s.mutate(ctx, func(tx *repo.Store, _ *effects) error {
		if err := tx.Users().Update(ctx, userID, p.Columns()); err != nil {
			return err
		}
		u, err := tx.Users().FindByID(ctx, userID)
		out = u
		return err
	})
	return out, err
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
