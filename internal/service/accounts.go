package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"rental-backoffice/internal/domain"
	"rental-backoffice/pkg/utils"
)

// Login checks email and password. Unknown email and wrong password fail the
// same way; blocked accounts cannot sign in.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.store.Users().FindByEmail(ctx, email)
	if domain.IsKind(err, domain.KindNotFound) {
		return nil, domain.Unauthorized("invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.Unauthorized("invalid credentials")
	}
	if u.Blocked() {
		return nil, domain.Unauthorized("account is suspended or banned")
	}
	return u, nil
}

// Me returns the caller's own account.
func (s *Service) Me(ctx context.Context, userID string) (*domain.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.Unauthorized("unauthorized")
	}
	return s.store.Users().FindByID(ctx, userID)
}

// EnsureAdmin creates an ADMIN account for email, or promotes the existing
// one and resets its password. It reports whether a new row was created.
func (s *Service) EnsureAdmin(ctx context.Context, email, name, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, domain.Invalid("email is required")
	}
	hash, err := utils.HashPassword(password)
	if errors.Is(err, utils.ErrPasswordTooShort) {
		return false, domain.Invalidf("password must be at least %d characters", utils.MinPasswordLen)
	}
	if err != nil {
		return false, domain.Upstream("hash password", err)
	}

	u, err := s.store.Users().FindByEmail(ctx, email)
	switch {
	case domain.IsKind(err, domain.KindNotFound):
		if name == "" {
			name = email[:max(strings.IndexByte(email, '@'), 0)]
		}
		u = &domain.User{Email: email, Name: name, PasswordHash: hash, Role: domain.RoleAdmin}
		if err := s.store.Users().Create(ctx, u); err != nil {
			return false, err
		}
		s.log.Info("admin created", zap.String("id", u.ID), zap.String("email", email))
		s.invalidate(ctx)
		return true, nil
	case err != nil:
		return false, err
	}
	err = s.store.Users().Update(ctx, u.ID, map[string]any{
		"role":          domain.RoleAdmin,
		"password_hash": hash,
		"is_suspended":  false,
		"is_banned":     false,
	})
	if err != nil {
		return false, err
	}
	s.log.Info("admin promoted", zap.String("id", u.ID), zap.String("email", email))
	return false, nil
}
