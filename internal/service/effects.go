package service

import (
	"context"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"rental-backoffice/internal/domain"
	"rental-backoffice/internal/repo"
)

// Analytics entries are keyed by a generation that every committed mutation
// bumps, so a count computed before the commit cannot be read after it.
const (
	analyticsKey    = "backoffice:analytics"
	analyticsGenKey = analyticsKey + ":gen"
)

func analyticsEntry(gen int64) string { return analyticsKey + ":v" + strconv.FormatInt(gen, 10) }

// effects collects the audit rows and notifications of one mutation so they
// commit together with it.
type effects struct {
	audits []*domain.AdminAction
	notes  []*domain.Notification
}

func (fx *effects) audit(adminID, action, targetType, targetID string, reason *string, meta map[string]any) error {
	a := &domain.AdminAction{
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Reason:     reason,
	}
	if len(meta) > 0 {
		b, err := json.Marshal(meta)
		if err != nil {
			return domain.Upstream("encode audit metadata", err)
		}
		s := string(b)
		a.Metadata = &s
	}
	fx.audits = append(fx.audits, a)
	return nil
}

func (fx *effects) notify(userID string, typ domain.NotificationType, title, msg, relatedType, relatedID string) {
	n := &domain.Notification{UserID: userID, Type: typ, Title: title, Message: msg}
	if relatedID != "" {
		n.RelatedEntityID = &relatedID
		n.RelatedEntityType = &relatedType
	}
	fx.notes = append(fx.notes, n)
}

func (fx *effects) flush(ctx context.Context, tx *repo.Store) error {
	for _, a := range fx.audits {
		if err := tx.Audit().Create(ctx, a); err != nil {
			return err
		}
	}
	return tx.Notifications().Create(ctx, fx.notes...)
}

// mutate runs fn and its queued side effects in one transaction. Metrics and
// cache invalidation happen after commit and never fail the call.
func (s *Service) mutate(ctx context.Context, fn func(tx *repo.Store, fx *effects) error) error {
	var fx effects
	err := s.store.Transaction(ctx, func(tx *repo.Store) error {
		fx = effects{}
		if err := fn(tx, &fx); err != nil {
			return err
		}
		return fx.flush(ctx, tx)
	})
	if err != nil {
		return err
	}
	for _, a := range fx.audits {
		s.actions.WithLabelValues(a.Action).Inc()
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx, analyticsGenKey); err != nil {
		s.log.Warn("invalidate analytics cache", zap.Error(err))
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
