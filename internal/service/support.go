package service

import (
	"context"
	"fmt"
	"strings"

	"rental-backoffice/internal/domain"
	"rental-backoffice/internal/repo"
)

type SupportRequest struct {
	Message   string `json:"message"`
	UserEmail string `json:"userEmail"`
	Reason    string `json:"reason"`
}

// SubmitSupportRequest notifies every admin account. It needs no caller
// identity and fails without writing anything when there is no admin.
func (s *Service) SubmitSupportRequest(ctx context.Context, in SupportRequest) error {
	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return domain.Invalid("message is required")
	}
	from := strings.TrimSpace(in.UserEmail)
	if from == "" {
		from = "anonymous"
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = "Support"
	}
	body := fmt.Sprintf("From: %s\nReason: %s\n%s", from, reason, msg)

	return s.mutate(ctx, func(tx *repo.Store, fx *effects) error {
		admins, err := tx.Users().ListByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return err
		}
		if len(admins) == 0 {
			return domain.NotFound("no admin users found")
		}
		for _, a := range admins {
			fx.notify(a.ID, domain.NotifSupportRequest, "Support Request", body, "", "")
		}
		return nil
	})
}
