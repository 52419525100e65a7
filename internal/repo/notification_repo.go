package repo

import (
	"context"

	"gorm.io/gorm"

	"rental-backoffice/internal/domain"
	"rental-backoffice/pkg/utils"
)

type NotificationRepo struct{ db *gorm.DB }

func (r *NotificationRepo) Create(ctx context.Context, ns ...*domain.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	for _, n := range ns {
		if n.ID == "" {
			n.ID = utils.NewID()
		}
	}
	return dbErr("create notification", r.db.WithContext(ctx).Create(ns).Error)
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	var ns []domain.Notification
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Order("id ASC").Find(&ns).Error
	if err != nil {
		return nil, domain.Upstream("list notifications", err)
	}
	return ns, nil
}

// MarkRead flags the notification as read when it belongs to userID.
func (r *NotificationRepo) MarkRead(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return domain.Upstream("mark notification read", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// MySQL 对未变化的行返回 0，再确认一次归属
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).Count(&n).Error
	if err != nil {
		return domain.Upstream("lookup notification", err)
	}
	if n == 0 {
		return domain.NotFound("notification not found")
	}
	return nil
}
