package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Admin action kinds written to the audit trail.
const (
	ActionUpdateUserRole  = "UPDATE_USER_ROLE"
	ActionSuspendUser     = "SUSPEND_USER"
	ActionUnsuspendUser   = "UNSUSPEND_USER"
	ActionBanUser         = "BAN_USER"
	ActionUnbanUser       = "UNBAN_USER"
	ActionApproveKYC      = "APPROVE_KYC"
	ActionRejectKYC       = "REJECT_KYC"
	ActionResetKYC        = "RESET_KYC"
	ActionPauseListing    = "PAUSE_LISTING"
	ActionResumeListing   = "RESUME_LISTING"
	ActionDeleteListing   = "DELETE_LISTING"
	ActionUpdateListing   = "UPDATE_LISTING"
	ActionApproveListing  = "APPROVE_LISTING"
	ActionRejectListing   = "REJECT_LISTING"
	ActionCancelBooking   = "CANCEL_BOOKING"
	ActionCompleteBooking = "COMPLETE_BOOKING"
	ActionRefundBooking   = "REFUND_BOOKING"
	ActionResolveDispute  = "RESOLVE_DISPUTE"
)

const (
	TargetUser    = "USER"
	TargetKYC     = "KYC"
	TargetListing = "LISTING"
	TargetBooking = "BOOKING"
	TargetDispute = "DISPUTE"
)

var ErrAuditImmutable = errors.New("admin actions are append-only")

type AdminAction struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	AdminID    string    `gorm:"index;size:36;not null" json:"adminId"`
	Action     string    `gorm:"index;size:32;not null" json:"action"`
	TargetType string    `gorm:"index;size:16;not null" json:"targetType"`
	TargetID   string    `gorm:"size:36;not null" json:"targetId"`
	Reason     *string   `gorm:"size:500" json:"reason"`
	Metadata   *string   `gorm:"type:text" json:"metadata"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}

func (*AdminAction) BeforeUpdate(*gorm.DB) error { return ErrAuditImmutable }
func (*AdminAction) BeforeDelete(*gorm.DB) error { return ErrAuditImmutable }

type AuditFilter struct {
	Action     string `form:"action"`
	AdminID    string `form:"adminId"`
	TargetType string `form:"targetType"`
}
