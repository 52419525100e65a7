package domain

import "time"

type NotificationType string

const (
	NotifKYCStatus        NotificationType = "KYC_STATUS"
	NotifListingApproved  NotificationType = "LISTING_APPROVED"
	NotifListingRejected  NotificationType = "LISTING_REJECTED"
	NotifBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotifDisputeResolved  NotificationType = "DISPUTE_RESOLVED"
	NotifSupportRequest   NotificationType = "SUPPORT_REQUEST"
)

type Notification struct {
	ID                string           `gorm:"primaryKey;size:36" json:"id"`
	UserID            string           `gorm:"index;size:36;not null" json:"userId"`
	Type              NotificationType `gorm:"size:32;not null" json:"type"`
	Title             string           `gorm:"size:128;not null" json:"title"`
	Message           string           `gorm:"type:text" json:"message"`
	RelatedEntityID   *string          `gorm:"size:36" json:"relatedEntityId"`
	RelatedEntityType *string          `gorm:"size:16" json:"relatedEntityType"`
	IsRead            bool             `gorm:"not null" json:"isRead"`
	CreatedAt         time.Time        `gorm:"index" json:"createdAt"`
}

// Models lists every table this back-office migrates.
func Models() []any {
	return []any{
		&User{}, &KYC{}, &Listing{}, &Booking{}, &Dispute{}, &Notification{}, &AdminAction{},
	}
}
