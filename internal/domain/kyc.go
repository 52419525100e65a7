package domain

import "time"

type KYCStatus string

// A user without a KYC row is NOT_SUBMITTED; the constant exists for reporting only.
const (
	KYCNotSubmitted KYCStatus = "NOT_SUBMITTED"
	KYCPending      KYCStatus = "PENDING"
	KYCApproved     KYCStatus = "APPROVED"
	KYCRejected     KYCStatus = "REJECTED"
)

func (s KYCStatus) Valid() bool {
	switch s {
	case KYCPending, KYCApproved, KYCRejected:
		return true
	}
	return false
}

type KYC struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	UserID          string     `gorm:"uniqueIndex;size:36;not null" json:"userId"`
	Status          KYCStatus  `gorm:"size:16;index;not null;default:PENDING" json:"status"`
	DocumentType    string     `gorm:"size:32" json:"documentType"`
	DocumentURL     string     `gorm:"size:500" json:"documentUrl"`
	RejectionReason *string    `gorm:"size:500" json:"rejectionReason"`
	ReviewedAt      *time.Time `json:"reviewedAt"`
	ReviewedBy      *string    `gorm:"size:36" json:"reviewedBy"`
	SubmittedAt     time.Time  `gorm:"index" json:"submittedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (KYC) TableName() string { return "kycs" }

type KYCEvent string

const (
	KYCEventApprove KYCEvent = "approve"
	KYCEventReject  KYCEvent = "reject"
	KYCEventReset   KYCEvent = "reset"
)

// kycTransitions lists every review move an admin may make.
var kycTransitions = map[KYCEvent]map[KYCStatus]KYCStatus{
	KYCEventApprove: {
		KYCPending:  KYCApproved,
		KYCRejected: KYCApproved,
	},
	KYCEventReject: {
		KYCPending:  KYCRejected,
		KYCApproved: KYCRejected,
		KYCRejected: KYCRejected,
	},
	KYCEventReset: {
		KYCApproved: KYCPending,
		KYCRejected: KYCPending,
	},
}

// NextKYCStatus returns the status reached by applying ev to from, or a
// DomainViolation when the move is not allowed.
func NextKYCStatus(from KYCStatus, ev KYCEvent) (KYCStatus, error) {
	if to, ok := kycTransitions[ev][from]; ok {
		return to, nil
	}
	return "", Violationf("cannot %s KYC in status %s", ev, from)
}
