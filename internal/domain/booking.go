package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingActive    BookingStatus = "ACTIVE"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingDisputed  BookingStatus = "DISPUTED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingActive, BookingCompleted, BookingCancelled, BookingDisputed:
		return true
	}
	return false
}

type Booking struct {
	ID           string        `gorm:"primaryKey;size:36" json:"id"`
	ListingID    string        `gorm:"index;size:36;not null" json:"listingId"`
	RenterID     string        `gorm:"index;size:36;not null" json:"renterId"`
	LenderID     string        `gorm:"index;size:36;not null" json:"lenderId"`
	Status       BookingStatus `gorm:"size:16;index;not null;default:PENDING" json:"status"`
	StartDate    time.Time     `json:"startDate"`
	EndDate      time.Time     `json:"endDate"`
	TotalAmount  float64       `gorm:"not null" json:"totalAmount"`
	RefundAmount *float64      `json:"refundAmount"`
	RequestedAt  time.Time     `gorm:"index" json:"requestedAt"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`

	Listing *Listing `gorm:"-" json:"listing,omitempty"`
	Renter  *UserRef `gorm:"-" json:"renter,omitempty"`
	Lender  *UserRef `gorm:"-" json:"lender,omitempty"`
}

type DisputeStatus string

const (
	DisputeOpen     DisputeStatus = "OPEN"
	DisputeResolved DisputeStatus = "RESOLVED"
)

func (s DisputeStatus) Valid() bool { return s == DisputeOpen || s == DisputeResolved }

type Dispute struct {
	ID                  string        `gorm:"primaryKey;size:36" json:"id"`
	BookingID           string        `gorm:"index;size:36;not null" json:"bookingId"`
	ReportedBy          string        `gorm:"index;size:36;not null" json:"reportedBy"`
	Reason              string        `gorm:"type:text" json:"reason"`
	Status              DisputeStatus `gorm:"size:16;index;not null;default:OPEN" json:"status"`
	Resolution          *string       `gorm:"type:text" json:"resolution"`
	DepositRefundAmount *float64      `json:"depositRefundAmount"`
	ResolvedBy          *string       `gorm:"size:36" json:"resolvedBy"`
	ResolvedAt          *time.Time    `json:"resolvedAt"`
	CreatedAt           time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`

	Booking  *Booking `gorm:"-" json:"booking,omitempty"`
	Reporter *UserRef `gorm:"-" json:"reporter,omitempty"`
}
