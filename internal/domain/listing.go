package domain

import (
	"sort"
	"time"
)

type Listing struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	UserID        string    `gorm:"index;size:36;not null" json:"userId"`
	Title         string    `gorm:"size:100;not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	Category      string    `gorm:"size:50;index" json:"category"`
	City          string    `gorm:"size:64;index" json:"city"`
	State         string    `gorm:"size:64" json:"state"`
	PricePerDay   float64   `gorm:"not null" json:"pricePerDay"`
	DepositAmount float64   `json:"depositAmount"`
	Images        []string  `gorm:"type:text;serializer:json" json:"images"`
	IsAvailable   bool      `gorm:"not null" json:"isAvailable"`
	IsPaused      bool      `gorm:"not null" json:"isPaused"`
	CreatedAt     time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Owner *UserRef      `gorm:"-" json:"user,omitempty"`
	Count *ListingCount `gorm:"-" json:"_count,omitempty"`
}

type ListingCount struct {
	Bookings int64 `json:"bookings"`
}

// Visible reports whether renters can see the listing.
func (l *Listing) Visible() bool { return l.IsAvailable && !l.IsPaused }

type ListingStatus string

const (
	ListingAvailable   ListingStatus = "available"
	ListingPaused      ListingStatus = "paused"
	ListingUnavailable ListingStatus = "unavailable"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case ListingAvailable, ListingPaused, ListingUnavailable:
		return true
	}
	return false
}

// ListingUpdate is the schema admins edit listings through. Unknown keys are
// dropped while decoding; the validate tags run before anything is written.
type ListingUpdate struct {
	Title         *string   `mapstructure:"title" validate:"omitempty,min=3,max=100"`
	Description   *string   `mapstructure:"description" validate:"omitempty,min=10,max=2000"`
	Category      *string   `mapstructure:"category" validate:"omitempty,min=2,max=50"`
	City          *string   `mapstructure:"city" validate:"omitempty,min=2,max=64"`
	State         *string   `mapstructure:"state" validate:"omitempty,max=64"`
	PricePerDay   *float64  `mapstructure:"pricePerDay" validate:"omitempty,gt=0"`
	DepositAmount *float64  `mapstructure:"depositAmount" validate:"omitempty,gte=0"`
	Images        *[]string `mapstructure:"images" validate:"omitempty,max=10,dive,url"`
	IsAvailable   *bool     `mapstructure:"isAvailable"`
}

// Columns maps the non-nil fields to column updates.
func (u ListingUpdate) Columns() map[string]any {
	cols := map[string]any{}
	if u.Title != nil {
		cols["title"] = *u.Title
	}
	if u.Description != nil {
		cols["description"] = *u.Description
	}
	if u.Category != nil {
		cols["category"] = *u.Category
	}
	if u.City != nil {
		cols["city"] = *u.City
	}
	if u.State != nil {
		cols["state"] = *u.State
	}
	if u.PricePerDay != nil {
		cols["price_per_day"] = *u.PricePerDay
	}
	if u.DepositAmount != nil {
		cols["deposit_amount"] = *u.DepositAmount
	}
	if u.IsAvailable != nil {
		cols["is_available"] = *u.IsAvailable
	}
	return cols
}

// Fields returns the sorted column names a ListingUpdate touches, images included.
func (u ListingUpdate) Fields() []string {
	var out []string
	for k := range u.Columns() {
		out = append(out, k)
	}
	if u.Images != nil {
		out = append(out, "images")
	}
	sort.Strings(out)
	return out
}
