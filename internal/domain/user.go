package domain

import "time"

type Role string

const (
	RoleUser          Role = "USER"
	RoleAdmin         Role = "ADMIN"
	RoleDeliveryAgent Role = "DELIVERY_AGENT"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleDeliveryAgent:
		return true
	}
	return false
}

type User struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	Email            string    `gorm:"uniqueIndex;size:191" json:"email"`
	Name             string    `gorm:"size:64" json:"name"`
	PasswordHash     string    `gorm:"size:191" json:"-"`
	Role             Role      `gorm:"size:16;index;not null;default:USER" json:"role"`
	Phone            string    `gorm:"size:32" json:"phone"`
	DeliveryAddress  string    `gorm:"size:255" json:"deliveryAddress"`
	DeliveryCity     string    `gorm:"size:64" json:"deliveryCity"`
	DeliveryState    string    `gorm:"size:64" json:"deliveryState"`
	DeliveryZipCode  string    `gorm:"size:16" json:"deliveryZipCode"`
	IsSuspended      bool      `gorm:"not null" json:"isSuspended"`
	SuspensionReason *string   `gorm:"size:500" json:"suspensionReason"`
	IsBanned         bool      `gorm:"not null" json:"isBanned"`
	BannedReason     *string   `gorm:"size:500" json:"bannedReason"`
	CreatedAt        time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	// 列表页附带，仅由 repo 按需填充
	KYC   *KYC       `gorm:"-" json:"kyc,omitempty"`
	Count *UserCount `gorm:"-" json:"_count,omitempty"`
}

type UserCount struct {
	Listings         int64 `json:"listings"`
	BookingsAsRenter int64 `json:"bookingsAsRenter"`
	BookingsAsLender int64 `json:"bookingsAsLender"`
}

// UserRef is the part of an account shown next to another record.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Blocked reports whether the account may not act on the marketplace. A ban
// blocks regardless of the suspension flag.
func (u *User) Blocked() bool { return u.IsBanned || u.IsSuspended }

// ProfileUpdate is the only field set an admin may write through the profile
// endpoint. Keys outside it are dropped while decoding.
type ProfileUpdate struct {
	Name            *string `mapstructure:"name"`
	Phone           *string `mapstructure:"phone"`
	DeliveryAddress *string `mapstructure:"deliveryAddress"`
	DeliveryCity    *string `mapstructure:"deliveryCity"`
	DeliveryState   *string `mapstructure:"deliveryState"`
	DeliveryZipCode *string `mapstructure:"deliveryZipCode"`
}

// Columns maps the non-nil fields to column updates.
func (p ProfileUpdate) Columns() map[string]any {
	cols := map[string]any{}
	set := func(col string, v *string) {
		if v != nil {
			cols[col] = *v
		}
	}
	set("name", p.Name)
	set("phone", p.Phone)
	set("delivery_address", p.DeliveryAddress)
	set("delivery_city", p.DeliveryCity)
	set("delivery_state", p.DeliveryState)
	set("delivery_zip_code", p.DeliveryZipCode)
	return cols
}
