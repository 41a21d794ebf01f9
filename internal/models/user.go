package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the system
type User struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Email              string     `gorm:"uniqueIndex;not null" json:"email"`
	EncryptedPassword  string     `gorm:"column:encrypted_password;not null" json:"-"`
	DisplayName        string     `json:"display_name"`
	PhotoURL           *string    `json:"photo_url"`
	Role               string     `gorm:"default:user" json:"role"`
	Status             string     `gorm:"default:active" json:"status"`
	RecoveryCode       *string    `json:"-"`
	RecoveryCodeSentAt *time.Time `json:"-"`

	// Subscription
	SubscriptionType      string     `gorm:"default:free" json:"subscription_type"`
	SubscriptionStatus    string     `gorm:"default:active" json:"subscription_status"`
	SubscriptionStartDate *time.Time `json:"subscription_start_date"`
	SubscriptionEndDate   *time.Time `json:"subscription_end_date"`
	StripeCustomerID      *string    `json:"-"`
	StripePriceID         *string    `json:"-"`

	// Report quota
	ReportsUsed  int `gorm:"default:0" json:"reports_used"`
	ReportsLimit int `gorm:"default:2" json:"reports_limit"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Notifications []Notification `gorm:"foreignKey:UserID" json:"notifications,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook for setting defaults
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	if u.SubscriptionType == "" {
		u.SubscriptionType = PlanFree
	}
	if u.SubscriptionStatus == "" {
		u.SubscriptionStatus = SubscriptionActive
	}
	if u.ReportsLimit == 0 {
		u.ReportsLimit = FreeReportsLimit
	}
	return nil
}

// IsAdmin returns true if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsActive returns true if user status is active
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// IsPremium returns true if the user is on an active premium plan
func (u *User) IsPremium() bool {
	return u.SubscriptionType == PlanPremium && u.SubscriptionStatus == SubscriptionActive
}

// CanGenerateReport returns true if the user has report quota remaining
func (u *User) CanGenerateReport() bool {
	return u.ReportsUsed < u.ReportsLimit
}

// Role constants
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Status constants
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// Subscription plan constants
const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

// Subscription status constants
const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

// Report quota constants
const (
	FreeReportsLimit    = 2
	PremiumReportsLimit = 999999
)

// UserResponse is the JSON response format for users
type UserResponse struct {
	ID                 uint      `json:"id"`
	Email              string    `json:"email"`
	DisplayName        string    `json:"display_name"`
	PhotoURL           *string   `json:"photo_url"`
	Role               string    `json:"role"`
	Status             string    `json:"status"`
	SubscriptionType   string    `json:"subscription_type"`
	SubscriptionStatus string    `json:"subscription_status"`
	ReportsUsed        int       `json:"reports_used"`
	ReportsLimit       int       `json:"reports_limit"`
	CreatedAt          time.Time `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		DisplayName:        u.DisplayName,
		PhotoURL:           u.PhotoURL,
		Role:               u.Role,
		Status:             u.Status,
		SubscriptionType:   u.SubscriptionType,
		SubscriptionStatus: u.SubscriptionStatus,
		ReportsUsed:        u.ReportsUsed,
		ReportsLimit:       u.ReportsLimit,
		CreatedAt:          u.CreatedAt,
	}
}
