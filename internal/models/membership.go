package models

import "time"

// Membership is a purchasable plan.
type Membership struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Name           string     `gorm:"uniqueIndex;not null" json:"name"`
	Description    string     `gorm:"type:text" json:"description"`
	Price          float64    `gorm:"not null" json:"price"`
	DurationMonths int        `gorm:"column:duration_months;not null" json:"durationMonths"`
	Features       StringList `gorm:"type:jsonb;default:'[]'" json:"features"`
	IsActive       bool       `gorm:"not null;default:true" json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type UserMembershipStatus string

const (
	UserMembershipPending   UserMembershipStatus = "pending"
	UserMembershipActive    UserMembershipStatus = "active"
	UserMembershipExpired   UserMembershipStatus = "expired"
	UserMembershipCancelled UserMembershipStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// UserMembership links a user to a plan for a bounded period. A user may
// hold several rows, including more than one active at a time.
type UserMembership struct {
	ID            uint                 `gorm:"primaryKey" json:"id"`
	UserID        uint                 `gorm:"not null;index:idx_user_membership_validity,priority:1" json:"userId"`
	User          *User                `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	MembershipID  uint                 `gorm:"not null;index" json:"membershipId"`
	Membership    *Membership          `gorm:"foreignKey:MembershipID" json:"membership,omitempty"`
	StartDate     time.Time            `gorm:"column:start_date;not null" json:"startDate"`
	EndDate       time.Time            `gorm:"column:end_date;not null;index:idx_user_membership_validity,priority:3" json:"endDate"`
	Status        UserMembershipStatus `gorm:"not null;default:'pending';index:idx_user_membership_validity,priority:2" json:"status"`
	PaymentStatus PaymentStatus        `gorm:"column:payment_status;not null;default:'pending'" json:"paymentStatus"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// IsValidAt reports whether the membership lets its owner book classes at t.
func (m *UserMembership) IsValidAt(t time.Time) bool {
	return m.Status == UserMembershipActive && !m.EndDate.Before(t)
}

// NewUserMembership starts a pending subscription to plan beginning at start.
func NewUserMembership(userID uint, plan *Membership, start time.Time) *UserMembership {
	return &UserMembership{
		UserID:        userID,
		MembershipID:  plan.ID,
		StartDate:     start,
		EndDate:       start.AddDate(0, plan.DurationMonths, 0),
		Status:        UserMembershipPending,
		PaymentStatus: PaymentPending,
	}
}
