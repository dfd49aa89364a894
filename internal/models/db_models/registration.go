package db_models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusExpired   PaymentStatus = "expired"
)

type RetreatRegistration struct {
	ID              int64         `gorm:"primaryKey" json:"id"`
	UserID          string        `gorm:"type:text;index;not null" json:"userId"`
	RetreatName     string        `gorm:"type:text;not null" json:"retreatName"`
	RetreatDate     string        `gorm:"type:text;not null" json:"retreatDate"`
	PaymentStatus   PaymentStatus `gorm:"type:text;not null;default:pending" json:"paymentStatus"`
	PaymentAmount   *string       `gorm:"type:text" json:"paymentAmount"`
	StripeSessionID *string       `gorm:"type:text" json:"stripeSessionId"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"createdAt"`
}

func (RetreatRegistration) TableName() string { return "retreat_registrations" }
