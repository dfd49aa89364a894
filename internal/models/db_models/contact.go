package db_models

import "time"

type ContactSubmission struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Email     string    `gorm:"type:text;not null" json:"email"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (ContactSubmission) TableName() string { return "contact_submissions" }

type NewsletterSubscription struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (NewsletterSubscription) TableName() string { return "newsletter_subscriptions" }
