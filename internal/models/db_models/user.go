package db_models

import (
	"strings"
	"time"
)

type User struct {
	BaseModel
	Email            string  `gorm:"type:varchar;uniqueIndex;not null"`
	Password         string  `gorm:"type:varchar;not null"`
	FirstName        *string `gorm:"type:varchar"`
	LastName         *string `gorm:"type:varchar"`
	ProfileImageURL  *string `gorm:"column:profile_image_url;type:varchar"`
	ResetToken       *string `gorm:"type:varchar"`
	ResetTokenExpiry *time.Time
}

func (User) TableName() string { return "users" }

// DisplayName is what other members see next to posts: the full name when
// known, otherwise the local part of the email address.
func (u *User) DisplayName() string {
	var parts []string
	if u.FirstName != nil && strings.TrimSpace(*u.FirstName) != "" {
		parts = append(parts, strings.TrimSpace(*u.FirstName))
	}
	if u.LastName != nil && strings.TrimSpace(*u.LastName) != "" {
		parts = append(parts, strings.TrimSpace(*u.LastName))
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if at := strings.IndexByte(u.Email, '@'); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}
