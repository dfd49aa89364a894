package db_models

import "time"

// Discussion keeps a copy of the author's name and image as they were when
// the post was written.
type Discussion struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:text;not null" json:"userId"`
	UserName  string    `gorm:"type:text;not null" json:"userName"`
	UserImage *string   `gorm:"type:text" json:"userImage"`
	Title     string    `gorm:"type:text;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Discussion) TableName() string { return "discussions" }

type DiscussionReply struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	DiscussionID int64     `gorm:"index;not null" json:"discussionId"`
	UserID       string    `gorm:"type:text;not null" json:"userId"`
	UserName     string    `gorm:"type:text;not null" json:"userName"`
	UserImage    *string   `gorm:"type:text" json:"userImage"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (DiscussionReply) TableName() string { return "discussion_replies" }
