package db_models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Session is a server-side login session. The cookie only carries SID.
type Session struct {
	SID    string         `gorm:"column:sid;type:varchar;primaryKey"`
	Sess   datatypes.JSON `gorm:"column:sess;type:jsonb;not null"`
	Expire time.Time      `gorm:"column:expire;index:IDX_session_expire;not null"`
}

func (Session) TableName() string { return "sessions" }

type SessionData struct {
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Session) Data() (SessionData, error) {
	var data SessionData
	if len(s.Sess) == 0 {
		return data, nil
	}
	err := json.Unmarshal(s.Sess, &data)
	return data, err
}

func (s *Session) SetData(data SessionData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	s.Sess = datatypes.JSON(raw)
	return nil
}
