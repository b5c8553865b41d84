package model

import "time"

// SessionModel mirrors the 'device_sessions' table. Each row holds one encoded session blob.
type SessionModel struct {
	Key       string    `gorm:"type:varchar(128);primaryKey"`
	Payload   []byte    `gorm:"type:bytea;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "device_sessions"
}
