package models

import (
	"time"
)

// Url is one shortened URL. Its auto-increment ID is the integer form of the
// short id shown to users.
type Url struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	LongURL       string    `gorm:"not null"`
	Created       time.Time `gorm:"autoCreateTime"`
	LastAccessed  *time.Time
	AccessCounter int64 `gorm:"not null"`
}

func (Url) TableName() string {
	return "translation_table"
}

// BaseInfo holds the alphabet short ids are written in. The table has a single row.
type BaseInfo struct {
	BaseChars string `gorm:"not null"`
}

func (BaseInfo) TableName() string {
	return "base_info"
}
