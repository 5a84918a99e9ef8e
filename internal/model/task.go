package model

import "time"

// Task represents a single to-do item owned by one user.
//
// PubDate is kept as a string column for compatibility with the legacy
// schema; it may be empty when no date was supplied. Listings order by it
// descending, which sorts correctly for the "YYYY-MM-DD HH:MM" form.
type Task struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"task" gorm:"size:255;not null"`
	Executed  bool      `json:"executed" gorm:"not null;default:false"`
	PubDate   string    `json:"data_pub" gorm:"size:40"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
