package model

import "time"

// User represents a registered account in the system.
//
// Username is a display attribute only; all ownership references use the
// numeric ID so renaming a user never touches task rows.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;size:40;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Email        string     `json:"email" gorm:"uniqueIndex;size:100;not null"`
	TasksPerPage int        `json:"tasks_per_page"` // 0 means "use the server default"
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Tasks    []Task    `json:"tasks,omitempty" gorm:"foreignKey:UserID"`
	Opinions []Opinion `json:"opinions,omitempty" gorm:"foreignKey:UserID"`
}
