package model

import "time"

// Question is a poll question presented to every user.
type Question struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	Text    string    `json:"question_text" gorm:"size:255;not null"`
	PubDate time.Time `json:"pub_date"`

	// Relations
	Choices []Choice `json:"choices,omitempty" gorm:"foreignKey:QuestionID"`
}

// Choice is a selectable poll answer with a vote tally.
// Votes only ever grows; nothing in the normal flow decrements it.
type Choice struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID uint   `json:"question" gorm:"not null;index"`
	Text       string `json:"choice_text" gorm:"size:100;not null"`
	Votes      int    `json:"votes" gorm:"not null;default:0"`
}

// Opinion is free-text feedback submitted alongside a poll vote.
type Opinion struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	Text    string    `json:"opinion_text" gorm:"size:255"`
	PubDate time.Time `json:"pub_date"`
	UserID  uint      `json:"author" gorm:"not null;index"`
}

// ErrorOpinion is a bug report submitted alongside a poll vote.
type ErrorOpinion struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	Text    string    `json:"error_text" gorm:"size:255"`
	PubDate time.Time `json:"pub_date"`
	UserID  uint      `json:"author" gorm:"not null;index"`
}
