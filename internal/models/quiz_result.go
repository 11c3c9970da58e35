package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
)

// QuizResult is written once, at quiz completion, and never updated.
// SetID records which question set produced the score so the attempt gate
// can distinguish the built-in set from generated practice sets.
type QuizResult struct {
    ID        string `gorm:"type:uuid;primaryKey" json:"id"`
    UserID    string `gorm:"index" json:"user_id"`
    Score     int    `json:"score"`
    Total     int    `json:"total"`
    SetID     string `json:"set_id"`
    CreatedAt time.Time `json:"created_at"`
}

func (r *QuizResult) BeforeCreate(tx *gorm.DB) (err error) {
    if r.ID == "" {
        r.ID = uuid.NewString()
    }
    return nil
}
