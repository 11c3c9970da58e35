package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
)

const (
    PriorityNormal = "NORMAL"
    PriorityUrgent = "URGENT"
)

type Announcement struct {
    ID        string `gorm:"type:uuid;primaryKey" json:"id"`
    Title     string `json:"title"`
    Content   string `json:"content"`
    Priority  string `json:"priority"`
    CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) (err error) {
    if a.ID == "" {
        a.ID = uuid.NewString()
    }
    return nil
}
