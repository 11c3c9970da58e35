package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
)

// Days is the fixed display order for the timetable.
var Days = []string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi"}

func IsValidDay(day string) bool {
    for _, d := range Days {
        if d == day {
            return true
        }
    }
    return false
}

type ScheduleItem struct {
    ID        string `gorm:"type:uuid;primaryKey" json:"id"`
    Day       string `gorm:"index" json:"day"`
    Time      string `json:"time"` // "09:00 - 10:30"
    Subject   string `json:"subject"`
    Room      string `json:"room"`
    CreatedAt time.Time `json:"created_at"`
}

func (s *ScheduleItem) BeforeCreate(tx *gorm.DB) (err error) {
    if s.ID == "" {
        s.ID = uuid.NewString()
    }
    return nil
}
