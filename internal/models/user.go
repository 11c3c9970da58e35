package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
)

const (
    RoleStudent = "student"
    RoleAdmin   = "admin"
)

type User struct {
    ID        string `gorm:"type:uuid;primaryKey" json:"id"`
    Email     string `gorm:"uniqueIndex" json:"email"`
    Name      string `json:"name"`
    Password  string `json:"-"`
    Role      string `json:"role"`
    CreatedAt time.Time `json:"created_at"`
    UpdatedAt time.Time `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
    if u.ID == "" {
        u.ID = uuid.NewString()
    }
    return nil
}
