package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
)

// Message is append-only chat history. Author name and role are denormalized
// at write time so the list endpoint needs no join.
type Message struct {
    ID         string `gorm:"type:uuid;primaryKey" json:"id"`
    UserID     string `gorm:"index" json:"user_id"`
    AuthorName string `json:"author_name"`
    AuthorRole string `json:"author_role"`
    Content    string `json:"content"`
    Mandarin   bool   `json:"is_mandarin"`
    Pinyin     string `json:"pinyin,omitempty"`
    CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
    if m.ID == "" {
        m.ID = uuid.NewString()
    }
    return nil
}
