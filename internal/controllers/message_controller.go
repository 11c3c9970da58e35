package controllers

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/zaqqye/classroom_backend/internal/models"
    "github.com/zaqqye/classroom_backend/internal/ws"
)

type MessageController struct {
    DB     *gorm.DB
    Hub    *ws.Hub
    Window int // max messages returned by List
}

type sendMessageRequest struct {
    Content  string `json:"content" binding:"required"`
    Mandarin bool   `json:"is_mandarin"`
    Pinyin   string `json:"pinyin"`
}

// List returns the most recent window, oldest first.
func (m *MessageController) List(c *gin.Context) {
    window := m.Window
    if window <= 0 {
        window = 100
    }

    var recent []models.Message
    if err := m.DB.Order("created_at DESC, id DESC").Limit(window).Find(&recent).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    // Flip to ascending for display.
    for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
        recent[i], recent[j] = recent[j], recent[i]
    }
    c.JSON(http.StatusOK, gin.H{"messages": recent})
}

func (m *MessageController) Send(c *gin.Context) {
    var req sendMessageRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    if strings.TrimSpace(req.Content) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "empty message"})
        return
    }

    uVal, _ := c.Get("user")
    user := uVal.(models.User)

    msg := models.Message{
        UserID:     user.ID,
        AuthorName: user.Name,
        AuthorRole: user.Role,
        Content:    req.Content,
        Mandarin:   req.Mandarin,
        Pinyin:     req.Pinyin,
    }
    if err := m.DB.Create(&msg).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }

    // Fine-grained event: subscribers append this record without refetching.
    m.Hub.Broadcast(ws.Event{Type: ws.EventMessageCreated, Message: &msg})

    c.JSON(http.StatusCreated, gin.H{"message": msg})
}
