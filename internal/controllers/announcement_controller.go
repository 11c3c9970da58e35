package controllers

import (
    "errors"
    "net/http"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/zaqqye/classroom_backend/internal/models"
    "github.com/zaqqye/classroom_backend/internal/ws"
)

type AnnouncementController struct {
    DB  *gorm.DB
    Hub *ws.Hub
}

type postAnnouncementRequest struct {
    Title    string `json:"title" binding:"required"`
    Content  string `json:"content" binding:"required"`
    Priority string `json:"priority"`
}

// List returns all announcements, newest first.
func (a *AnnouncementController) List(c *gin.Context) {
    var items []models.Announcement
    if err := a.DB.Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{"announcements": items})
}

func (a *AnnouncementController) Create(c *gin.Context) {
    var req postAnnouncementRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    priority := req.Priority
    if priority == "" {
        priority = models.PriorityNormal
    }
    if priority != models.PriorityNormal && priority != models.PriorityUrgent {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
        return
    }

    item := models.Announcement{
        Title:    req.Title,
        Content:  req.Content,
        Priority: priority,
    }
    if err := a.DB.Create(&item).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }

    // Coarse event: subscribers reload the whole list.
    a.Hub.Broadcast(ws.Event{Type: ws.EventAnnouncementsChange})

    c.JSON(http.StatusCreated, gin.H{"announcement": item})
}

func (a *AnnouncementController) Delete(c *gin.Context) {
    id := c.Param("id")

    var item models.Announcement
    if err := a.DB.Where("id = ?", id).First(&item).Error; err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
            return
        }
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    if err := a.DB.Delete(&item).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }

    a.Hub.Broadcast(ws.Event{Type: ws.EventAnnouncementsChange})

    c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
