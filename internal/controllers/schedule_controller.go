package controllers

import (
    "errors"
    "net/http"
    "sort"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/zaqqye/classroom_backend/internal/models"
    "github.com/zaqqye/classroom_backend/internal/ws"
)

type ScheduleController struct {
    DB  *gorm.DB
    Hub *ws.Hub
}

type addScheduleRequest struct {
    Day     string `json:"day" binding:"required"`
    Time    string `json:"time" binding:"required"`
    Subject string `json:"subject" binding:"required"`
    Room    string `json:"room" binding:"required"`
}

type scheduleDay struct {
    Day   string                `json:"day"`
    Items []models.ScheduleItem `json:"items"`
}

// List returns the timetable grouped in fixed day order, each day sorted
// by the time-range string ascending.
func (s *ScheduleController) List(c *gin.Context) {
    var items []models.ScheduleItem
    if err := s.DB.Find(&items).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }

    grouped := make([]scheduleDay, 0, len(models.Days))
    for _, day := range models.Days {
        dayItems := []models.ScheduleItem{}
        for _, it := range items {
            if it.Day == day {
                dayItems = append(dayItems, it)
            }
        }
        sort.Slice(dayItems, func(i, j int) bool {
            return dayItems[i].Time < dayItems[j].Time
        })
        grouped = append(grouped, scheduleDay{Day: day, Items: dayItems})
    }
    c.JSON(http.StatusOK, gin.H{"schedule": grouped})
}

func (s *ScheduleController) Create(c *gin.Context) {
    var req addScheduleRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    if !models.IsValidDay(req.Day) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day"})
        return
    }

    item := models.ScheduleItem{
        Day:     req.Day,
        Time:    req.Time,
        Subject: req.Subject,
        Room:    req.Room,
    }
    if err := s.DB.Create(&item).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }

    s.Hub.Broadcast(ws.Event{Type: ws.EventScheduleChange})

    c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (s *ScheduleController) Delete(c *gin.Context) {
    id := c.Param("id")

    var item models.ScheduleItem
    if err := s.DB.Where("id = ?", id).First(&item).Error; err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            c.JSON(http.StatusNotFound, gin.H{"error": "schedule item not found"})
            return
        }
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    if err := s.DB.Delete(&item).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }

    s.Hub.Broadcast(ws.Event{Type: ws.EventScheduleChange})

    c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
