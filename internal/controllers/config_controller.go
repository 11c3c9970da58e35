package controllers

import (
    "net/http"

    "github.com/gin-gonic/gin"

    "github.com/zaqqye/classroom_backend/internal/config"
)

type ConfigController struct {
    Cfg       *config.Config
    AIEnabled bool
}

// Get exposes the non-secret configuration a client needs before login.
func (cc *ConfigController) Get(c *gin.Context) {
    c.JSON(http.StatusOK, gin.H{
        "ai_enabled":            cc.AIEnabled,
        "student_code_required": cc.Cfg.StudentCode != "",
        "quiz_attempt_gate":     cc.Cfg.QuizAttemptGate,
    })
}
