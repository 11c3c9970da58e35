package controllers

import (
    "net/http"

    "github.com/gin-gonic/gin"

    "github.com/zaqqye/classroom_backend/internal/ai"
)

type AIController struct {
    AI *ai.Client
}

type translateRequest struct {
    Text string `json:"text" binding:"required"`
}

// Translate renders free text as Hanzi plus Pinyin. AI failure is a soft
// failure: the response is 200 with a null result, never a 5xx.
func (a *AIController) Translate(c *gin.Context) {
    var req translateRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    result := a.AI.Translate(c.Request.Context(), req.Text)
    c.JSON(http.StatusOK, gin.H{"result": result})
}
