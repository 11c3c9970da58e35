package routes

import (
    "time"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/zaqqye/classroom_backend/internal/ai"
    "github.com/zaqqye/classroom_backend/internal/config"
    "github.com/zaqqye/classroom_backend/internal/controllers"
    "github.com/zaqqye/classroom_backend/internal/middleware"
    "github.com/zaqqye/classroom_backend/internal/models"
    "github.com/zaqqye/classroom_backend/internal/quiz"
    "github.com/zaqqye/classroom_backend/internal/ws"
)

func Register(r *gin.Engine, db *gorm.DB, cfg *config.Config, hub *ws.Hub) {
    expires := config.ParseMinutes(cfg.JWTExpiresIn, 24*time.Hour)

    aiClient := ai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)

    authCtrl := &controllers.AuthController{
        DB:          db,
        JWTSecret:   cfg.JWTSecret,
        ExpiresIn:   expires,
        AdminCode:   cfg.AdminCode,
        StudentCode: cfg.StudentCode,
    }
    msgCtrl := &controllers.MessageController{
        DB:     db,
        Hub:    hub,
        Window: config.ParseInt(cfg.MessageWindow, 100),
    }
    annCtrl := &controllers.AnnouncementController{DB: db, Hub: hub}
    schedCtrl := &controllers.ScheduleController{DB: db, Hub: hub}
    quizCtrl := &controllers.QuizController{
        DB:         db,
        Store:      quiz.NewStore(),
        AI:         aiClient,
        GatePolicy: cfg.QuizAttemptGate,
    }
    aiCtrl := &controllers.AIController{AI: aiClient}
    cfgCtrl := &controllers.ConfigController{Cfg: cfg, AIEnabled: aiClient.Enabled()}

    sendLimiter := middleware.NewSendLimiter(
        cfg.RedisAddr, cfg.RedisPassword,
        config.ParseInt(cfg.SendLimitPerMinute, 30),
    )

    // Public
    auth := r.Group("/api/v1/auth")
    {
        auth.POST("/register", authCtrl.Register)
        auth.POST("/login", authCtrl.Login)
    }
    r.GET("/api/v1/config/public", cfgCtrl.Get)

    // Protected
    authMW := middleware.AuthMiddleware(db, middleware.AuthConfig{
        JWTSecret:    cfg.JWTSecret,
        JWTExpiresIn: expires,
    })
    api := r.Group("/api/v1", authMW)
    {
        api.GET("/auth/me", authCtrl.Me)
        api.POST("/auth/logout", authCtrl.Logout)

        api.GET("/messages", msgCtrl.List)
        api.POST("/messages", sendLimiter.Handler(), msgCtrl.Send)

        api.GET("/announcements", annCtrl.List)
        api.POST("/announcements", middleware.RequireRoles(models.RoleAdmin), annCtrl.Create)
        api.DELETE("/announcements/:id", middleware.RequireRoles(models.RoleAdmin), annCtrl.Delete)

        api.GET("/schedule", schedCtrl.List)
        api.POST("/schedule", middleware.RequireRoles(models.RoleAdmin), schedCtrl.Create)
        api.DELETE("/schedule/:id", middleware.RequireRoles(models.RoleAdmin), schedCtrl.Delete)

        api.GET("/quiz", quizCtrl.Get)
        api.POST("/quiz/select", quizCtrl.Select)
        api.POST("/quiz/advance", quizCtrl.Advance)
        api.POST("/quiz/reset", quizCtrl.Reset)
        api.POST("/quiz/generate", quizCtrl.Generate)

        api.POST("/ai/translate", aiCtrl.Translate)

        api.GET("/ws", ws.Handler(hub))
    }
}
