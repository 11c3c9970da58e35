package client_test

import (
    "context"
    "fmt"
    "net/http/httptest"
    "testing"

    "github.com/gin-gonic/gin"
    "github.com/stretchr/testify/require"
    "gorm.io/gorm"

    "github.com/zaqqye/classroom_backend/internal/client"
    "github.com/zaqqye/classroom_backend/internal/config"
    "github.com/zaqqye/classroom_backend/internal/database"
    "github.com/zaqqye/classroom_backend/internal/routes"
    "github.com/zaqqye/classroom_backend/internal/ws"
)

type serverEnv struct {
    srv *httptest.Server
    db  *gorm.DB
}

func newServer(t *testing.T) *serverEnv {
    t.Helper()
    gin.SetMode(gin.TestMode)

    db, err := database.OpenTest()
    require.NoError(t, err)

    hub := ws.NewHub()
    go hub.Run()

    cfg := &config.Config{
        JWTSecret:       "test-secret",
        JWTExpiresIn:    "60",
        AdminCode:       "ADMIN-TEST-CODE",
        QuizAttemptGate: "default",
        MessageWindow:   "100",
        GeminiModel:     "test-model",
    }

    r := gin.New()
    routes.Register(r, db, cfg, hub)

    srv := httptest.NewServer(r)
    t.Cleanup(srv.Close)

    return &serverEnv{srv: srv, db: db}
}

var userSeq int

func registerClient(t *testing.T, e *serverEnv) *client.Client {
    t.Helper()
    c := client.New(e.srv.URL, client.NewMemoryTokenStore())
    userSeq++
    _, err := c.Register(context.Background(),
        fmt.Sprintf("client%d@example.com", userSeq), "password123",
        fmt.Sprintf("Client %d", userSeq), "")
    require.NoError(t, err)
    return c
}
