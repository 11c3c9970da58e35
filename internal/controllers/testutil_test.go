package controllers_test

import (
    "bytes"
    "encoding/json"
    "fmt"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/gin-gonic/gin"
    "github.com/stretchr/testify/require"
    "gorm.io/gorm"

    "github.com/zaqqye/classroom_backend/internal/config"
    "github.com/zaqqye/classroom_backend/internal/database"
    "github.com/zaqqye/classroom_backend/internal/routes"
    "github.com/zaqqye/classroom_backend/internal/ws"
)

const adminCode = "ADMIN-TEST-CODE"

type env struct {
    srv *httptest.Server
    db  *gorm.DB
    cfg *config.Config
}

func testConfig() *config.Config {
    return &config.Config{
        JWTSecret:       "test-secret",
        JWTExpiresIn:    "60",
        AdminCode:       adminCode,
        QuizAttemptGate: "default",
        MessageWindow:   "100",
        GeminiModel:     "test-model",
    }
}

func newEnv(t *testing.T, cfg *config.Config) *env {
    t.Helper()
    gin.SetMode(gin.TestMode)

    db, err := database.OpenTest()
    require.NoError(t, err)

    hub := ws.NewHub()
    go hub.Run()

    r := gin.New()
    routes.Register(r, db, cfg, hub)

    srv := httptest.NewServer(r)
    t.Cleanup(srv.Close)

    return &env{srv: srv, db: db, cfg: cfg}
}

// restart rebuilds the router on the same database, discarding all
// in-memory state (quiz sessions, hub clients) like a process restart.
func (e *env) restart(t *testing.T) *env {
    t.Helper()
    hub := ws.NewHub()
    go hub.Run()

    r := gin.New()
    routes.Register(r, e.db, e.cfg, hub)

    srv := httptest.NewServer(r)
    t.Cleanup(srv.Close)

    return &env{srv: srv, db: e.db, cfg: e.cfg}
}

// request sends a JSON request and decodes the JSON response body.
func (e *env) request(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
    t.Helper()

    var payload []byte
    if body != nil {
        var err error
        payload, err = json.Marshal(body)
        require.NoError(t, err)
    }

    req, err := http.NewRequest(method, e.srv.URL+path, bytes.NewReader(payload))
    require.NoError(t, err)
    req.Header.Set("Content-Type", "application/json")
    if token != "" {
        req.Header.Set("Authorization", "Bearer "+token)
    }

    resp, err := e.srv.Client().Do(req)
    require.NoError(t, err)
    defer resp.Body.Close()

    out := map[string]interface{}{}
    _ = json.NewDecoder(resp.Body).Decode(&out)
    return resp.StatusCode, out
}

// registerUser creates an account and returns its token and id.
func (e *env) registerUser(t *testing.T, email, name, code string) (token, id string) {
    t.Helper()
    status, body := e.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
        "email":    email,
        "password": "password123",
        "name":     name,
        "code":     code,
    })
    require.Equal(t, http.StatusCreated, status, "register failed: %v", body)

    token, _ = body["token"].(string)
    require.NotEmpty(t, token)
    user := body["user"].(map[string]interface{})
    return token, user["id"].(string)
}

func (e *env) login(t *testing.T, email, password string) (int, map[string]interface{}) {
    t.Helper()
    return e.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
        "email":    email,
        "password": password,
    })
}

func uniqueEmail(prefix string) string {
    return fmt.Sprintf("%s@example.com", prefix)
}
