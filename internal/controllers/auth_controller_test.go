package controllers_test

import (
    "net/http"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestRegisterRoleFromCode(t *testing.T) {
    e := newEnv(t, testConfig())

    tests := []struct {
        name     string
        code     string
        wantRole string
    }{
        {"admin code grants admin", adminCode, "admin"},
        {"no code defaults to student", "", "student"},
        {"unknown code defaults to student", "whatever", "student"},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            status, body := e.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
                "email":    uniqueEmail("role-" + tt.wantRole + tt.code),
                "password": "password123",
                "name":     "Test",
                "code":     tt.code,
            })
            require.Equal(t, http.StatusCreated, status)
            user := body["user"].(map[string]interface{})
            assert.Equal(t, tt.wantRole, user["role"])
        })
    }
}

func TestRegisterRequiresStudentCodeWhenConfigured(t *testing.T) {
    cfg := testConfig()
    cfg.StudentCode = "G5L1-2025-CHINE-X"
    e := newEnv(t, cfg)

    status, body := e.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
        "email":    uniqueEmail("nocode"),
        "password": "password123",
        "name":     "Test",
        "code":     "wrong",
    })
    assert.Equal(t, http.StatusBadRequest, status)
    assert.Equal(t, "invalid registration code", body["error"])

    status, resp := e.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
        "email":    uniqueEmail("goodcode"),
        "password": "password123",
        "name":     "Test",
        "code":     "G5L1-2025-CHINE-X",
    })
    require.Equal(t, http.StatusCreated, status)
    user := resp["user"].(map[string]interface{})
    assert.Equal(t, "student", user["role"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
    e := newEnv(t, testConfig())
    email := uniqueEmail("dup")
    e.registerUser(t, email, "First", "")

    status, body := e.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
        "email":    email,
        "password": "password123",
        "name":     "Second",
    })
    assert.Equal(t, http.StatusBadRequest, status)
    assert.Equal(t, "email already in use", body["error"])
}

func TestLogin(t *testing.T) {
    e := newEnv(t, testConfig())
    email := uniqueEmail("login")
    e.registerUser(t, email, "Login", "")

    status, body := e.login(t, email, "password123")
    require.Equal(t, http.StatusOK, status)
    assert.NotEmpty(t, body["token"])

    status, body = e.login(t, email, "wrongpass")
    assert.Equal(t, http.StatusUnauthorized, status)
    assert.Equal(t, "invalid credentials", body["error"])

    status, _ = e.login(t, uniqueEmail("ghost"), "password123")
    assert.Equal(t, http.StatusUnauthorized, status)
}

func TestMeResolvesSession(t *testing.T) {
    e := newEnv(t, testConfig())
    email := uniqueEmail("me")
    token, id := e.registerUser(t, email, "Me", "")

    status, body := e.request(t, http.MethodGet, "/api/v1/auth/me", token, nil)
    require.Equal(t, http.StatusOK, status)
    user := body["user"].(map[string]interface{})
    assert.Equal(t, id, user["id"])
    assert.Equal(t, email, user["email"])
}

func TestMeRejectsBadToken(t *testing.T) {
    e := newEnv(t, testConfig())

    status, _ := e.request(t, http.MethodGet, "/api/v1/auth/me", "", nil)
    assert.Equal(t, http.StatusUnauthorized, status)

    status, _ = e.request(t, http.MethodGet, "/api/v1/auth/me", "not-a-jwt", nil)
    assert.Equal(t, http.StatusUnauthorized, status)
}

func TestMeRejectsDeletedUser(t *testing.T) {
    e := newEnv(t, testConfig())
    token, id := e.registerUser(t, uniqueEmail("deleted"), "Gone", "")

    require.NoError(t, e.db.Exec("DELETE FROM users WHERE id = ?", id).Error)

    status, body := e.request(t, http.MethodGet, "/api/v1/auth/me", token, nil)
    assert.Equal(t, http.StatusUnauthorized, status)
    assert.Equal(t, "user not found", body["error"])
}
