package controllers

import (
    "errors"
    "net/http"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/golang-jwt/jwt/v5"
    "gorm.io/gorm"

    "github.com/zaqqye/classroom_backend/internal/middleware"
    "github.com/zaqqye/classroom_backend/internal/models"
    "github.com/zaqqye/classroom_backend/internal/utils"
)

type AuthController struct {
    DB        *gorm.DB
    JWTSecret string
    ExpiresIn time.Duration

    // Shared-secret registration codes; role is fixed at creation.
    AdminCode   string
    StudentCode string
}

type registerRequest struct {
    Email    string `json:"email" binding:"required,email"`
    Password string `json:"password" binding:"required,min=6"`
    Name     string `json:"name" binding:"required"`
    Code     string `json:"code"`
}

type loginRequest struct {
    Email    string `json:"email" binding:"required,email"`
    Password string `json:"password" binding:"required"`
}

func (a *AuthController) Register(c *gin.Context) {
    var req registerRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    role, ok := a.roleForCode(req.Code)
    if !ok {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration code"})
        return
    }

    var existing models.User
    err := a.DB.Where("email = ?", req.Email).First(&existing).Error
    if err == nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "email already in use"})
        return
    }
    if !errors.Is(err, gorm.ErrRecordNotFound) {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }

    pw, err := utils.HashPassword(req.Password)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
        return
    }

    user := models.User{
        Email:    req.Email,
        Name:     req.Name,
        Password: pw,
        Role:     role,
    }
    if err := a.DB.Create(&user).Error; err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    token, err := a.issueToken(user)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusCreated, gin.H{
        "token":      token,
        "token_type": "Bearer",
        "expires_in": int(a.ExpiresIn.Seconds()),
        "user":       user,
    })
}

func (a *AuthController) Login(c *gin.Context) {
    var req loginRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    var user models.User
    if err := a.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
        return
    }
    if !utils.CheckPassword(user.Password, req.Password) {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
        return
    }

    token, err := a.issueToken(user)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{
        "token":      token,
        "token_type": "Bearer",
        "expires_in": int(a.ExpiresIn.Seconds()),
        "user":       user,
    })
}

// Me resolves the bearer token to a full user record; this is the session
// resolution call the client races against its bootstrap timeout.
func (a *AuthController) Me(c *gin.Context) {
    uVal, _ := c.Get("user")
    user := uVal.(models.User)
    c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout is a stateless acknowledgment; the client discards its token and
// all mirrored state.
func (a *AuthController) Logout(c *gin.Context) {
    c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (a *AuthController) roleForCode(code string) (string, bool) {
    if a.AdminCode != "" && code == a.AdminCode {
        return models.RoleAdmin, true
    }
    if a.StudentCode == "" {
        return models.RoleStudent, true
    }
    if code == a.StudentCode {
        return models.RoleStudent, true
    }
    return "", false
}

func (a *AuthController) issueToken(user models.User) (string, error) {
    now := time.Now()
    claims := middleware.Claims{
        UserID: user.ID,
        Role:   user.Role,
        Email:  user.Email,
        RegisteredClaims: jwt.RegisteredClaims{
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(now.Add(a.ExpiresIn)),
        },
    }
    token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return token.SignedString([]byte(a.JWTSecret))
}
