package config

import (
    "os"
    "strconv"
    "time"
)

type Config struct {
    Port       string
    DBHost     string
    DBPort     string
    DBUser     string
    DBPassword string
    DBName     string
    DBSSLMode  string

    JWTSecret    string
    JWTExpiresIn string // minutes

    AdminEmail    string
    AdminPassword string
    AdminName     string

    // Registration codes. The role of a new account is fixed by the code
    // supplied at sign-up: AdminCode grants admin, StudentCode (when set)
    // is required for student accounts.
    AdminCode   string
    StudentCode string

    // Gemini / AI gateway. Empty APIKey disables the feature entirely.
    GeminiAPIKey  string
    GeminiModel   string
    GeminiBaseURL string

    // Quiz attempt gate: "default" (only the built-in set is one-attempt),
    // "any" (any stored result gates), or "off".
    QuizAttemptGate string

    // Window size for the initial message fetch.
    MessageWindow string

    // Optional Redis-backed send throttle. Empty addr disables it.
    RedisAddr          string
    RedisPassword      string
    SendLimitPerMinute string
}

func Load() *Config {
    return &Config{
        Port:       getenv("PORT", "8080"),
        DBHost:     getenv("DB_HOST", "localhost"),
        DBPort:     getenv("DB_PORT", "5432"),
        DBUser:     getenv("DB_USER", "postgres"),
        DBPassword: getenv("DB_PASSWORD", "postgres"),
        DBName:     getenv("DB_NAME", "classroom_db"),
        DBSSLMode:  getenv("DB_SSLMODE", "disable"),

        JWTSecret:    getenv("JWT_SECRET", "supersecret_change_me"),
        JWTExpiresIn: getenv("JWT_EXPIRES_IN", "1440"),

        AdminEmail:    getenv("ADMIN_EMAIL", "admin@example.com"),
        AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
        AdminName:     getenv("ADMIN_NAME", "Professeur"),

        AdminCode:   getenv("ADMIN_CODE", "ADMIN-G5-MASTER"),
        StudentCode: getenv("STUDENT_CODE", ""),

        GeminiAPIKey:  getenv("GEMINI_API_KEY", ""),
        GeminiModel:   getenv("GEMINI_MODEL", "gemini-3-flash-preview"),
        GeminiBaseURL: getenv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),

        QuizAttemptGate: getenv("QUIZ_ATTEMPT_GATE", "default"),

        MessageWindow: getenv("MESSAGE_WINDOW", "100"),

        RedisAddr:          getenv("REDIS_ADDR", ""),
        RedisPassword:      getenv("REDIS_PASSWORD", ""),
        SendLimitPerMinute: getenv("SEND_LIMIT_PER_MINUTE", "30"),
    }
}

func getenv(key, fallback string) string {
    v := os.Getenv(key)
    if v == "" {
        return fallback
    }
    return v
}

// ParseMinutes parses a minute count, falling back when unset or invalid.
func ParseMinutes(s string, fallback time.Duration) time.Duration {
    d, err := time.ParseDuration(s + "m")
    if err != nil || d <= 0 {
        return fallback
    }
    return d
}

// ParseInt parses a positive integer, falling back when unset or invalid.
func ParseInt(s string, fallback int) int {
    n, err := strconv.Atoi(s)
    if err != nil || n <= 0 {
        return fallback
    }
    return n
}
