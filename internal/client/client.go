package client

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "time"

    "github.com/zaqqye/classroom_backend/internal/models"
)

// Client is the portal API client used by front-ends and tests. It holds
// the bearer token for the current session; all entity state lives in the
// live list mirrors, not here.
type Client struct {
    BaseURL string
    Tokens  TokenStore

    // BootstrapTimeout bounds the session-resolution call at startup.
    BootstrapTimeout time.Duration

    HTTP  *http.Client
    token string
}

func New(baseURL string, tokens TokenStore) *Client {
    if tokens == nil {
        tokens = NewMemoryTokenStore()
    }
    return &Client{
        BaseURL:          baseURL,
        Tokens:           tokens,
        BootstrapTimeout: 10 * time.Second,
        HTTP:             &http.Client{Timeout: 30 * time.Second},
    }
}

// APIError carries the server's error body alongside the status code.
type APIError struct {
    Status  int
    Message string
}

func (e *APIError) Error() string {
    return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Token returns the bearer token of the current session, if any.
func (c *Client) Token() string {
    return c.token
}

type authResponse struct {
    Token string       `json:"token"`
    User  *models.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
    var resp authResponse
    err := c.do(ctx, http.MethodPost, "/api/v1/auth/login",
        map[string]string{"email": email, "password": password}, &resp)
    if err != nil {
        return nil, err
    }
    c.setToken(resp.Token)
    return resp.User, nil
}

func (c *Client) Register(ctx context.Context, email, password, name, code string) (*models.User, error) {
    var resp authResponse
    err := c.do(ctx, http.MethodPost, "/api/v1/auth/register",
        map[string]string{"email": email, "password": password, "name": name, "code": code}, &resp)
    if err != nil {
        return nil, err
    }
    c.setToken(resp.Token)
    return resp.User, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
    var resp struct {
        User *models.User `json:"user"`
    }
    if err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &resp); err != nil {
        return nil, err
    }
    return resp.User, nil
}

// Logout acknowledges server-side, then drops the token. In-memory entity
// state is owned by the mirrors; callers discard those on logout too.
func (c *Client) Logout(ctx context.Context) {
    _ = c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
    c.token = ""
    _ = c.Tokens.Clear()
}

func (c *Client) ListMessages(ctx context.Context) ([]models.Message, error) {
    var resp struct {
        Messages []models.Message `json:"messages"`
    }
    if err := c.do(ctx, http.MethodGet, "/api/v1/messages", nil, &resp); err != nil {
        return nil, err
    }
    return resp.Messages, nil
}

// SendMessage is fire-and-forget from the UI's perspective: the sent
// message reappears via the subscription path, not from this response.
func (c *Client) SendMessage(ctx context.Context, content, pinyin string, mandarin bool) error {
    return c.do(ctx, http.MethodPost, "/api/v1/messages", map[string]interface{}{
        "content":     content,
        "pinyin":      pinyin,
        "is_mandarin": mandarin,
    }, nil)
}

func (c *Client) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
    var resp struct {
        Announcements []models.Announcement `json:"announcements"`
    }
    if err := c.do(ctx, http.MethodGet, "/api/v1/announcements", nil, &resp); err != nil {
        return nil, err
    }
    return resp.Announcements, nil
}

// PostAnnouncement requires the admin role server-side.
func (c *Client) PostAnnouncement(ctx context.Context, title, content, priority string) error {
    return c.do(ctx, http.MethodPost, "/api/v1/announcements", map[string]string{
        "title":    title,
        "content":  content,
        "priority": priority,
    }, nil)
}

func (c *Client) DeleteAnnouncement(ctx context.Context, id string) error {
    return c.do(ctx, http.MethodDelete, "/api/v1/announcements/"+id, nil, nil)
}

func (c *Client) setToken(token string) {
    c.token = token
    _ = c.Tokens.Save(token)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
    var reader *bytes.Reader
    if body != nil {
        payload, err := json.Marshal(body)
        if err != nil {
            return err
        }
        reader = bytes.NewReader(payload)
    } else {
        reader = bytes.NewReader(nil)
    }

    req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
    if err != nil {
        return err
    }
    req.Header.Set("Content-Type", "application/json")
    if c.token != "" {
        req.Header.Set("Authorization", "Bearer "+c.token)
    }

    resp, err := c.HTTP.Do(req)
    if err != nil {
        return err
    }
    defer resp.Body.Close()

    if resp.StatusCode >= 400 {
        var e struct {
            Error string `json:"error"`
        }
        _ = json.NewDecoder(resp.Body).Decode(&e)
        return &APIError{Status: resp.StatusCode, Message: e.Error}
    }
    if out == nil {
        return nil
    }
    return json.NewDecoder(resp.Body).Decode(out)
}
