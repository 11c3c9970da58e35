package ai

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "time"

    "github.com/zaqqye/classroom_backend/internal/quiz"
)

// Client wraps the Gemini generateContent endpoint. Every failure path
// (missing key, transport error, bad status, unparseable body) degrades to
// a nil/empty return; callers treat that as "feature unavailable".
type Client struct {
    apiKey  string
    model   string
    baseURL string
    http    *http.Client
}

func NewClient(apiKey, model, baseURL string) *Client {
    return &Client{
        apiKey:  apiKey,
        model:   model,
        baseURL: baseURL,
        http:    &http.Client{Timeout: 30 * time.Second},
    }
}

func (c *Client) Enabled() bool {
    return c != nil && c.apiKey != ""
}

type Translation struct {
    Hanzi  string `json:"hanzi"`
    Pinyin string `json:"pinyin"`
}

// request/response shapes for generateContent.

type generateRequest struct {
    Contents         []content        `json:"contents"`
    GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
    Parts []part `json:"parts"`
}

type part struct {
    Text string `json:"text"`
}

type generationConfig struct {
    ResponseMimeType string          `json:"responseMimeType"`
    ResponseSchema   json.RawMessage `json:"responseSchema"`
}

type generateResponse struct {
    Candidates []struct {
        Content struct {
            Parts []struct {
                Text string `json:"text"`
            } `json:"parts"`
        } `json:"content"`
    } `json:"candidates"`
}

var translationSchema = json.RawMessage(`{
    "type": "OBJECT",
    "properties": {
        "hanzi": {"type": "STRING", "description": "The simplified Chinese characters"},
        "pinyin": {"type": "STRING", "description": "The Pinyin with tone marks"}
    },
    "required": ["hanzi", "pinyin"]
}`)

var quizSchema = json.RawMessage(`{
    "type": "ARRAY",
    "items": {
        "type": "OBJECT",
        "properties": {
            "question": {"type": "STRING"},
            "options": {"type": "ARRAY", "items": {"type": "STRING"}},
            "correctAnswer": {"type": "STRING"},
            "explanation": {"type": "STRING"}
        },
        "required": ["question", "options", "correctAnswer", "explanation"]
    }
}`)

// Translate renders free text as Hanzi plus Pinyin. Returns nil whenever
// nothing usable came back.
func (c *Client) Translate(ctx context.Context, text string) *Translation {
    if !c.Enabled() || text == "" {
        return nil
    }
    prompt := fmt.Sprintf(
        "Translate the following French or English text to Simplified Chinese (Hanzi) and provide the Pinyin.\nText: %q",
        text,
    )
    raw := c.generate(ctx, prompt, translationSchema)
    if raw == "" {
        return nil
    }
    var out Translation
    if err := json.Unmarshal([]byte(raw), &out); err != nil {
        log.Printf("ai: translation parse error: %v", err)
        return nil
    }
    if out.Hanzi == "" {
        return nil
    }
    return &out
}

// GenerateQuiz asks for five questions on a topic/objective pair. Returns
// an empty slice on any failure; the caller normalizes identifiers and
// option lists before use.
func (c *Client) GenerateQuiz(ctx context.Context, topic, objective string) []quiz.Question {
    if !c.Enabled() {
        return nil
    }
    prompt := fmt.Sprintf(
        "Tu es un professeur de Mandarin expert. Ton but est de générer un quiz de 5 questions à partir du texte fourni par l'utilisateur.\n\n"+
            "Contexte : %q\nObjectif pédagogique : %q\n\n"+
            "Si le texte n'a aucun rapport avec le chinois, adapte-le pour créer des exercices de mandarin (traduction, vocabulaire, grammaire). "+
            "Assure-toi que les options incorrectes sont plausibles.",
        topic, objective,
    )
    raw := c.generate(ctx, prompt, quizSchema)
    if raw == "" {
        return nil
    }
    var out []quiz.Question
    if err := json.Unmarshal([]byte(raw), &out); err != nil {
        log.Printf("ai: quiz parse error: %v", err)
        return nil
    }
    return out
}

// generate performs one schema-constrained call and returns the model text,
// or "" on any failure.
func (c *Client) generate(ctx context.Context, prompt string, schema json.RawMessage) string {
    reqBody := generateRequest{
        Contents: []content{{Parts: []part{{Text: prompt}}}},
        GenerationConfig: generationConfig{
            ResponseMimeType: "application/json",
            ResponseSchema:   schema,
        },
    }
    payload, err := json.Marshal(reqBody)
    if err != nil {
        log.Printf("ai: marshal error: %v", err)
        return ""
    }

    url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
    req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
    if err != nil {
        log.Printf("ai: request error: %v", err)
        return ""
    }
    req.Header.Set("Content-Type", "application/json")

    resp, err := c.http.Do(req)
    if err != nil {
        log.Printf("ai: transport error: %v", err)
        return ""
    }
    defer resp.Body.Close()

    if resp.StatusCode != http.StatusOK {
        log.Printf("ai: unexpected status %d", resp.StatusCode)
        return ""
    }

    var out generateResponse
    if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
        log.Printf("ai: decode error: %v", err)
        return ""
    }
    if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
        return ""
    }
    return out.Candidates[0].Content.Parts[0].Text
}
