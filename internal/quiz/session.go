package quiz

import "sync"

// Attempt states. A session walks Answering -> Answered per question and
// lands in Result after the final advance.
const (
    StateAnswering = "answering"
    StateAnswered  = "answered"
    StateResult    = "result"
)

// Gate policies for the one-attempt invariant.
const (
    GateDefault = "default" // only the built-in set is one-attempt
    GateAny     = "any"     // any stored result gates every set
    GateOff     = "off"
)

type Question struct {
    ID            string   `json:"id"`
    Question      string   `json:"question"`
    Options       []string `json:"options"`
    CorrectAnswer string   `json:"correctAnswer"`
    Explanation   string   `json:"explanation"`
}

// Session tracks one user's progress through a question set. Handlers for
// one user may run concurrently, so every transition holds the session lock
// and renders go through Snapshot.
type Session struct {
    mu        sync.Mutex
    SetID     string
    Questions []Question
    Index     int
    State     string
    Selected  string
    Score     int
}

// Snapshot is a point-in-time copy of a session, safe to read after the
// lock is released.
type Snapshot struct {
    SetID     string
    Questions []Question
    Index     int
    State     string
    Selected  string
    Score     int
}

// Current returns the question under the cursor, or nil in Result.
func (v Snapshot) Current() *Question {
    if v.State == StateResult || v.Index >= len(v.Questions) {
        return nil
    }
    return &v.Questions[v.Index]
}

func NewSession(setID string, questions []Question) *Session {
    return &Session{
        SetID:     setID,
        Questions: questions,
        State:     StateAnswering,
    }
}

// Snapshot returns a consistent copy of the session for rendering.
func (s *Session) Snapshot() Snapshot {
    s.mu.Lock()
    defer s.mu.Unlock()
    return Snapshot{
        SetID:     s.SetID,
        Questions: s.Questions,
        Index:     s.Index,
        State:     s.State,
        Selected:  s.Selected,
        Score:     s.Score,
    }
}

// Current returns the question under the cursor, or nil in Result.
func (s *Session) Current() *Question {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.current()
}

func (s *Session) current() *Question {
    if s.State == StateResult || s.Index >= len(s.Questions) {
        return nil
    }
    return &s.Questions[s.Index]
}

// SelectOption records an answer. Legal only while Answering; repeated
// calls without an intervening Advance are no-ops. The score increments
// iff the option exactly equals the correct answer (case-sensitive).
func (s *Session) SelectOption(option string) bool {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.State != StateAnswering {
        return false
    }
    q := s.current()
    if q == nil {
        return false
    }
    s.Selected = option
    s.State = StateAnswered
    if option == q.CorrectAnswer {
        s.Score++
    }
    return true
}

// Advance moves past an answered question. It returns done exactly once per
// attempt, at which point the session is in Result and the caller persists
// the score; a concurrent second call sees Result and gets ok=false.
func (s *Session) Advance() (done bool, ok bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.State != StateAnswered {
        return false, false
    }
    if s.Index < len(s.Questions)-1 {
        s.Index++
        s.Selected = ""
        s.State = StateAnswering
        return false, true
    }
    s.State = StateResult
    return true, true
}

// Reset starts the session over on a new question set, score zeroed.
func (s *Session) Reset(setID string, questions []Question) {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.SetID = setID
    s.Questions = questions
    s.Index = 0
    s.State = StateAnswering
    s.Selected = ""
    s.Score = 0
}
