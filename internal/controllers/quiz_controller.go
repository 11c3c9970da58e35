package controllers

import (
    "log"
    "net/http"

    "github.com/gin-gonic/gin"
    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/zaqqye/classroom_backend/internal/ai"
    "github.com/zaqqye/classroom_backend/internal/models"
    "github.com/zaqqye/classroom_backend/internal/quiz"
)

type QuizController struct {
    DB         *gorm.DB
    Store      *quiz.Store
    AI         *ai.Client
    GatePolicy string // quiz.GateDefault | quiz.GateAny | quiz.GateOff
}

type selectOptionRequest struct {
    Option string `json:"option" binding:"required"`
}

type generateQuizRequest struct {
    Context   string `json:"context" binding:"required"`
    Objective string `json:"objective"`
}

// Get returns the current attempt view, creating a default-set session on
// first access. A stored result matching the gate policy pre-empts the
// session and the view starts directly in Result.
func (q *QuizController) Get(c *gin.Context) {
    user := currentUser(c)
    sess := q.sessionFor(user.ID)
    q.respond(c, http.StatusOK, user, sess.Snapshot())
}

// Select records an answer. Outside Answering, or when the attempt is
// gated, it is a no-op and the unchanged view comes back.
func (q *QuizController) Select(c *gin.Context) {
    var req selectOptionRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    user := currentUser(c)
    sess := q.sessionFor(user.ID)
    if q.gatedResult(user.ID, sess.Snapshot().SetID) == nil {
        sess.SelectOption(req.Option)
    }
    q.respond(c, http.StatusOK, user, sess.Snapshot())
}

// Advance moves to the next question, or finishes the attempt and persists
// the score. A persist failure is logged and the result still shows; the
// store stays authoritative for reconnecting clients either way.
func (q *QuizController) Advance(c *gin.Context) {
    user := currentUser(c)
    sess := q.sessionFor(user.ID)

    if q.gatedResult(user.ID, sess.Snapshot().SetID) != nil {
        q.respond(c, http.StatusOK, user, sess.Snapshot())
        return
    }

    // Advance grants done exactly once per attempt, so two racing requests
    // on the final question persist a single result.
    done, ok := sess.Advance()
    snap := sess.Snapshot()
    if ok && done {
        result := models.QuizResult{
            UserID: user.ID,
            Score:  snap.Score,
            Total:  len(snap.Questions),
            SetID:  snap.SetID,
        }
        if err := q.DB.Create(&result).Error; err != nil {
            log.Printf("quiz: failed to persist result for %s: %v", user.ID, err)
        }
    }
    q.respond(c, http.StatusOK, user, snap)
}

// Reset starts a fresh attempt on the default set. Under an active gate a
// stored default-set result immediately pre-empts the new session again.
func (q *QuizController) Reset(c *gin.Context) {
    user := currentUser(c)
    sess := quiz.NewSession(quiz.DefaultSetID, quiz.DefaultQuestions())
    q.Store.Put(user.ID, sess)
    q.respond(c, http.StatusOK, user, sess.Snapshot())
}

// Generate swaps in a freshly generated practice set. Practice sets get a
// unique set id, so the default-set gate never applies to them.
func (q *QuizController) Generate(c *gin.Context) {
    var req generateQuizRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    if !q.AI.Enabled() {
        c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai generation not configured"})
        return
    }

    objective := req.Objective
    if objective == "" {
        objective = "Vocabulaire"
    }
    questions := q.AI.GenerateQuiz(c.Request.Context(), req.Context, objective)
    if len(questions) == 0 {
        c.JSON(http.StatusBadGateway, gin.H{"error": "generation failed"})
        return
    }

    user := currentUser(c)
    sess := quiz.NewSession("ai_"+uuid.NewString(), quiz.Normalize(questions))
    q.Store.Put(user.ID, sess)
    q.respond(c, http.StatusOK, user, sess.Snapshot())
}

func (q *QuizController) sessionFor(userID string) *quiz.Session {
    sess := q.Store.Get(userID)
    if sess == nil {
        sess = quiz.NewSession(quiz.DefaultSetID, quiz.DefaultQuestions())
        q.Store.Put(userID, sess)
    }
    return sess
}

// gatedResult returns the stored result that pre-empts an attempt on setID
// under the configured policy, or nil when the attempt may proceed.
func (q *QuizController) gatedResult(userID, setID string) *models.QuizResult {
    var where *gorm.DB
    switch q.GatePolicy {
    case quiz.GateAny:
        where = q.DB.Where("user_id = ?", userID)
    case quiz.GateOff:
        return nil
    default:
        if setID != quiz.DefaultSetID {
            return nil
        }
        where = q.DB.Where("user_id = ? AND set_id = ?", userID, quiz.DefaultSetID)
    }

    var result models.QuizResult
    if err := where.Order("created_at DESC").First(&result).Error; err != nil {
        return nil
    }
    return &result
}

func (q *QuizController) respond(c *gin.Context, status int, user models.User, sess quiz.Snapshot) {
    if stored := q.gatedResult(user.ID, sess.SetID); stored != nil {
        c.JSON(status, gin.H{
            "state":  quiz.StateResult,
            "set_id": stored.SetID,
            "gated":  true,
            "result": gin.H{
                "score":      stored.Score,
                "total":      stored.Total,
                "created_at": stored.CreatedAt,
            },
        })
        return
    }

    view := gin.H{
        "state":  sess.State,
        "set_id": sess.SetID,
        "gated":  false,
        "index":  sess.Index,
        "total":  len(sess.Questions),
        "score":  sess.Score,
    }
    switch sess.State {
    case quiz.StateResult:
        view["result"] = gin.H{
            "score": sess.Score,
            "total": len(sess.Questions),
        }
    case quiz.StateAnswered:
        question := sess.Current()
        view["selected"] = sess.Selected
        view["correct"] = sess.Selected == question.CorrectAnswer
        view["question"] = gin.H{
            "id":            question.ID,
            "question":      question.Question,
            "options":       question.Options,
            "correctAnswer": question.CorrectAnswer,
            "explanation":   question.Explanation,
        }
    default:
        // The correct answer stays server-side while answering.
        question := sess.Current()
        view["question"] = gin.H{
            "id":       question.ID,
            "question": question.Question,
            "options":  question.Options,
        }
    }
    c.JSON(status, view)
}

func currentUser(c *gin.Context) models.User {
    uVal, _ := c.Get("user")
    return uVal.(models.User)
}
