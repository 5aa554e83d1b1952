package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"quiz_app_backend/internal/config"
	"quiz_app_backend/internal/middleware"
	"quiz_app_backend/internal/model"
	"quiz_app_backend/internal/repository"
	"quiz_app_backend/internal/service"
	"quiz_app_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestRouter builds the HTTP surface against an in-memory database, with
// the same auth and role gating as the production router. Redis is absent;
// the leaderboard cache degrades to a pass-through.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour

	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	responseRepo := repository.NewResponseRepository(db)
	cache := repository.NewLeaderboardCache(nil, time.Minute)

	userSvc := service.NewUserService(userRepo)
	authSvc := service.NewAuthService(userRepo, cfg)
	questionSvc := service.NewQuestionService(questionRepo, userSvc)
	quizSvc := service.NewQuizService(quizRepo, questionRepo, userSvc)
	attemptSvc := service.NewQuizAttemptService(quizRepo, questionRepo, responseRepo, userRepo, userSvc, cache)

	auth := NewAuthController(authSvc)
	question := NewQuestionController(questionSvc)
	quiz := NewQuizController(quizSvc)
	attempt := NewQuizAttemptController(attemptSvc)

	router := gin.New()
	router.POST("/api/register", auth.Register)
	router.POST("/api/login", auth.Login)

	authed := router.Group("/api")
	authed.Use(middleware.AuthMiddleware(cfg))
	{
		authed.GET("/quiz-attempts/:quizId/leaderboard", attempt.GetLeaderboard)

		teacher := authed.Group("/")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacher.POST("/questions/mcq", question.AddMCQ)
			teacher.POST("/quizzes", quiz.AddQuiz)
		}

		student := authed.Group("/")
		student.Use(middleware.RoleMiddleware(model.Student))
		{
			student.POST("/quiz-attempts/:quizId/start", attempt.StartQuiz)
			student.POST("/quiz-attempts/:quizId/answers", attempt.SubmitAnswer)
			student.GET("/quiz-attempts/:quizId/result", attempt.GetResult)
		}
	}

	return router
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: bad envelope %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, env
}

func registerAndLogin(t *testing.T, router *gin.Engine, name string, role model.UserRole) string {
	t.Helper()

	status, _ := doJSON(t, router, http.MethodPost, "/api/register", "", gin.H{
		"name":     name,
		"email":    name + "@example.com",
		"password": "hunter2x",
		"role":     role,
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s: status %d", name, status)
	}

	status, env := doJSON(t, router, http.MethodPost, "/api/login", "", gin.H{
		"email":    name + "@example.com",
		"password": "hunter2x",
	})
	if status != http.StatusOK {
		t.Fatalf("login %s: status %d", name, status)
	}

	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("login %s: no token in %s", name, env.Data)
	}
	return data.Token
}

func TestQuizAttemptFlowOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	teacherToken := registerAndLogin(t, router, "teacher", model.Teacher)
	studentToken := registerAndLogin(t, router, "student", model.Student)

	// Authoring requires the teacher role.
	status, _ := doJSON(t, router, http.MethodPost, "/api/questions/mcq", studentToken, gin.H{
		"questionText": "nope", "points": "1",
		"choice1": "A", "choice2": "B", "choice3": "C", "choice4": "D",
		"correctChoice": "A",
	})
	if status != http.StatusForbidden {
		t.Fatalf("student authoring status = %d, want 403", status)
	}

	status, env := doJSON(t, router, http.MethodPost, "/api/questions/mcq", teacherToken, gin.H{
		"questionText": "2+2?", "points": "3",
		"choice1": "3", "choice2": "4", "choice3": "5", "choice4": "6",
		"correctChoice": "4",
	})
	if status != http.StatusCreated {
		t.Fatalf("create question status = %d: %s", status, env.Message)
	}
	var question model.Question
	if err := json.Unmarshal(env.Data, &question); err != nil {
		t.Fatalf("decode question: %v", err)
	}

	status, env = doJSON(t, router, http.MethodPost, "/api/quizzes", teacherToken, gin.H{
		"quizName":    "Arithmetic",
		"questionIds": []uint{question.ID},
	})
	if status != http.StatusCreated {
		t.Fatalf("create quiz status = %d: %s", status, env.Message)
	}
	var quiz model.Quiz
	if err := json.Unmarshal(env.Data, &quiz); err != nil {
		t.Fatalf("decode quiz: %v", err)
	}

	quizPath := "/api/quiz-attempts/" + strconv.Itoa(int(quiz.ID))

	// No token at all.
	status, _ = doJSON(t, router, http.MethodPost, quizPath+"/start", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("anonymous start status = %d, want 401", status)
	}

	status, env = doJSON(t, router, http.MethodPost, quizPath+"/start", studentToken, nil)
	if status != http.StatusCreated {
		t.Fatalf("start status = %d: %s", status, env.Message)
	}

	// Single-attempt quiz: a second start conflicts.
	status, _ = doJSON(t, router, http.MethodPost, quizPath+"/start", studentToken, nil)
	if status != http.StatusConflict {
		t.Fatalf("second start status = %d, want 409", status)
	}

	status, env = doJSON(t, router, http.MethodPost, quizPath+"/answers", studentToken, gin.H{
		"questionId": question.ID,
		"answer":     "4",
	})
	if status != http.StatusOK {
		t.Fatalf("submit status = %d: %s", status, env.Message)
	}
	var receipt service.SubmitReceipt
	if err := json.Unmarshal(env.Data, &receipt); err != nil {
		t.Fatalf("decode receipt: %v", err)
	}
	if receipt.IsCorrect == nil || !*receipt.IsCorrect || !receipt.Completed {
		t.Fatalf("receipt = %+v, want correct and completed", receipt)
	}

	status, _ = doJSON(t, router, http.MethodPost, quizPath+"/answers", studentToken, gin.H{
		"questionId": question.ID,
		"answer":     "4",
	})
	if status != http.StatusConflict {
		t.Fatalf("duplicate answer status = %d, want 409", status)
	}

	status, env = doJSON(t, router, http.MethodGet, quizPath+"/result", studentToken, nil)
	if status != http.StatusOK {
		t.Fatalf("result status = %d: %s", status, env.Message)
	}
	var results []service.QuizResult
	if err := json.Unmarshal(env.Data, &results); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if len(results) != 1 || !results[0].Score.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("results = %+v, want one attempt scoring 3", results)
	}

	status, env = doJSON(t, router, http.MethodGet, quizPath+"/leaderboard", teacherToken, nil)
	if status != http.StatusOK {
		t.Fatalf("leaderboard status = %d: %s", status, env.Message)
	}
	var entries []repository.LeaderboardEntry
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		t.Fatalf("decode leaderboard: %v", err)
	}
	if len(entries) != 1 || entries[0].Rank != 1 || entries[0].UserName != "student" {
		t.Fatalf("leaderboard = %+v, want the student at rank 1", entries)
	}

	// Unknown quiz maps to 404.
	status, _ = doJSON(t, router, http.MethodPost, "/api/quiz-attempts/9999/start", studentToken, nil)
	if status != http.StatusNotFound {
		t.Fatalf("unknown quiz status = %d, want 404", status)
	}
}
