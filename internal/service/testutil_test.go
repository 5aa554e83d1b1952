package service

import (
	"testing"
	"time"

	"quiz_app_backend/internal/config"
	"quiz_app_backend/internal/model"
	"quiz_app_backend/internal/repository"
	"quiz_app_backend/pkg/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv wires the whole service layer against an in-memory sqlite database
// and a miniredis instance, using the production schema migration.
type testEnv struct {
	t  *testing.T
	db *gorm.DB

	userRepo     *repository.UserRepository
	questionRepo *repository.QuestionRepository
	quizRepo     *repository.QuizRepository
	responseRepo *repository.ResponseRepository

	cfg       *config.Config
	auth      *AuthService
	users     *UserService
	questions *QuestionService
	quizzes   *QuizService
	attempts  *QuizAttemptService

	redis *miniredis.Miniredis
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// One connection only, or every pooled connection gets its own empty
	// in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour

	env := &testEnv{
		t:            t,
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		questionRepo: repository.NewQuestionRepository(db),
		quizRepo:     repository.NewQuizRepository(db),
		responseRepo: repository.NewResponseRepository(db),
		cfg:          cfg,
		redis:        mr,
	}

	cache := repository.NewLeaderboardCache(rdb, time.Minute)

	env.auth = NewAuthService(env.userRepo, cfg)
	env.users = NewUserService(env.userRepo)
	env.questions = NewQuestionService(env.questionRepo, env.users)
	env.quizzes = NewQuizService(env.quizRepo, env.questionRepo, env.users)
	env.attempts = NewQuizAttemptService(
		env.quizRepo,
		env.questionRepo,
		env.responseRepo,
		env.userRepo,
		env.users,
		cache,
	)

	return env
}

func (e *testEnv) createUser(name string, role model.UserRole) *model.User {
	e.t.Helper()
	user := &model.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "irrelevant",
		Role:     role,
	}
	if err := e.userRepo.Create(user); err != nil {
		e.t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

func (e *testEnv) createMCQ(teacherID uint, points, correct string) *model.Question {
	e.t.Helper()
	q, err := e.questions.AddMCQQuestion(teacherID, MCQRequest{
		QuestionText:  "Pick " + correct,
		Points:        mustDecimal(e.t, points),
		Choice1:       "A",
		Choice2:       "B",
		Choice3:       "C",
		Choice4:       "D",
		CorrectChoice: correct,
	})
	if err != nil {
		e.t.Fatalf("create mcq: %v", err)
	}
	return q
}

func (e *testEnv) createFillUps(teacherID uint, points, answer string) *model.Question {
	e.t.Helper()
	q, err := e.questions.AddFillUpsQuestion(teacherID, FillUpsRequest{
		QuestionText:  "Type " + answer,
		Points:        mustDecimal(e.t, points),
		CorrectAnswer: answer,
	})
	if err != nil {
		e.t.Fatalf("create fillups: %v", err)
	}
	return q
}

func (e *testEnv) createQuiz(teacherID uint, req QuizRequest) *model.Quiz {
	e.t.Helper()
	quiz, err := e.quizzes.AddQuiz(teacherID, req)
	if err != nil {
		e.t.Fatalf("create quiz: %v", err)
	}
	return quiz
}

func (e *testEnv) reloadUser(id uint) *model.User {
	e.t.Helper()
	user, err := e.userRepo.FindByID(id)
	if err != nil {
		e.t.Fatalf("reload user %d: %v", id, err)
	}
	return user
}

// backdateAttempt moves the start of a response into the past, for time-limit
// tests.
func (e *testEnv) backdateAttempt(responseID uint, by time.Duration) {
	e.t.Helper()
	err := e.db.Model(&model.Response{}).
		Where("id = ?", responseID).
		Update("start_time", time.Now().Add(-by)).Error
	if err != nil {
		e.t.Fatalf("backdate response %d: %v", responseID, err)
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func intPtr(v int) *int {
	return &v
}
