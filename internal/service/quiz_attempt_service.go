package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"quiz_app_backend/internal/model"
	"quiz_app_backend/internal/repository"
	"quiz_app_backend/internal/util"
	"quiz_app_backend/pkg/monitoring"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QuizAttemptService governs the lifecycle of a student's attempt at a quiz:
// starting, answering (one by one or in bulk), scoring, time-limit
// enforcement, coin rewards and leaderboards.
type QuizAttemptService struct {
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	ResponseRepo *repository.ResponseRepository
	UserRepo     *repository.UserRepository
	UserSvc      *UserService
	Leaderboard  *repository.LeaderboardCache

	// Writes to one response serialize through a mutex keyed by response id,
	// so two concurrent submissions cannot both pass the duplicate-answer
	// check.
	locksMu sync.Mutex
	locks   map[uint]*sync.Mutex
}

func NewQuizAttemptService(
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	responseRepo *repository.ResponseRepository,
	userRepo *repository.UserRepository,
	userSvc *UserService,
	leaderboard *repository.LeaderboardCache,
) *QuizAttemptService {
	return &QuizAttemptService{
		QuizRepo:     quizRepo,
		QuestionRepo: questionRepo,
		ResponseRepo: responseRepo,
		UserRepo:     userRepo,
		UserSvc:      userSvc,
		Leaderboard:  leaderboard,
		locks:        make(map[uint]*sync.Mutex),
	}
}

func (s *QuizAttemptService) responseLock(responseID uint) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	mu, ok := s.locks[responseID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[responseID] = mu
	}
	return mu
}

type AttemptQuestion struct {
	QuestionID   uint               `json:"questionId"`
	QuestionText string             `json:"questionText"`
	QuestionType model.QuestionType `json:"questionType"`
	Options      []string           `json:"options"`
}

type StartQuizResult struct {
	ResponseID uint              `json:"responseId"`
	QuizID     uint              `json:"quizId"`
	QuizName   string            `json:"quizName"`
	Questions  []AttemptQuestion `json:"questions"`
}

type SubmitReceipt struct {
	ResponseID   uint            `json:"responseId"`
	IsCorrect    *bool           `json:"isCorrect,omitempty"`
	Answered     int             `json:"answered"`
	ScoredPoints decimal.Decimal `json:"scoredPoints"`
	Completed    bool            `json:"completed"`
}

type AnsweredQuestion struct {
	QuestionID      uint   `json:"questionId"`
	SubmittedAnswer string `json:"submittedAnswer"`
	CorrectAnswer   string `json:"correctAnswer"`
	IsCorrect       bool   `json:"isCorrect"`
}

type QuizResult struct {
	ResponseID        uint               `json:"responseId"`
	UserID            uint               `json:"userId"`
	QuizID            uint               `json:"quizId"`
	Score             decimal.Decimal    `json:"score"`
	StartTime         time.Time          `json:"startTime"`
	EndTime           *time.Time         `json:"endTime,omitempty"`
	Completed         bool               `json:"completed"`
	AnsweredQuestions []AnsweredQuestion `json:"answeredQuestions"`
}

// loadQuiz treats soft-deleted quizzes as absent for attempt purposes.
func (s *QuizAttemptService) loadQuiz(quizID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		return nil, asNotFound(err, "quiz", quizID)
	}
	if quiz.IsDeleted {
		return nil, util.NewNotFoundError("quiz", quizID)
	}
	return quiz, nil
}

// StartQuiz opens a new attempt. A prior attempt blocks the start when the
// quiz disallows multiple attempts, no matter whether it was finished. The
// returned handle carries question ids, not snapshots; an edit to a question
// mid-attempt is reflected live.
func (s *QuizAttemptService) StartQuiz(userID, quizID uint) (*StartQuizResult, error) {
	quiz, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}

	previous, err := s.ResponseRepo.FindByUserAndQuiz(userID, quizID)
	if err != nil {
		return nil, err
	}
	if len(previous) > 0 && !quiz.IsMultipleAttemptAllowed {
		return nil, util.ErrQuizAlreadyStarted
	}

	response := &model.Response{
		UserID:       userID,
		QuizID:       quizID,
		ScoredPoints: decimal.Zero,
		StartTime:    time.Now(),
		EndTime:      nil,
	}
	if err := s.ResponseRepo.Create(response); err != nil {
		return nil, err
	}

	// The attendance counter tracks distinct quizzes, so only the first
	// attempt at this quiz bumps it.
	if len(previous) == 0 {
		if err := s.UserSvc.IncrementQuizzesAttended(userID); err != nil {
			return nil, err
		}
	}

	monitoring.QuizAttemptsStarted.WithLabelValues(formatID(quizID)).Inc()
	s.Leaderboard.Invalidate(context.Background(), quizID)

	questions := make([]AttemptQuestion, 0, len(quiz.QuizQuestions))
	for _, link := range quiz.QuizQuestions {
		if link.Question == nil {
			continue
		}
		questions = append(questions, AttemptQuestion{
			QuestionID:   link.QuestionID,
			QuestionText: link.Question.QuestionText,
			QuestionType: link.Question.QuestionType,
			Options:      link.Question.OptionList(),
		})
	}

	return &StartQuizResult{
		ResponseID: response.ID,
		QuizID:     quizID,
		QuizName:   quiz.QuizName,
		Questions:  questions,
	}, nil
}

// scoreAnswer compares a submission against the canonical answer of the
// question variant. Comparison is exact string equality, case-sensitive and
// untrimmed.
func scoreAnswer(question *model.Question, answer string) bool {
	switch question.QuestionType {
	case model.MCQQuestion:
		return question.CorrectChoice == answer
	case model.FillUpsQuestion:
		return question.CorrectAnswer == answer
	}
	return false
}

func (s *QuizAttemptService) timeLimitExceeded(quiz *model.Quiz, response *model.Response, at time.Time) bool {
	if quiz.TimeLimit == nil {
		return false
	}
	limit := time.Duration(*quiz.TimeLimit) * time.Minute
	return at.Sub(response.StartTime) > limit
}

// SubmitAnswer records one answer on the most recently started attempt.
func (s *QuizAttemptService) SubmitAnswer(userID, quizID, questionID uint, answer string) (*SubmitReceipt, error) {
	quiz, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}

	if !quizContainsQuestion(quiz, questionID) {
		return nil, util.ErrQuestionNotInQuiz
	}

	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		return nil, asNotFound(err, "question", questionID)
	}

	response, err := s.ResponseRepo.FindLatestByUserAndQuiz(userID, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotStarted
		}
		return nil, err
	}

	mu := s.responseLock(response.ID)
	mu.Lock()
	defer mu.Unlock()

	// Reload under the lock so a submission racing us is visible.
	response, err = s.ResponseRepo.FindByID(response.ID)
	if err != nil {
		return nil, asNotFound(err, "response", response.ID)
	}

	for _, recorded := range response.ResponseAnswers {
		if recorded.QuestionID == questionID {
			return nil, util.ErrAlreadyAnswered
		}
	}

	now := time.Now()
	if s.timeLimitExceeded(quiz, response, now) {
		return nil, util.ErrTimeLimitExceeded
	}

	isCorrect := scoreAnswer(question, answer)
	recorded := model.ResponseAnswer{
		QuestionID:      questionID,
		SubmittedAnswer: answer,
		IsCorrect:       isCorrect,
	}
	if isCorrect {
		response.ScoredPoints = response.ScoredPoints.Add(question.Points)
	}

	completed := len(response.ResponseAnswers)+1 == len(quiz.QuizQuestions)
	if completed {
		if err := s.evaluateReward(quiz, response, userID); err != nil {
			return nil, err
		}
	}

	if err := s.ResponseRepo.SaveWithAnswers(response, []model.ResponseAnswer{recorded}); err != nil {
		return nil, err
	}

	monitoring.AnswersSubmitted.WithLabelValues(formatBool(isCorrect)).Inc()
	s.Leaderboard.Invalidate(context.Background(), quizID)

	return &SubmitReceipt{
		ResponseID:   response.ID,
		IsCorrect:    &isCorrect,
		Answered:     len(response.ResponseAnswers) + 1,
		ScoredPoints: response.ScoredPoints,
		Completed:    completed,
	}, nil
}

// SubmitAllAnswers applies a whole batch against one fetched quiz and one
// fetched response. Answers accumulate in memory and persist in a single
// transaction only after every entry passed its checks, so a failing entry
// leaves nothing written. Reward evaluation always runs after a successful
// batch: submitting all answers means the student is done.
func (s *QuizAttemptService) SubmitAllAnswers(userID, quizID uint, answers map[uint]string) (*SubmitReceipt, error) {
	quiz, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}

	response, err := s.ResponseRepo.FindLatestByUserAndQuiz(userID, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotStarted
		}
		return nil, err
	}

	mu := s.responseLock(response.ID)
	mu.Lock()
	defer mu.Unlock()

	response, err = s.ResponseRepo.FindByID(response.ID)
	if err != nil {
		return nil, asNotFound(err, "response", response.ID)
	}

	// The limit applies to the batch as a whole, measured once.
	if s.timeLimitExceeded(quiz, response, time.Now()) {
		return nil, util.ErrTimeLimitExceeded
	}

	answered := make(map[uint]bool, len(response.ResponseAnswers))
	for _, recorded := range response.ResponseAnswers {
		answered[recorded.QuestionID] = true
	}

	newAnswers := make([]model.ResponseAnswer, 0, len(answers))
	for questionID, answer := range answers {
		if !quizContainsQuestion(quiz, questionID) {
			return nil, util.ErrQuestionNotInQuiz
		}

		question, err := s.QuestionRepo.FindByID(questionID)
		if err != nil {
			return nil, asNotFound(err, "question", questionID)
		}

		if answered[questionID] {
			return nil, util.ErrAlreadyAnswered
		}
		answered[questionID] = true

		isCorrect := scoreAnswer(question, answer)
		if isCorrect {
			response.ScoredPoints = response.ScoredPoints.Add(question.Points)
		}

		newAnswers = append(newAnswers, model.ResponseAnswer{
			QuestionID:      questionID,
			SubmittedAnswer: answer,
			IsCorrect:       isCorrect,
		})
	}

	if err := s.evaluateReward(quiz, response, userID); err != nil {
		return nil, err
	}

	if err := s.ResponseRepo.SaveWithAnswers(response, newAnswers); err != nil {
		return nil, err
	}

	for _, recorded := range newAnswers {
		monitoring.AnswersSubmitted.WithLabelValues(formatBool(recorded.IsCorrect)).Inc()
	}
	s.Leaderboard.Invalidate(context.Background(), quizID)

	return &SubmitReceipt{
		ResponseID:   response.ID,
		Answered:     len(response.ResponseAnswers) + len(newAnswers),
		ScoredPoints: response.ScoredPoints,
		Completed:    true,
	}, nil
}

// evaluateReward stamps the end of the attempt and pays out coins on a
// perfect score. The total is summed over the live question rows, matching
// how the quiz total is maintained.
func (s *QuizAttemptService) evaluateReward(quiz *model.Quiz, response *model.Response, userID uint) error {
	totalPoints := decimal.Zero
	for _, link := range quiz.QuizQuestions {
		if link.Question != nil {
			totalPoints = totalPoints.Add(link.Question.Points)
		}
	}

	now := time.Now()
	response.EndTime = &now

	if totalPoints.Equal(response.ScoredPoints) {
		return s.UserSvc.AwardCoins(userID)
	}
	return nil
}

// GetQuizResult lists every attempt of the student at the quiz, best score
// first, with each recorded answer expanded against the live question row.
func (s *QuizAttemptService) GetQuizResult(userID, quizID uint) ([]QuizResult, error) {
	if _, err := s.loadQuiz(quizID); err != nil {
		return nil, err
	}

	responses, err := s.ResponseRepo.FindByUserAndQuiz(userID, quizID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].ScoredPoints.GreaterThan(responses[j].ScoredPoints)
	})

	questions := make(map[uint]*model.Question)
	results := make([]QuizResult, 0, len(responses))
	for _, response := range responses {
		answeredQuestions := make([]AnsweredQuestion, 0, len(response.ResponseAnswers))
		for _, recorded := range response.ResponseAnswers {
			question, ok := questions[recorded.QuestionID]
			if !ok {
				question, err = s.QuestionRepo.FindByID(recorded.QuestionID)
				if err != nil {
					return nil, asNotFound(err, "question", recorded.QuestionID)
				}
				questions[recorded.QuestionID] = question
			}
			answeredQuestions = append(answeredQuestions, AnsweredQuestion{
				QuestionID:      recorded.QuestionID,
				SubmittedAnswer: recorded.SubmittedAnswer,
				CorrectAnswer:   question.CanonicalAnswer(),
				IsCorrect:       recorded.IsCorrect,
			})
		}

		results = append(results, QuizResult{
			ResponseID:        response.ID,
			UserID:            userID,
			QuizID:            quizID,
			Score:             response.ScoredPoints,
			StartTime:         response.StartTime,
			EndTime:           response.EndTime,
			Completed:         response.Completed(),
			AnsweredQuestions: answeredQuestions,
		})
	}
	return results, nil
}

// GetQuizLeaderboard ranks every attempt at the quiz by score, earlier start
// winning ties. Served from the redis cache when warm.
func (s *QuizAttemptService) GetQuizLeaderboard(quizID uint) ([]repository.LeaderboardEntry, error) {
	if _, err := s.loadQuiz(quizID); err != nil {
		return nil, err
	}

	ctx := context.Background()
	if entries, ok := s.Leaderboard.Get(ctx, quizID); ok {
		return entries, nil
	}

	responses, err := s.ResponseRepo.FindByQuiz(quizID)
	if err != nil {
		return nil, err
	}

	// Rank in memory as well; decimal columns do not sort numerically on
	// every driver.
	sort.SliceStable(responses, func(i, j int) bool {
		if !responses[i].ScoredPoints.Equal(responses[j].ScoredPoints) {
			return responses[i].ScoredPoints.GreaterThan(responses[j].ScoredPoints)
		}
		return responses[i].StartTime.Before(responses[j].StartTime)
	})

	names := make(map[uint]string)
	entries := make([]repository.LeaderboardEntry, 0, len(responses))
	for i, response := range responses {
		name, ok := names[response.UserID]
		if !ok {
			if user, err := s.UserRepo.FindByID(response.UserID); err == nil {
				name = user.Name
			}
			names[response.UserID] = name
		}
		entries = append(entries, repository.LeaderboardEntry{
			Rank:       i + 1,
			ResponseID: response.ID,
			UserID:     response.UserID,
			UserName:   name,
			Score:      response.ScoredPoints,
			StartTime:  response.StartTime,
		})
	}

	s.Leaderboard.Set(ctx, quizID, entries)
	return entries, nil
}

// GetStudentPositionInLeaderboard returns the 1-based rank of the student's
// best attempt, or -1 when the student never attempted the quiz. The -1 is a
// "not participated" signal, not an error.
func (s *QuizAttemptService) GetStudentPositionInLeaderboard(userID, quizID uint) (int, error) {
	entries, err := s.GetQuizLeaderboard(quizID)
	if err != nil {
		return 0, err
	}
	for _, entry := range entries {
		if entry.UserID == userID {
			return entry.Rank, nil
		}
	}
	return -1, nil
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

func quizContainsQuestion(quiz *model.Quiz, questionID uint) bool {
	for _, link := range quiz.QuizQuestions {
		if link.QuestionID == questionID {
			return true
		}
	}
	return false
}
