package service

import (
	"quiz_app_backend/internal/model"
	"quiz_app_backend/internal/repository"
	"quiz_app_backend/internal/util"

	"github.com/shopspring/decimal"
)

type QuizService struct {
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	UserSvc      *UserService
}

func NewQuizService(quizRepo *repository.QuizRepository, questionRepo *repository.QuestionRepository, userSvc *UserService) *QuizService {
	return &QuizService{QuizRepo: quizRepo, QuestionRepo: questionRepo, UserSvc: userSvc}
}

type QuizRequest struct {
	QuizName                 string `json:"quizName" binding:"required"`
	QuizDescription          string `json:"quizDescription"`
	QuizType                 string `json:"quizType"`
	IsMultipleAttemptAllowed bool   `json:"isMultipleAttemptAllowed"`
	TimeLimit                *int   `json:"timeLimit"`
	QuestionIDs              []uint `json:"questionIds" binding:"required,min=1"`
}

// buildLinks resolves the question-id set into link rows and the summed
// point total. Unknown or soft-deleted questions fail the whole request.
func (s *QuizService) buildLinks(questionIDs []uint) ([]model.QuizQuestion, decimal.Decimal, error) {
	links := make([]model.QuizQuestion, 0, len(questionIDs))
	seen := make(map[uint]bool, len(questionIDs))
	totalPoints := decimal.Zero

	for _, questionID := range questionIDs {
		if seen[questionID] {
			continue
		}
		seen[questionID] = true

		question, err := s.QuestionRepo.FindByID(questionID)
		if err != nil {
			return nil, decimal.Zero, asNotFound(err, "question", questionID)
		}
		if question.IsDeleted {
			return nil, decimal.Zero, util.NewNotFoundError("question", questionID)
		}

		totalPoints = totalPoints.Add(question.Points)
		links = append(links, model.QuizQuestion{QuestionID: questionID})
	}
	return links, totalPoints, nil
}

func (s *QuizService) AddQuiz(creatorID uint, req QuizRequest) (*model.Quiz, error) {
	links, totalPoints, err := s.buildLinks(req.QuestionIDs)
	if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		QuizName:                 req.QuizName,
		QuizDescription:          req.QuizDescription,
		QuizType:                 req.QuizType,
		NumOfQuestions:           len(links),
		TotalPoints:              totalPoints,
		IsMultipleAttemptAllowed: req.IsMultipleAttemptAllowed,
		TimeLimit:                req.TimeLimit,
		QuizCreatedBy:            creatorID,
		QuizQuestions:            links,
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	if err := s.UserSvc.IncrementQuizzesCreated(creatorID); err != nil {
		return nil, err
	}
	return quiz, nil
}

type QuizUpdateRequest struct {
	QuizName                 *string `json:"quizName"`
	QuizDescription          *string `json:"quizDescription"`
	QuizType                 *string `json:"quizType"`
	IsMultipleAttemptAllowed *bool   `json:"isMultipleAttemptAllowed"`
	TimeLimit                *int    `json:"timeLimit"`
	QuestionIDs              *[]uint `json:"questionIds"`
}

func (s *QuizService) ownedQuiz(userID, quizID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		return nil, asNotFound(err, "quiz", quizID)
	}
	if quiz.QuizCreatedBy != userID {
		return nil, util.ErrNotQuizOwner
	}
	return quiz, nil
}

func (s *QuizService) UpdateQuiz(userID, quizID uint, req QuizUpdateRequest) (*model.Quiz, error) {
	quiz, err := s.ownedQuiz(userID, quizID)
	if err != nil {
		return nil, err
	}

	if req.QuizName != nil {
		quiz.QuizName = *req.QuizName
	}
	if req.QuizDescription != nil {
		quiz.QuizDescription = *req.QuizDescription
	}
	if req.QuizType != nil {
		quiz.QuizType = *req.QuizType
	}
	if req.IsMultipleAttemptAllowed != nil {
		quiz.IsMultipleAttemptAllowed = *req.IsMultipleAttemptAllowed
	}
	if req.TimeLimit != nil {
		quiz.TimeLimit = req.TimeLimit
	}

	if req.QuestionIDs != nil {
		// The question set changed, so the totals must follow it.
		links, totalPoints, err := s.buildLinks(*req.QuestionIDs)
		if err != nil {
			return nil, err
		}
		for i := range links {
			links[i].QuizID = quiz.ID
		}
		if err := s.QuizRepo.ReplaceQuestions(quiz.ID, links); err != nil {
			return nil, err
		}
		quiz.NumOfQuestions = len(links)
		quiz.TotalPoints = totalPoints
		quiz.QuizQuestions = links
	}

	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) SoftDeleteQuiz(userID, quizID uint) error {
	quiz, err := s.ownedQuiz(userID, quizID)
	if err != nil {
		return err
	}
	quiz.IsDeleted = true
	return s.QuizRepo.Update(quiz)
}

func (s *QuizService) RestoreQuiz(userID, quizID uint) error {
	quiz, err := s.ownedQuiz(userID, quizID)
	if err != nil {
		return err
	}
	quiz.IsDeleted = false
	return s.QuizRepo.Update(quiz)
}

func (s *QuizService) DeleteQuiz(userID, quizID uint) error {
	if _, err := s.ownedQuiz(userID, quizID); err != nil {
		return err
	}
	return s.QuizRepo.Delete(quizID)
}

// DuplicateQuiz copies a quiz and its question links under the calling
// teacher. Attempt history stays with the source quiz.
func (s *QuizService) DuplicateQuiz(userID, quizID uint) (*model.Quiz, error) {
	source, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		return nil, asNotFound(err, "quiz", quizID)
	}

	links := make([]model.QuizQuestion, 0, len(source.QuizQuestions))
	for _, link := range source.QuizQuestions {
		links = append(links, model.QuizQuestion{QuestionID: link.QuestionID})
	}

	copied := &model.Quiz{
		QuizName:                 source.QuizName + " (Copy)",
		QuizDescription:          source.QuizDescription,
		QuizType:                 source.QuizType,
		NumOfQuestions:           source.NumOfQuestions,
		TotalPoints:              source.TotalPoints,
		IsMultipleAttemptAllowed: source.IsMultipleAttemptAllowed,
		TimeLimit:                source.TimeLimit,
		QuizCreatedBy:            userID,
		QuizQuestions:            links,
	}

	if err := s.QuizRepo.Create(copied); err != nil {
		return nil, err
	}
	if err := s.UserSvc.IncrementQuizzesCreated(userID); err != nil {
		return nil, err
	}
	return copied, nil
}

func (s *QuizService) GetQuiz(quizID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		return nil, asNotFound(err, "quiz", quizID)
	}
	return quiz, nil
}

func (s *QuizService) GetAllQuizzes() ([]model.Quiz, error) {
	return s.QuizRepo.FindAll()
}

func (s *QuizService) GetSoftDeletedQuizzes() ([]model.Quiz, error) {
	return s.QuizRepo.FindSoftDeleted()
}

func (s *QuizService) GetQuizzesByTeacher(teacherID uint) ([]model.Quiz, error) {
	return s.QuizRepo.FindByTeacher(teacherID)
}
