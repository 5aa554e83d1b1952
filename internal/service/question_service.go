package service

import (
	"quiz_app_backend/internal/model"
	"quiz_app_backend/internal/repository"
	"quiz_app_backend/internal/util"

	"github.com/shopspring/decimal"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	UserSvc      *UserService
}

func NewQuestionService(questionRepo *repository.QuestionRepository, userSvc *UserService) *QuestionService {
	return &QuestionService{QuestionRepo: questionRepo, UserSvc: userSvc}
}

type MCQRequest struct {
	QuestionText    string                `json:"questionText" binding:"required"`
	Points          decimal.Decimal       `json:"points" binding:"required"`
	Category        string                `json:"category"`
	DifficultyLevel model.DifficultyLevel `json:"difficultyLevel" binding:"omitempty,oneof=Easy Medium Hard"`
	Choice1         string                `json:"choice1" binding:"required"`
	Choice2         string                `json:"choice2" binding:"required"`
	Choice3         string                `json:"choice3" binding:"required"`
	Choice4         string                `json:"choice4" binding:"required"`
	CorrectChoice   string                `json:"correctChoice" binding:"required"`
}

type FillUpsRequest struct {
	QuestionText    string                `json:"questionText" binding:"required"`
	Points          decimal.Decimal       `json:"points" binding:"required"`
	Category        string                `json:"category"`
	DifficultyLevel model.DifficultyLevel `json:"difficultyLevel" binding:"omitempty,oneof=Easy Medium Hard"`
	CorrectAnswer   string                `json:"correctAnswer" binding:"required"`
}

func (s *QuestionService) AddMCQQuestion(creatorID uint, req MCQRequest) (*model.Question, error) {
	q := &model.Question{
		QuestionText:      req.QuestionText,
		QuestionType:      model.MCQQuestion,
		Points:            req.Points,
		Category:          req.Category,
		DifficultyLevel:   req.DifficultyLevel,
		QuestionCreatedBy: creatorID,
		Choice1:           req.Choice1,
		Choice2:           req.Choice2,
		Choice3:           req.Choice3,
		Choice4:           req.Choice4,
		CorrectChoice:     req.CorrectChoice,
	}

	if err := s.QuestionRepo.Create(q); err != nil {
		return nil, err
	}
	if err := s.UserSvc.IncrementQuestionsCreated(creatorID); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) AddFillUpsQuestion(creatorID uint, req FillUpsRequest) (*model.Question, error) {
	q := &model.Question{
		QuestionText:      req.QuestionText,
		QuestionType:      model.FillUpsQuestion,
		Points:            req.Points,
		Category:          req.Category,
		DifficultyLevel:   req.DifficultyLevel,
		QuestionCreatedBy: creatorID,
		CorrectAnswer:     req.CorrectAnswer,
	}

	if err := s.QuestionRepo.Create(q); err != nil {
		return nil, err
	}
	if err := s.UserSvc.IncrementQuestionsCreated(creatorID); err != nil {
		return nil, err
	}
	return q, nil
}

type MCQUpdateRequest struct {
	QuestionText    *string                `json:"questionText"`
	Points          *decimal.Decimal       `json:"points"`
	Category        *string                `json:"category"`
	DifficultyLevel *model.DifficultyLevel `json:"difficultyLevel"`
	Choice1         *string                `json:"choice1"`
	Choice2         *string                `json:"choice2"`
	Choice3         *string                `json:"choice3"`
	Choice4         *string                `json:"choice4"`
	CorrectChoice   *string                `json:"correctChoice"`
}

type FillUpsUpdateRequest struct {
	QuestionText    *string                `json:"questionText"`
	Points          *decimal.Decimal       `json:"points"`
	Category        *string                `json:"category"`
	DifficultyLevel *model.DifficultyLevel `json:"difficultyLevel"`
	CorrectAnswer   *string                `json:"correctAnswer"`
}

// ownedQuestion loads a question and rejects callers other than its creator.
func (s *QuestionService) ownedQuestion(userID, questionID uint) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		return nil, asNotFound(err, "question", questionID)
	}
	if q.QuestionCreatedBy != userID {
		return nil, util.ErrNotQuestionOwner
	}
	return q, nil
}

func (s *QuestionService) UpdateMCQQuestion(userID, questionID uint, req MCQUpdateRequest) (*model.Question, error) {
	q, err := s.ownedQuestion(userID, questionID)
	if err != nil {
		return nil, err
	}
	if q.QuestionType != model.MCQQuestion {
		return nil, util.NewNotFoundError("MCQ question", questionID)
	}

	if req.QuestionText != nil {
		q.QuestionText = *req.QuestionText
	}
	if req.Points != nil {
		q.Points = *req.Points
	}
	if req.Category != nil {
		q.Category = *req.Category
	}
	if req.DifficultyLevel != nil {
		q.DifficultyLevel = *req.DifficultyLevel
	}
	if req.Choice1 != nil {
		q.Choice1 = *req.Choice1
	}
	if req.Choice2 != nil {
		q.Choice2 = *req.Choice2
	}
	if req.Choice3 != nil {
		q.Choice3 = *req.Choice3
	}
	if req.Choice4 != nil {
		q.Choice4 = *req.Choice4
	}
	if req.CorrectChoice != nil {
		q.CorrectChoice = *req.CorrectChoice
	}

	if err := s.QuestionRepo.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) UpdateFillUpsQuestion(userID, questionID uint, req FillUpsUpdateRequest) (*model.Question, error) {
	q, err := s.ownedQuestion(userID, questionID)
	if err != nil {
		return nil, err
	}
	if q.QuestionType != model.FillUpsQuestion {
		return nil, util.NewNotFoundError("FillUps question", questionID)
	}

	if req.QuestionText != nil {
		q.QuestionText = *req.QuestionText
	}
	if req.Points != nil {
		q.Points = *req.Points
	}
	if req.Category != nil {
		q.Category = *req.Category
	}
	if req.DifficultyLevel != nil {
		q.DifficultyLevel = *req.DifficultyLevel
	}
	if req.CorrectAnswer != nil {
		q.CorrectAnswer = *req.CorrectAnswer
	}

	if err := s.QuestionRepo.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) SoftDeleteQuestion(userID, questionID uint) error {
	q, err := s.ownedQuestion(userID, questionID)
	if err != nil {
		return err
	}
	q.IsDeleted = true
	return s.QuestionRepo.Update(q)
}

func (s *QuestionService) RestoreQuestion(userID, questionID uint) error {
	q, err := s.ownedQuestion(userID, questionID)
	if err != nil {
		return err
	}
	q.IsDeleted = false
	return s.QuestionRepo.Update(q)
}

func (s *QuestionService) DeleteQuestion(userID, questionID uint) error {
	if _, err := s.ownedQuestion(userID, questionID); err != nil {
		return err
	}
	return s.QuestionRepo.Delete(questionID)
}

func (s *QuestionService) GetQuestion(questionID uint) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		return nil, asNotFound(err, "question", questionID)
	}
	return q, nil
}

func (s *QuestionService) GetAllQuestions() ([]model.Question, error) {
	return s.QuestionRepo.FindAll()
}

func (s *QuestionService) GetAllMCQQuestions() ([]model.Question, error) {
	return s.QuestionRepo.FindByType(model.MCQQuestion)
}

func (s *QuestionService) GetAllFillUpsQuestions() ([]model.Question, error) {
	return s.QuestionRepo.FindByType(model.FillUpsQuestion)
}

func (s *QuestionService) GetSoftDeletedQuestions() ([]model.Question, error) {
	return s.QuestionRepo.FindSoftDeleted()
}
