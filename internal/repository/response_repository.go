package repository

import (
	"quiz_app_backend/internal/model"

	"gorm.io/gorm"
)

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

func (r *ResponseRepository) Create(resp *model.Response) error {
	return r.DB.Create(resp).Error
}

func (r *ResponseRepository) FindByID(id uint) (*model.Response, error) {
	var resp model.Response
	err := r.DB.Preload("ResponseAnswers").First(&resp, id).Error
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// FindByUserAndQuiz returns all attempts of one student at one quiz, newest
// start first. An empty slice is not an error.
func (r *ResponseRepository) FindByUserAndQuiz(userID, quizID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.DB.Preload("ResponseAnswers").
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("start_time DESC").
		Find(&responses).Error
	return responses, err
}

// FindLatestByUserAndQuiz picks the most recently started attempt, the one
// answer submissions apply to.
func (r *ResponseRepository) FindLatestByUserAndQuiz(userID, quizID uint) (*model.Response, error) {
	var resp model.Response
	err := r.DB.Preload("ResponseAnswers").
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("start_time DESC").
		First(&resp).Error
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *ResponseRepository) FindByQuiz(quizID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.DB.
		Where("quiz_id = ?", quizID).
		Order("scored_points DESC, start_time ASC").
		Find(&responses).Error
	return responses, err
}

// SaveWithAnswers persists the accumulated state of an attempt together with
// its newly recorded answers in one transaction. Callers build up answers in
// memory first, so a failed precondition earlier in the batch writes nothing.
func (r *ResponseRepository) SaveWithAnswers(resp *model.Response, newAnswers []model.ResponseAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if len(newAnswers) > 0 {
			for i := range newAnswers {
				newAnswers[i].ResponseID = resp.ID
			}
			if err := tx.Create(&newAnswers).Error; err != nil {
				return err
			}
		}
		return tx.Omit("ResponseAnswers").Save(resp).Error
	})
}
