package repository

import (
	"quiz_app_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	if err := r.DB.First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

// Delete removes the row physically; soft deletion goes through the
// IsDeleted flag instead.
func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&model.Question{}, id).Error
}

// FindAll returns questions that are not flagged as deleted.
func (r *QuestionRepository) FindAll() ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("is_deleted = ?", false).Order("id").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) FindByType(qt model.QuestionType) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("question_type = ? AND is_deleted = ?", qt, false).Order("id").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) FindSoftDeleted() ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("is_deleted = ?", true).Order("id").Find(&qs).Error
	return qs, err
}
