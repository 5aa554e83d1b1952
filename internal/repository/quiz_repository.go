package repository

import (
	"quiz_app_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

// FindByID loads the quiz with its question links and question rows, ordered
// by question id so option lists and handles come back deterministically.
func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("QuizQuestions", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_id")
		}).
		Preload("QuizQuestions.Question").
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Omit("QuizQuestions").Save(quiz).Error
}

// ReplaceQuestions swaps the link set of a quiz atomically.
func (r *QuizRepository) ReplaceQuestions(quizID uint, links []model.QuizQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quizID).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Create(&links).Error
	})
}

func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.Quiz{}, id).Error
	})
}

func (r *QuizRepository) FindAll() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Preload("QuizQuestions").Where("is_deleted = ?", false).Order("id").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) FindSoftDeleted() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Preload("QuizQuestions").Where("is_deleted = ?", true).Order("id").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) FindByTeacher(teacherID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Preload("QuizQuestions").
		Where("quiz_created_by = ? AND is_deleted = ?", teacherID, false).
		Order("id").Find(&quizzes).Error
	return quizzes, err
}
