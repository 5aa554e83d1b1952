package model

import (
	"github.com/shopspring/decimal"
)

// swagger:model Quiz
type Quiz struct {
	BaseModel
	QuizName        string          `gorm:"size:255;not null" json:"quizName"`
	QuizDescription string          `gorm:"type:text" json:"quizDescription"`
	QuizType        string          `gorm:"size:100" json:"quizType"`
	NumOfQuestions  int             `json:"numOfQuestions"`
	TotalPoints     decimal.Decimal `gorm:"type:decimal(18,2)" json:"totalPoints"`

	IsMultipleAttemptAllowed bool `gorm:"default:false" json:"isMultipleAttemptAllowed"`
	// TimeLimit is in minutes. nil means unlimited; zero is a valid limit
	// that expires immediately.
	TimeLimit *int `json:"timeLimit,omitempty"`

	QuizCreatedBy uint  `gorm:"index;not null" json:"quizCreatedBy"`
	Creator       *User `gorm:"foreignKey:QuizCreatedBy" json:"-"`
	IsDeleted     bool  `gorm:"default:false" json:"isDeleted"`

	QuizQuestions []QuizQuestion `gorm:"foreignKey:QuizID" json:"quizQuestions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion links a quiz to a question; the composite key keeps a
// question from appearing twice in one quiz.
type QuizQuestion struct {
	QuizID     uint      `gorm:"primaryKey;autoIncrement:false" json:"quizId"`
	QuestionID uint      `gorm:"primaryKey;autoIncrement:false" json:"questionId"`
	Question   *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
