package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Response is one student's attempt at one quiz. A nil EndTime means the
// attempt is still in progress; there is no separate status column.
// swagger:model Response
type Response struct {
	BaseModel
	UserID       uint            `gorm:"index;not null" json:"userId"`
	QuizID       uint            `gorm:"index;not null" json:"quizId"`
	ScoredPoints decimal.Decimal `gorm:"type:decimal(18,2)" json:"scoredPoints"`
	StartTime    time.Time       `json:"startTime"`
	EndTime      *time.Time      `json:"endTime,omitempty"`

	ResponseAnswers []ResponseAnswer `gorm:"foreignKey:ResponseID" json:"responseAnswers,omitempty"`
}

func (Response) TableName() string {
	return "responses"
}

func (r *Response) Completed() bool {
	return r.EndTime != nil
}

// ResponseAnswer records one submitted answer within an attempt. IsCorrect
// is computed once at submission time and never revised.
type ResponseAnswer struct {
	BaseModel
	ResponseID      uint   `gorm:"index;not null" json:"responseId"`
	QuestionID      uint   `gorm:"index;not null" json:"questionId"`
	SubmittedAnswer string `gorm:"size:255" json:"submittedAnswer"`
	IsCorrect       bool   `json:"isCorrect"`
}

func (ResponseAnswer) TableName() string {
	return "response_answers"
}
