package model

import (
	"github.com/shopspring/decimal"
)

type QuestionType string

const (
	MCQQuestion     QuestionType = "MCQ"
	FillUpsQuestion QuestionType = "FillUps"
)

type DifficultyLevel string

const (
	Easy   DifficultyLevel = "Easy"
	Medium DifficultyLevel = "Medium"
	Hard   DifficultyLevel = "Hard"
)

// Question is a single table over both variants; QuestionType is the
// discriminant. MCQ rows fill Choice1..Choice4 and CorrectChoice, FillUps
// rows fill CorrectAnswer.
// swagger:model Question
type Question struct {
	BaseModel
	QuestionText      string          `gorm:"type:text;not null" json:"questionText"`
	QuestionType      QuestionType    `gorm:"size:20;not null" json:"questionType"`
	Points            decimal.Decimal `gorm:"type:decimal(18,2)" json:"points"`
	Category          string          `gorm:"size:100" json:"category"`
	DifficultyLevel   DifficultyLevel `gorm:"size:20" json:"difficultyLevel"`
	QuestionCreatedBy uint            `gorm:"index;not null" json:"questionCreatedBy"`
	Creator           *User           `gorm:"foreignKey:QuestionCreatedBy" json:"-"`
	IsDeleted         bool            `gorm:"default:false" json:"isDeleted"`

	Choice1       string `gorm:"size:255" json:"choice1,omitempty"`
	Choice2       string `gorm:"size:255" json:"choice2,omitempty"`
	Choice3       string `gorm:"size:255" json:"choice3,omitempty"`
	Choice4       string `gorm:"size:255" json:"choice4,omitempty"`
	CorrectChoice string `gorm:"size:255" json:"-"`
	CorrectAnswer string `gorm:"size:255" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}

// CanonicalAnswer returns the answer a submission is compared against.
func (q *Question) CanonicalAnswer() string {
	switch q.QuestionType {
	case MCQQuestion:
		return q.CorrectChoice
	case FillUpsQuestion:
		return q.CorrectAnswer
	}
	return ""
}

// OptionList is the choices in declaration order for MCQ rows and empty for
// FillUps rows.
func (q *Question) OptionList() []string {
	switch q.QuestionType {
	case MCQQuestion:
		return []string{q.Choice1, q.Choice2, q.Choice3, q.Choice4}
	}
	return []string{}
}
