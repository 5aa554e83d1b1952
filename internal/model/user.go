package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
)

// swagger:model User
type User struct {
	BaseModel
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;unique;not null" json:"email"`
	Password     string    `gorm:"size:100;not null" json:"-"`
	MobileNumber string    `gorm:"size:20" json:"mobileNumber"`
	DateOfBirth  time.Time `json:"dateOfBirth"`
	Role         UserRole  `gorm:"size:20;default:'student'" json:"role"`

	// Teacher columns
	Designation            string `gorm:"size:100" json:"designation,omitempty"`
	NumsOfQuestionsCreated *int   `json:"numsOfQuestionsCreated,omitempty"`
	NumsOfQuizCreated      *int   `json:"numsOfQuizCreated,omitempty"`

	// Student columns; nullable so a fresh account is distinguishable from zero
	EducationQualification string `gorm:"size:100" json:"educationQualification,omitempty"`
	CoinsEarned            *int   `json:"coinsEarned,omitempty"`
	NumsOfQuizAttended     *int   `json:"numsOfQuizAttended,omitempty"`
}

func (User) TableName() string {
	return "users"
}
