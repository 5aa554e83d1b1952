package util

import (
	"errors"
	"fmt"
)

var (
	ErrEmailRegistered    = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrNotQuestionOwner = errors.New("only the creator can modify this question")
	ErrNotQuizOwner     = errors.New("only the creator can modify this quiz")

	ErrQuizAlreadyStarted = errors.New("quiz already started and multiple attempts are not allowed")
	ErrQuizNotStarted     = errors.New("quiz not started")
	ErrQuestionNotInQuiz  = errors.New("question is not part of the quiz")
	ErrAlreadyAnswered    = errors.New("question already answered in this attempt")
	ErrTimeLimitExceeded  = errors.New("time limit for the quiz has been exceeded")
)

// NotFoundError is the typed lookup failure for every entity kind; callers
// match it with errors.As and map it to 404.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

func NewNotFoundError(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}
