package service

import (
	"errors"
	"testing"

	"quiz_app_backend/internal/model"
	"quiz_app_backend/internal/util"
)

func TestAddQuestionBumpsTeacherCounter(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser("teacher", model.Teacher)

	env.createMCQ(teacher.ID, "2", "A")
	env.createFillUps(teacher.ID, "3", "x")

	user := env.reloadUser(teacher.ID)
	if user.NumsOfQuestionsCreated == nil || *user.NumsOfQuestionsCreated != 2 {
		t.Fatalf("questions created = %v, want 2", user.NumsOfQuestionsCreated)
	}
}

func TestUpdateQuestionOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser("owner", model.Teacher)
	other := env.createUser("other", model.Teacher)
	q := env.createMCQ(owner.ID, "2", "A")

	newText := "changed"
	_, err := env.questions.UpdateMCQQuestion(other.ID, q.ID, MCQUpdateRequest{QuestionText: &newText})
	if !errors.Is(err, util.ErrNotQuestionOwner) {
		t.Fatalf("foreign update err = %v, want ErrNotQuestionOwner", err)
	}

	updated, err := env.questions.UpdateMCQQuestion(owner.ID, q.ID, MCQUpdateRequest{QuestionText: &newText})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.QuestionText != "changed" {
		t.Errorf("text = %q, want changed", updated.QuestionText)
	}
	if updated.CorrectChoice != "A" {
		t.Errorf("correct choice = %q, untouched fields must survive a patch", updated.CorrectChoice)
	}
}

func TestUpdateQuestionTypeMismatch(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser("teacher", model.Teacher)
	q := env.createFillUps(teacher.ID, "2", "x")

	newText := "changed"
	_, err := env.questions.UpdateMCQQuestion(teacher.ID, q.ID, MCQUpdateRequest{QuestionText: &newText})
	var nf *util.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("mismatched update err = %v, want NotFoundError", err)
	}
}

func TestSoftDeleteAndRestoreQuestion(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser("teacher", model.Teacher)
	q := env.createMCQ(teacher.ID, "2", "A")

	if err := env.questions.SoftDeleteQuestion(teacher.ID, q.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	active, err := env.questions.GetAllQuestions()
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active questions = %d, want 0 after soft delete", len(active))
	}

	deleted, err := env.questions.GetSoftDeletedQuestions()
	if err != nil {
		t.Fatalf("list deleted: %v", err)
	}
	if len(deleted) != 1 {
		t.Fatalf("deleted questions = %d, want 1", len(deleted))
	}

	if err := env.questions.RestoreQuestion(teacher.ID, q.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}
	active, _ = env.questions.GetAllQuestions()
	if len(active) != 1 {
		t.Errorf("active questions = %d, want 1 after restore", len(active))
	}
}

func TestListQuestionsByType(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser("teacher", model.Teacher)
	env.createMCQ(teacher.ID, "2", "A")
	env.createMCQ(teacher.ID, "2", "B")
	env.createFillUps(teacher.ID, "3", "x")

	mcqs, err := env.questions.GetAllMCQQuestions()
	if err != nil {
		t.Fatalf("list mcqs: %v", err)
	}
	if len(mcqs) != 2 {
		t.Errorf("mcqs = %d, want 2", len(mcqs))
	}

	fillups, err := env.questions.GetAllFillUpsQuestions()
	if err != nil {
		t.Fatalf("list fillups: %v", err)
	}
	if len(fillups) != 1 {
		t.Errorf("fillups = %d, want 1", len(fillups))
	}
}

func TestDeleteQuestionPermanently(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser("teacher", model.Teacher)
	q := env.createMCQ(teacher.ID, "2", "A")

	if err := env.questions.DeleteQuestion(teacher.ID, q.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err := env.questions.GetQuestion(q.ID)
	var nf *util.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("get after delete err = %v, want NotFoundError", err)
	}

	deleted, _ := env.questions.GetSoftDeletedQuestions()
	if len(deleted) != 0 {
		t.Errorf("hard delete must not leave a soft-deleted row, got %d", len(deleted))
	}
}
