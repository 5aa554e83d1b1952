package service

import (
	"testing"

	"quiz_app_backend/internal/model"
)

func TestBumpCounter(t *testing.T) {
	tests := []struct {
		name    string
		initial *int
		seed    int
		step    int
		want    int
	}{
		{"nil starts at seed", nil, 10, 5, 10},
		{"zero starts at seed", intPtr(0), 10, 5, 10},
		{"existing adds step", intPtr(10), 10, 5, 15},
		{"unit counter from nil", nil, 1, 1, 1},
		{"unit counter increments", intPtr(3), 1, 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := tt.initial
			bumpCounter(&counter, tt.seed, tt.step)
			if counter == nil || *counter != tt.want {
				t.Errorf("counter = %v, want %d", counter, tt.want)
			}
		})
	}
}

func TestCounterGuardsIgnoreWrongRole(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser("student", model.Student)
	teacher := env.createUser("teacher", model.Teacher)

	// Teacher counters never move for students, and vice versa.
	if err := env.users.IncrementQuizzesCreated(student.ID); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if err := env.users.AwardCoins(teacher.ID); err != nil {
		t.Fatalf("award: %v", err)
	}

	if u := env.reloadUser(student.ID); u.NumsOfQuizCreated != nil {
		t.Errorf("student quiz-created counter = %v, want nil", u.NumsOfQuizCreated)
	}
	if u := env.reloadUser(teacher.ID); u.CoinsEarned != nil {
		t.Errorf("teacher coins = %v, want nil", u.CoinsEarned)
	}
}

func TestAwardCoinsProgression(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser("student", model.Student)

	want := []int{10, 15, 20}
	for i, expected := range want {
		if err := env.users.AwardCoins(student.ID); err != nil {
			t.Fatalf("award %d: %v", i+1, err)
		}
		u := env.reloadUser(student.ID)
		if u.CoinsEarned == nil || *u.CoinsEarned != expected {
			t.Fatalf("coins after award %d = %v, want %d", i+1, u.CoinsEarned, expected)
		}
	}
}
