package service

import (
	"quiz_app_backend/internal/model"
	"quiz_app_backend/internal/repository"
)

// UserService owns the lifetime counters on user rows. The counters are
// nullable in the schema, so every bump goes through the same
// increment-from-zero rule: a nil (or zero) counter becomes the seed value,
// anything else gets the step added.
type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func bumpCounter(counter **int, seed, step int) {
	if *counter == nil || **counter == 0 {
		v := seed
		*counter = &v
		return
	}
	**counter += step
}

func (s *UserService) IncrementQuestionsCreated(teacherID uint) error {
	user, err := s.UserRepo.FindByID(teacherID)
	if err != nil {
		return asNotFound(err, "user", teacherID)
	}
	if user.Role != model.Teacher {
		return nil
	}
	bumpCounter(&user.NumsOfQuestionsCreated, 1, 1)
	return s.UserRepo.Update(user)
}

func (s *UserService) IncrementQuizzesCreated(teacherID uint) error {
	user, err := s.UserRepo.FindByID(teacherID)
	if err != nil {
		return asNotFound(err, "user", teacherID)
	}
	if user.Role != model.Teacher {
		return nil
	}
	bumpCounter(&user.NumsOfQuizCreated, 1, 1)
	return s.UserRepo.Update(user)
}

func (s *UserService) IncrementQuizzesAttended(studentID uint) error {
	user, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		return asNotFound(err, "user", studentID)
	}
	if user.Role != model.Student {
		return nil
	}
	bumpCounter(&user.NumsOfQuizAttended, 1, 1)
	return s.UserRepo.Update(user)
}

// AwardCoins applies the perfect-score reward: the first award is 10 coins,
// every later one adds 5.
func (s *UserService) AwardCoins(studentID uint) error {
	user, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		return asNotFound(err, "user", studentID)
	}
	if user.Role != model.Student {
		return nil
	}
	bumpCounter(&user.CoinsEarned, 10, 5)
	return s.UserRepo.Update(user)
}
