package service

import (
	"context"

	"pinboard/internal/models"
	"pinboard/internal/repository"
	"pinboard/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
}

type SignupInput struct {
	Nickname        string
	Password        string
	ConfirmPassword string
}

type LoginInput struct {
	Nickname string
	Password string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Signup registers a new account. Missing fields are a request-shape
// problem; everything else about the credentials is a semantic rule and
// reported as a precondition failure, except nickname uniqueness which
// only the store can decide.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if in.Nickname == "" || in.Password == "" || in.ConfirmPassword == "" {
		return nil, models.NewValidationError("Nickname, password and password confirmation are required")
	}
	if err := validation.ValidateNickname(in.Nickname); err != nil {
		return nil, models.NewPreconditionError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password, in.Nickname); err != nil {
		return nil, models.NewPreconditionError(err.Error())
	}
	if in.Password != in.ConfirmPassword {
		return nil, models.NewPreconditionError("Password confirmation does not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Nickname: in.Nickname,
		Password: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if models.IsConflict(err) {
			return nil, models.NewConflictError("Nickname is already taken")
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns the account. An unknown
// nickname and a wrong password produce the same response so the
// endpoint does not reveal which nicknames exist.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	if in.Nickname == "" || in.Password == "" {
		return nil, models.NewValidationError("Nickname and password are required")
	}

	user, err := s.userRepo.GetByNickname(ctx, in.Nickname)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, models.NewPreconditionError("Nickname or password is incorrect")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewPreconditionError("Nickname or password is incorrect")
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
