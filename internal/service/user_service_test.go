package service

import (
	"context"
	"testing"

	"pinboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByNicknameFn func(context.Context, string) (*models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	return s.getByNicknameFn(ctx, nickname)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:       func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByNicknameFn: func(_ context.Context, _ string) (*models.User, error) { return &models.User{}, nil },
	}
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		input    SignupInput
		wantCode string
	}{
		{"missing nickname", SignupInput{Password: "1234", ConfirmPassword: "1234"}, models.CodeValidation},
		{"missing password", SignupInput{Nickname: "alice1", ConfirmPassword: "1234"}, models.CodeValidation},
		{"missing confirmation", SignupInput{Nickname: "alice1", Password: "1234"}, models.CodeValidation},
		{"nickname too short", SignupInput{Nickname: "ab", Password: "1234", ConfirmPassword: "1234"}, models.CodePrecondition},
		{"nickname with symbols", SignupInput{Nickname: "alice!", Password: "1234", ConfirmPassword: "1234"}, models.CodePrecondition},
		{"password too short", SignupInput{Nickname: "alice1", Password: "123", ConfirmPassword: "123"}, models.CodePrecondition},
		{"password contains nickname", SignupInput{Nickname: "alice1", Password: "xalice1x", ConfirmPassword: "xalice1x"}, models.CodePrecondition},
		{"confirmation mismatch", SignupInput{Nickname: "alice1", Password: "1234", ConfirmPassword: "1235"}, models.CodePrecondition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(noopUserRepo())
			_, err := svc.Signup(ctx, tt.input)
			assertCode(t, err, tt.wantCode)
		})
	}

	t.Run("Duplicate Nickname Conflict", func(t *testing.T) {
		repo := noopUserRepo()
		repo.createFn = func(_ context.Context, _ *models.User) error {
			return models.NewConflictError("duplicate")
		}
		svc := NewUserService(repo)
		_, err := svc.Signup(ctx, SignupInput{Nickname: "alice1", Password: "1234", ConfirmPassword: "1234"})
		assertCode(t, err, models.CodeConflict)
	})

	t.Run("Success Stores Hash", func(t *testing.T) {
		var created *models.User
		repo := noopUserRepo()
		repo.createFn = func(_ context.Context, user *models.User) error {
			user.ID = 1
			created = user
			return nil
		}
		svc := NewUserService(repo)
		user, err := svc.Signup(ctx, SignupInput{Nickname: "alice1", Password: "1234", ConfirmPassword: "1234"})
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
		assert.NotEqual(t, "1234", created.Password, "password must never be stored in clear")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("1234")))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("Missing Fields", func(t *testing.T) {
		svc := NewUserService(noopUserRepo())
		_, err := svc.Login(ctx, LoginInput{Nickname: "alice1"})
		assertCode(t, err, models.CodeValidation)
	})

	t.Run("Unknown Nickname", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByNicknameFn = func(_ context.Context, nickname string) (*models.User, error) {
			return nil, models.NewNotFoundError("User", nickname)
		}
		svc := NewUserService(repo)
		_, err := svc.Login(ctx, LoginInput{Nickname: "ghost", Password: "1234"})
		assertCode(t, err, models.CodePrecondition)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByNicknameFn = func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 1, Nickname: "alice1", Password: string(hash)}, nil
		}
		svc := NewUserService(repo)
		_, err := svc.Login(ctx, LoginInput{Nickname: "alice1", Password: "wrong"})
		assertCode(t, err, models.CodePrecondition)
	})

	t.Run("Success", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByNicknameFn = func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 1, Nickname: "alice1", Password: string(hash)}, nil
		}
		svc := NewUserService(repo)
		user, err := svc.Login(ctx, LoginInput{Nickname: "alice1", Password: "1234"})
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})
}
