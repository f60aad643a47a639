package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/usecase"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/apperror"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func testTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", time.Hour)
}

func appErrorCode(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := err.(*apperror.AppError)
	if !ok {
		t.Fatalf("expected *apperror.AppError, got %T", err)
	}
	return appErr.Code
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	newUser := func() *domain.User {
		return &domain.User{
			Email:          "jane@example.com",
			Name:           "Jane Doe",
			GraduationYear: 2020,
			Major:          "CSE",
			Degree:         "Bachelors",
			University:     "State University",
		}
	}

	t.Run("Should reject duplicate email", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, testTokens())

		mockRepo.On("GetByEmail", ctx, "jane@example.com").Return(&domain.User{ID: "u1"}, nil)

		_, err := uc.Register(ctx, newUser(), "password123")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
		assert.Contains(t, err.Error(), "Email already registered")
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Should hash the password and issue a token", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, testTokens())

		mockRepo.On("GetByEmail", ctx, "jane@example.com").Return(nil, domain.ErrNotFound)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			assert.NotEmpty(t, u.ID)
			assert.NotEqual(t, "password123", u.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")))
		})

		token, err := uc.Register(ctx, newUser(), "password123")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should require the mandatory fields", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, testTokens())

		_, err := uc.Register(ctx, &domain.User{Email: "jane@example.com"}, "")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	stored := &domain.User{ID: "u1", Email: "jane@example.com", PasswordHash: string(hash)}

	t.Run("Should issue a token for valid credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, testTokens())
		mockRepo.On("GetByEmail", ctx, "jane@example.com").Return(stored, nil)

		token, err := uc.Login(ctx, "jane@example.com", "correct-horse")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := testTokens().Parse(token)
		assert.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
	})

	t.Run("Should reject a wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, testTokens())
		mockRepo.On("GetByEmail", ctx, "jane@example.com").Return(stored, nil)

		_, err := uc.Login(ctx, "jane@example.com", "wrong")
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, appErrorCode(t, err))
		assert.Contains(t, err.Error(), "Invalid credentials")
	})

	t.Run("Should not reveal whether the email exists", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, testTokens())
		mockRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrNotFound)

		_, err := uc.Login(ctx, "nobody@example.com", "whatever")
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, appErrorCode(t, err))
		assert.Contains(t, err.Error(), "Invalid credentials")
	})
}
