package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/apperror"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens *auth.TokenManager) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, tokens: tokens}
}

func (u *authUsecase) Register(ctx context.Context, user *domain.User, password string) (string, error) {
	if user.Email == "" || password == "" || user.Name == "" {
		return "", apperror.BadRequest("Name, email and password are required")
	}

	existing, err := u.userRepo.GetByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", apperror.Internal(err)
	}
	if existing != nil {
		return "", apperror.BadRequest("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.Internal(err)
	}

	user.ID = uuid.NewString()
	user.PasswordHash = string(hash)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	if err := u.userRepo.Create(ctx, user); err != nil {
		return "", apperror.Internal(err)
	}

	token, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return token, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperror.BadRequest("Email and password are required")
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", apperror.Unauthorized("Invalid credentials")
		}
		return "", apperror.Internal(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", apperror.Unauthorized("Invalid credentials")
	}

	token, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return token, nil
}
