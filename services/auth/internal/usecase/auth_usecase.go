package usecase

import (
	"errors"
	"fmt"
	"strings"

	"blogicum/pkg/jwt"
	"blogicum/pkg/logger"
	"blogicum/services/auth/internal/entity"
	"blogicum/services/auth/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Register(username, email, password, firstName, lastName string) (*entity.User, string, error)
	Login(username, password string) (*entity.User, string, error)
	GetUser(userID string) (*entity.User, error)
	UpdateProfile(userID string, update entity.ProfileUpdate) (*entity.User, string, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	logger     *logger.Logger
}

func NewAuthUseCase(userRepo persistent.UserRepository, jwtService *jwt.Service, logger *logger.Logger) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (uc *authUseCase) Register(username, email, password, firstName, lastName string) (*entity.User, string, error) {
	username = strings.TrimSpace(username)

	_, err := uc.userRepo.GetByUsername(username)
	if err == nil {
		return nil, "", entity.ErrUsernameTaken
	}
	if !errors.Is(err, entity.ErrNotFound) {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	user := &entity.User{
		Username:     username,
		Email:        strings.TrimSpace(email),
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hashedPassword),
	}

	if err := uc.userRepo.Create(user); err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", fmt.Errorf("failed to create user")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	uc.logger.Info("Registered user %s", user.Username)
	return user, token, nil
}

func (uc *authUseCase) Login(username, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	token, err := uc.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	return user, token, nil
}

func (uc *authUseCase) GetUser(userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(userID)
}

// UpdateProfile edits the profile and issues a fresh token, since the
// username is part of the claims.
func (uc *authUseCase) UpdateProfile(userID string, update entity.ProfileUpdate) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, "", err
	}

	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if username != user.Username {
			existing, err := uc.userRepo.GetByUsername(username)
			if err == nil && existing.ID != user.ID {
				return nil, "", entity.ErrUsernameTaken
			}
			if err != nil && !errors.Is(err, entity.ErrNotFound) {
				return nil, "", err
			}
			user.Username = username
		}
	}
	if update.Email != nil {
		user.Email = strings.TrimSpace(*update.Email)
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}

	if err := uc.userRepo.Update(user); err != nil {
		return nil, "", err
	}

	token, err := uc.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}
	return user, token, nil
}
