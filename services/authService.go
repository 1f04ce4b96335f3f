package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"MediTrack/models"
	"MediTrack/repositories"
	"MediTrack/utils"
)

// LoginResult is returned on a successful login.
type LoginResult struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        *models.User `json:"user"`
}

type UserService interface {
	Login(ctx context.Context, credentials models.Credentials) (*LoginResult, error)
	GetUserByID(ctx context.Context, userID uint) (*models.User, error)
	ValidateAndCreateUser(ctx context.Context, username, password, role string) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
	tokens   *utils.TokenMaker
}

func NewUserService(userRepo repositories.UserRepository, tokens *utils.TokenMaker) UserService {
	return &userService{userRepo: userRepo, tokens: tokens}
}

func (s *userService) Login(ctx context.Context, credentials models.Credentials) (*LoginResult, error) {
	username := strings.TrimSpace(credentials.Username)
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPassword(user.PasswordHash, credentials.Password) {
		log.Info().Str("username", username).Msg("login rejected")
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *userService) ValidateAndCreateUser(ctx context.Context, username, password, role string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if err := utils.ValidateUserData(username, password, role); err != nil {
		return nil, validationError(err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Username: username, PasswordHash: hash, Role: role}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
