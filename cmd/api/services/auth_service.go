package services

import (
	"context"
	"errors"
	"fmt"

	"bloglist/cmd/api/auth"
	"bloglist/cmd/api/dto"
	"bloglist/models"
	"bloglist/repositories"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService struct {
	users      UserStore
	jwtManager *auth.JWTManager
}

func NewAuthService(users UserStore, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		users:      users,
		jwtManager: jwtManager,
	}
}

// Login checks the credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (dto.LoginResponseDTO, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return dto.LoginResponseDTO{}, ErrInvalidCredentials
	}
	if err != nil {
		return dto.LoginResponseDTO{}, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return dto.LoginResponseDTO{}, ErrInvalidCredentials
	}

	token, err := s.jwtManager.Sign(u.ID.Hex(), u.Username)
	if err != nil {
		return dto.LoginResponseDTO{}, fmt.Errorf("jwt sign: %w", err)
	}
	return dto.LoginResponseDTO{Token: token, Username: u.Username, Name: u.Name}, nil
}

// Authenticate resolves an access token to the stored user it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, _, err := s.jwtManager.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	id, err := repositories.ParseID(userID)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, auth.ErrUnknownUser
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
