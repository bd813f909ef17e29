package services

import (
	"context"
	"errors"
	"fmt"

	"bloglist/cmd/api/auth"
	"bloglist/cmd/api/dto"
	"bloglist/models"
)

const (
	minUsernameLength = 3
	minPasswordLength = 3
)

var (
	ErrUsernameTooShort = fmt.Errorf("username must be at least %d characters long", minUsernameLength)
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters long", minPasswordLength)
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

type RegisterInput struct {
	Username string
	Name     string
	Password string
}

// Register creates a user with a bcrypt hashed password.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (dto.UserDTO, error) {
	if len(in.Username) < minUsernameLength {
		return dto.UserDTO{}, ErrUsernameTooShort
	}
	if len(in.Password) < minPasswordLength {
		return dto.UserDTO{}, ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return dto.UserDTO{}, fmt.Errorf("hash password: %w", err)
	}
	u := &models.User{
		Username:     in.Username,
		Name:         in.Name,
		PasswordHash: hash,
	}
	if err := s.users.Insert(ctx, u); err != nil {
		return dto.UserDTO{}, err
	}
	return dto.NewUserDTO(*u), nil
}

// List returns every user with their blogs expanded.
func (s *UserService) List(ctx context.Context) ([]dto.PopulatedUserDTO, error) {
	items, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PopulatedUserDTO, 0, len(items))
	for _, u := range items {
		out = append(out, dto.NewPopulatedUserDTO(u))
	}
	return out, nil
}

// IsInvalidUserInput reports whether err comes from bad registration input.
func IsInvalidUserInput(err error) bool {
	return errors.Is(err, ErrUsernameTooShort) || errors.Is(err, ErrPasswordTooShort)
}
