package auth

import (
	"context"
	"errors"
	"log/slog"

	"productapi/internal/model"
	"productapi/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	users  storage.UserStore
	tokens *Tokens
	cost   int
}

// NewService builds the auth service. A cost of 0 selects bcrypt.DefaultCost.
func NewService(users storage.UserStore, tokens *Tokens, cost int) *Service {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{users: users, tokens: tokens, cost: cost}
}

// Register creates a user and returns a session token for it.
// Username uniqueness is enforced by the store in the same write as the insert.
func (s *Service) Register(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrValidation
	}

	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return "", &OpError{Op: OpRegister, Err: err}
	}

	user := &model.User{ID: storage.NewID(), Username: username, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return "", ErrUserExists
		}
		return "", &OpError{Op: OpRegister, Err: err}
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", &OpError{Op: OpRegister, Err: err}
	}
	slog.InfoContext(ctx, "user registered", "user_id", user.ID)
	return token, nil
}

// Login checks the credentials and returns a fresh session token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", &OpError{Op: OpLogin, Err: err}
	}
	if !CheckPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", &OpError{Op: OpLogin, Err: err}
	}
	return token, nil
}
