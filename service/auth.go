package service

import (
	"errors"
	"time"

	dmn "github.com/beka-birhanu/vinom-solver/domain"
	"github.com/beka-birhanu/vinom-solver/service/i"
	"github.com/google/uuid"
)

const tokenLifetime = 24 * time.Hour

// Auth implements user registration and sign-in on top of the user
// repository and the tokenizer.
type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
}

// NewAuthService creates an Auth service.
func NewAuthService(userRepo i.UserRepo, tokenizer i.Tokenizer) (*Auth, error) {
	if userRepo == nil || tokenizer == nil {
		return nil, errors.New("auth service requires a user repo and a tokenizer")
	}
	return &Auth{
		userRepo:  userRepo,
		tokenizer: tokenizer,
	}, nil
}

// Register creates a new user account.
func (a *Auth) Register(username, password string) error {
	user, err := dmn.NewUser(dmn.UserConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	})
	if err != nil {
		return err
	}

	return a.userRepo.Save(user)
}

// SignIn verifies the credentials and returns the user with a fresh token.
func (a *Auth) SignIn(username, password string) (*dmn.User, string, error) {
	user, err := a.userRepo.ByUsername(username)
	if err != nil {
		return nil, "", errors.New("invalid username or password")
	}

	if !user.VerifyPassword(password) {
		return nil, "", errors.New("invalid username or password")
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"userID":   user.ID.String(),
		"username": user.Username,
	}, tokenLifetime)

	return user, token, err
}
