package service

import (
	"errors"
	"fmt"
	"time"

	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	"github.com/beka-birhanu/vinom-maze/identity"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

const defaultTokenTTL = 24 * time.Hour

var ErrUsernameTaken = errors.New("username already taken")

// Auth registers players and signs them in with a token.
type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
	tokenTTL  time.Duration
	logger    general_i.Logger
}

// NewAuthService creates an Auth service. A non positive ttl falls back to a day.
func NewAuthService(ur i.UserRepo, t i.Tokenizer, ttl time.Duration, logger general_i.Logger) (*Auth, error) {
	if ur == nil || t == nil || logger == nil {
		return nil, fmt.Errorf("%w: user repo, tokenizer and logger are required", ErrMissingDependency)
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &Auth{
		userRepo:  ur,
		tokenizer: t,
		tokenTTL:  ttl,
		logger:    logger,
	}, nil
}

// Register creates a new player account.
func (a *Auth) Register(username, password string) error {
	if _, err := a.userRepo.ByUsername(username); err == nil {
		return ErrUsernameTaken
	}

	user, err := identity.NewUser(identity.UserConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	})
	if err != nil {
		return err
	}

	if err := a.userRepo.Save(user); err != nil {
		a.logger.Error(fmt.Sprintf("saving user %s: %s", username, err))
		return err
	}

	a.logger.Info(fmt.Sprintf("registered player %s (%s)", username, user.ID))
	return nil
}

// SignIn checks the credentials and returns the user with a fresh token.
func (a *Auth) SignIn(username, password string) (*identity.User, string, error) {
	user, err := a.userRepo.ByUsername(username)
	if err != nil {
		return nil, "", identity.ErrInvalidCredentials
	}

	if !user.VerifyPassword(password) {
		return nil, "", identity.ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"userID":   user.ID.String(),
		"username": user.Username,
	}, a.tokenTTL)
	if err != nil {
		a.logger.Error(fmt.Sprintf("generating token for %s: %s", username, err))
		return nil, "", err
	}

	return user, token, nil
}
