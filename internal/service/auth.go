package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dtroode/studentinfo-server/internal/logger"
	"github.com/dtroode/studentinfo-server/internal/metrics"
	"github.com/dtroode/studentinfo-server/internal/model"
	"github.com/dtroode/studentinfo-server/internal/validation"
)

// dummyPassword is hashed once and verified against when the username is unknown,
// so both rejection paths cost one hash comparison.
const dummyPassword = "studentinfo-dummy-password"

type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenManager model.TokenManager
	tokenTTL     time.Duration
	validator    *validation.Validator
	metrics      *metrics.Metrics
	logger       *logger.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	tokenTTL time.Duration,
	validator *validation.Validator,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenManager: tokenManager,
		tokenTTL:     tokenTTL,
		validator:    validator,
		metrics:      metrics,
		logger:       logger,
	}
}

// Register creates a new active user and returns its public view.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.PublicUser, error) {
	a.logger.Debug("Auth service: starting user registration",
		"username", params.Username)

	if err := a.validator.Struct(params); err != nil {
		return model.PublicUser{}, err
	}

	_, err := a.userStore.GetByUsername(ctx, params.Username)
	switch {
	case err == nil:
		a.logger.Info("Auth service: username already registered",
			"username", params.Username)
		return model.PublicUser{}, model.ErrDuplicateUsername
	case !errors.Is(err, model.ErrNotFound):
		a.logger.Error("Auth service: failed to get user by username",
			"username", params.Username,
			"error", err.Error())
		return model.PublicUser{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		Username:       params.Username,
		Email:          params.Email,
		FullName:       params.FullName,
		Disabled:       false,
		HashedPassword: hash,
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateUsername) {
			a.logger.Info("Auth service: username registered concurrently",
				"username", params.Username)
			return model.PublicUser{}, model.ErrDuplicateUsername
		}
		a.logger.Error("Auth service: failed to create user",
			"username", params.Username,
			"error", err.Error())
		return model.PublicUser{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"username", user.Username)

	return user.Public(), nil
}

// Login verifies credentials and issues an access token.
// Unknown usernames and wrong passwords both yield model.ErrInvalidCredentials.
func (a *Auth) Login(ctx context.Context, username, password string) (model.Token, error) {
	a.logger.Debug("Auth service: processing login",
		"username", username)

	user, err := a.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.hasher.Verify(password, a.getDummyHash())
			a.metrics.RecordLogin(metrics.OutcomeInvalidCredentials)
			a.logger.Info("Auth service: login rejected",
				"username", username)
			return model.Token{}, model.ErrInvalidCredentials
		}
		a.metrics.RecordLogin(metrics.OutcomeError)
		a.logger.Error("Auth service: failed to get user by username",
			"username", username,
			"error", err.Error())
		return model.Token{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if !a.hasher.Verify(password, user.HashedPassword) {
		a.metrics.RecordLogin(metrics.OutcomeInvalidCredentials)
		a.logger.Info("Auth service: login rejected",
			"username", username)
		return model.Token{}, model.ErrInvalidCredentials
	}

	accessToken, err := a.tokenManager.Issue(user.Username, a.tokenTTL)
	if err != nil {
		a.metrics.RecordLogin(metrics.OutcomeError)
		a.logger.Error("Auth service: failed to issue access token",
			"username", username,
			"error", err.Error())
		return model.Token{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	a.metrics.RecordLogin(metrics.OutcomeSuccess)
	a.logger.Info("Auth service: login succeeded",
		"username", username)

	return model.Token{
		AccessToken: accessToken,
		TokenType:   model.TokenTypeBearer,
	}, nil
}

// Authenticate verifies the token and resolves the current user record.
func (a *Auth) Authenticate(ctx context.Context, token string) (model.User, error) {
	username, err := a.tokenManager.Parse(token)
	if err != nil {
		a.metrics.RecordVerification(metrics.OutcomeRejected)
		a.logger.Debug("Auth service: token rejected",
			"error", err.Error())
		return model.User{}, err
	}

	user, err := a.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.metrics.RecordVerification(metrics.OutcomeRejected)
			a.logger.Info("Auth service: token subject unknown",
				"username", username)
			return model.User{}, model.ErrUnknownSubject
		}
		a.metrics.RecordVerification(metrics.OutcomeError)
		a.logger.Error("Auth service: failed to get user by username",
			"username", username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if user.Disabled {
		a.metrics.RecordVerification(metrics.OutcomeRejected)
		a.logger.Info("Auth service: user is disabled",
			"username", username)
		return model.User{}, model.ErrUserDisabled
	}

	a.metrics.RecordVerification(metrics.OutcomeSuccess)

	return user, nil
}

func (a *Auth) getDummyHash() string {
	a.dummyOnce.Do(func() {
		hash, err := a.hasher.Hash(dummyPassword)
		if err != nil {
			a.logger.Error("Auth service: failed to prepare dummy hash",
				"error", err.Error())
			return
		}
		a.dummyHash = hash
	})
	return a.dummyHash
}
