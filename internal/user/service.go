package user

import (
	"context"
	"errors"
	"strings"

	"kinetica/internal/apperr"
	"kinetica/internal/auth"
	"kinetica/internal/db"
	"kinetica/internal/gym"
	"kinetica/internal/logger"
	"kinetica/internal/metrics"

	"github.com/jmoiron/sqlx"
)

var (
	errEmailRegistered    = apperr.Conflict("Email already registered")
	errInvalidCredentials = apperr.Unauthenticated("Invalid credentials")
	errInvalidRefresh     = apperr.Unauthenticated("Invalid or expired refresh token")
	errTrainerNotFound    = apperr.NotFound("Trainer not found")
	errUserNotFound       = apperr.NotFound("User not found")
)

// Revoker invalidates an access token before it expires.
type Revoker interface {
	Revoke(ctx context.Context, claims *auth.JWTClaims) error
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error)
	Logout(ctx context.Context, claims *auth.JWTClaims) error
	Me(ctx context.Context, id auth.Identity) (*User, error)
	ListTrainers(ctx context.Context, id auth.Identity) ([]User, error)
	CreateTrainer(ctx context.Context, id auth.Identity, req CreateTrainerRequest) (*User, error)
	UpdateTrainer(ctx context.Context, id auth.Identity, trainerID int, req UpdateTrainerRequest) (*User, error)
}

type service struct {
	repo    Repository
	gyms    gym.Repository
	tx      db.Transactor
	tokens  *auth.Tokens
	revoker Revoker
}

func NewService(repo Repository, gyms gym.Repository, tx db.Transactor, tokens *auth.Tokens, revoker Revoker) Service {
	return &service{
		repo:    repo,
		gyms:    gyms,
		tx:      tx,
		tokens:  tokens,
		revoker: revoker,
	}
}

// Register creates a gym and its owner together.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		metrics.RecordAuthAttempt("register", false)
		return nil, errEmailRegistered
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	gymType := req.GymType
	if gymType == "" {
		gymType = gym.TypeGym
	}

	var owner *User
	err = s.tx.WithTx(ctx, func(tx sqlx.ExtContext) error {
		g, err := s.gyms.Create(ctx, tx, req.GymName, gymType)
		if err != nil {
			return err
		}

		owner, err = s.repo.Create(ctx, tx, &User{
			GymID:        g.ID,
			Email:        email,
			PasswordHash: passwordHash,
			Name:         req.Name,
			Role:         auth.RoleOwner,
			Phone:        req.Phone,
		})
		return err
	})
	if errors.Is(err, ErrEmailTaken) {
		metrics.RecordAuthAttempt("register", false)
		return nil, errEmailRegistered
	}
	if err != nil {
		return nil, err
	}

	metrics.RecordAuthAttempt("register", true)
	logger.Info("gym registered", "gym_id", owner.GymID, "owner_id", owner.ID)

	return owner, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, ErrUserNotFound) {
		metrics.RecordAuthAttempt("login", false)
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.IsActive || !auth.CheckPassword(user.PasswordHash, req.Password) {
		metrics.RecordAuthAttempt("login", false)
		return nil, errInvalidCredentials
	}

	accessToken, refreshToken, err := s.tokens.Generate(user.Identity())
	if err != nil {
		return nil, err
	}

	metrics.RecordAuthAttempt("login", true)

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		User:         *user,
	}, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	_, claims, err := s.tokens.Refresh(refreshToken)
	if err != nil {
		metrics.RecordAuthAttempt("refresh", false)
		return nil, errInvalidRefresh
	}

	// The identity is re-read so a deactivated user cannot keep refreshing.
	user, err := s.repo.FindByID(ctx, claims.UserID)
	if errors.Is(err, ErrUserNotFound) {
		metrics.RecordAuthAttempt("refresh", false)
		return nil, errInvalidRefresh
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		metrics.RecordAuthAttempt("refresh", false)
		return nil, errInvalidRefresh
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.Identity())
	if err != nil {
		return nil, err
	}

	metrics.RecordAuthAttempt("refresh", true)

	return &RefreshResponse{AccessToken: accessToken, TokenType: "bearer"}, nil
}

func (s *service) Logout(ctx context.Context, claims *auth.JWTClaims) error {
	return s.revoker.Revoke(ctx, claims)
}

func (s *service) Me(ctx context.Context, id auth.Identity) (*User, error) {
	user, err := s.repo.FindInGym(ctx, id.GymID, id.UserID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, errUserNotFound
	}
	return user, err
}

func (s *service) ListTrainers(ctx context.Context, id auth.Identity) ([]User, error) {
	return s.repo.ListTrainers(ctx, id.GymID)
}

func (s *service) CreateTrainer(ctx context.Context, id auth.Identity, req CreateTrainerRequest) (*User, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errEmailRegistered
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	trainer, err := s.repo.Create(ctx, nil, &User{
		GymID:        id.GymID,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Role:         auth.RoleTrainer,
		Phone:        req.Phone,
	})
	if errors.Is(err, ErrEmailTaken) {
		return nil, errEmailRegistered
	}
	return trainer, err
}

func (s *service) UpdateTrainer(ctx context.Context, id auth.Identity, trainerID int, req UpdateTrainerRequest) (*User, error) {
	trainer, err := s.repo.FindInGym(ctx, id.GymID, trainerID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, errTrainerNotFound
	}
	if err != nil {
		return nil, err
	}
	if trainer.Role != auth.RoleTrainer {
		return nil, errTrainerNotFound
	}

	updated, err := s.repo.Update(ctx, id.GymID, trainerID, req)
	if errors.Is(err, ErrUserNotFound) {
		return nil, errTrainerNotFound
	}
	return updated, err
}

// ActiveCheck rejects tokens whose user no longer exists, is inactive, or
// has moved out of the gym named in the token.
func ActiveCheck(repo Repository) auth.TokenCheck {
	return func(ctx context.Context, claims *auth.JWTClaims) error {
		user, err := repo.FindByID(ctx, claims.UserID)
		if err != nil {
			return err
		}
		if !user.IsActive || user.GymID != claims.GymID || user.Role != claims.Role {
			return ErrUserNotFound
		}
		return nil
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
