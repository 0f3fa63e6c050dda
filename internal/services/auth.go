package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/routesettings-backend/internal/data/repos"
	types "github.com/yungbote/routesettings-backend/internal/domain"
	"github.com/yungbote/routesettings-backend/internal/platform/dbctx"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
	"github.com/yungbote/routesettings-backend/internal/platform/offload"
)

// AuthResult carries the outcome of an asynchronous credential check.
type AuthResult struct {
	User *types.User
	Err  error
}

type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*types.User, error)
	AuthenticateAsync(ctx context.Context, username, password string) <-chan AuthResult
	ActiveUser(ctx context.Context, userID uuid.UUID) (*types.User, error)
	ActiveUserAsync(ctx context.Context, userID uuid.UUID) <-chan AuthResult
	CreateUser(ctx context.Context, username, password string, active bool) (*types.User, error)
	SetActive(ctx context.Context, username string, active bool) error
}

type authService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	pool     *offload.Pool
	cost     int
}

// dummyHash keeps unknown usernames on the same bcrypt path as wrong passwords.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("routesettings-dummy"), bcrypt.MinCost)

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, pool *offload.Pool, bcryptCost int) AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		db:       db,
		log:      log.With("service", "AuthService"),
		userRepo: userRepo,
		pool:     pool,
		cost:     bcryptCost,
	}
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (*types.User, error) {
	u, err := s.userRepo.GetByUsername(dbctx.Context{Ctx: ctx}, username)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrInactiveAccount
	}
	return u, nil
}

func (s *authService) AuthenticateAsync(ctx context.Context, username, password string) <-chan AuthResult {
	return s.async(ctx, func(ctx context.Context) (*types.User, error) {
		return s.Authenticate(ctx, username, password)
	})
}

// ActiveUser resolves a session principal. Deleted and disabled users
// yield ErrInvalidCredentials and ErrInactiveAccount respectively.
func (s *authService) ActiveUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidCredentials
	}
	users, err := s.userRepo.GetByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrInvalidCredentials
	}
	if !users[0].IsActive {
		return nil, ErrInactiveAccount
	}
	return users[0], nil
}

func (s *authService) ActiveUserAsync(ctx context.Context, userID uuid.UUID) <-chan AuthResult {
	return s.async(ctx, func(ctx context.Context) (*types.User, error) {
		return s.ActiveUser(ctx, userID)
	})
}

func (s *authService) async(ctx context.Context, fn func(ctx context.Context) (*types.User, error)) <-chan AuthResult {
	out := make(chan AuthResult, 1)
	go func() {
		u, err := offload.Value(ctx, s.pool, fn)
		out <- AuthResult{User: u, Err: err}
	}()
	return out
}

func (s *authService) CreateUser(ctx context.Context, username, password string, active bool) (*types.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(username) > 150 {
		return nil, validationf("username must be 1 to 150 characters")
	}
	if password == "" {
		return nil, validationf("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var created *types.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		exists, err := s.userRepo.UsernameExists(dbc, username)
		if err != nil {
			return err
		}
		if exists {
			return validationf("username %q is taken", username)
		}
		users, err := s.userRepo.Create(dbc, []*types.User{{
			Username: username,
			Password: string(hash),
			IsActive: active,
		}})
		if err != nil {
			return err
		}
		created = users[0]
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	s.log.Info("user created", "username", username, "user_id", created.ID, "active", active)
	return created, nil
}

func (s *authService) SetActive(ctx context.Context, username string, active bool) error {
	dbc := dbctx.Context{Ctx: ctx}
	u, err := s.userRepo.GetByUsername(dbc, username)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	if err := s.userRepo.SetActive(dbc, u.ID, active); err != nil {
		return err
	}
	s.log.Info("user activation changed", "username", username, "active", active)
	return nil
}

// IsCredentialError reports whether err is a login failure to show the user.
func IsCredentialError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrInactiveAccount)
}
