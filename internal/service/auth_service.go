package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vinculodevida/lactario/internal/domain"
	"github.com/vinculodevida/lactario/pkg/auth"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error

	// GetByName retrieves a user by exact name match with the role joined.
	GetByName(ctx context.Context, name string) (*domain.User, error)

	GetByID(ctx context.Context, id uint) (*domain.User, error)

	Update(ctx context.Context, u *domain.User) error

	Delete(ctx context.Context, id uint) error

	List(ctx context.Context) ([]UserListing, error)
}

// UserListing is one row of the user overview, joined with the role name.
type UserListing struct {
	ID       uint   `json:"id_usuario"`
	Name     string `json:"nombre"`
	Phone    string `json:"num_telefono"`
	RoleName string `json:"rol_nombre"`
}

type AuthService struct {
	users      UserRepository
	jwtManager *auth.JWTManager
	log        *zap.Logger
}

func NewAuthService(users UserRepository, jwtManager *auth.JWTManager, log *zap.Logger) *AuthService {
	return &AuthService{users: users, jwtManager: jwtManager, log: log}
}

// Login verifies a name/password pair and issues a token pair carrying
// the session identity. The outcome never reveals whether the username
// existed: missing input, unknown user, and wrong password all yield the
// same generic error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.TokenPair, *domain.Claims, error) {
	if username == "" || password == "" {
		return nil, nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByName(ctx, username)
	if err != nil {
		// Burn a bcrypt comparison so response time does not distinguish
		// an unknown user from a wrong password.
		_, _ = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("failed login attempt", zap.String("username", username))
		return nil, nil, ErrInvalidCredentials
	}

	claims := &domain.Claims{
		UserID: user.ID,
		Name:   user.Name,
		Role:   domain.RoleName(user.Role.Name),
	}

	pair, err := s.jwtManager.GenerateTokenPair(claims)
	if err != nil {
		s.log.Error("failed to generate token pair", zap.Error(err))
		return nil, nil, fmt.Errorf("generating tokens: %w", err)
	}

	s.log.Info("user logged in",
		zap.Uint("user_id", user.ID),
		zap.String("role", user.Role.Name),
	)

	return pair, claims, nil
}

// RefreshToken issues a new token pair given a valid refresh token.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// Re-validate the user still exists with the same role.
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.jwtManager.GenerateTokenPair(&domain.Claims{
		UserID: user.ID,
		Name:   user.Name,
		Role:   domain.RoleName(user.Role.Name),
	})
}
