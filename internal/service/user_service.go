package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vinculodevida/lactario/internal/domain"
	"github.com/vinculodevida/lactario/internal/domain/visit"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrPhoneTaken   = errors.New("phone number is already registered")
)

type RegisterUserCommand struct {
	Name     string
	Phone    string
	Password string
	RoleID   uint
}

// UpdateUserCommand applies partial updates; empty strings and zero ids
// keep the stored value. The password is re-hashed only when supplied.
type UpdateUserCommand struct {
	Name     string
	Phone    string
	Password string
	RoleID   uint
}

type UserService struct {
	users  UserRepository
	visits visit.Repository
	tx     TxManager
	audit  AuditSink
	log    *zap.Logger
}

func NewUserService(users UserRepository, visits visit.Repository, tx TxManager, audit AuditSink, log *zap.Logger) *UserService {
	return &UserService{users: users, visits: visits, tx: tx, audit: audit, log: log}
}

func (s *UserService) RegisterUser(ctx context.Context, cmd *RegisterUserCommand, caller *domain.Claims, requestID string) (*domain.User, error) {
	var errs []string
	if strings.TrimSpace(cmd.Name) == "" {
		errs = append(errs, "nombre is required")
	}
	if strings.TrimSpace(cmd.Phone) == "" {
		errs = append(errs, "num_telefono is required")
	}
	if cmd.Password == "" {
		errs = append(errs, "contrasena is required")
	}
	if cmd.RoleID == 0 {
		errs = append(errs, "id_rol is required")
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &domain.User{
		Name:         strings.TrimSpace(cmd.Name),
		Phone:        strings.TrimSpace(cmd.Phone),
		PasswordHash: string(hash),
		RoleID:       cmd.RoleID,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, ErrPhoneTaken) {
			return nil, ErrPhoneTaken
		}
		s.log.Error("failed to create user", zap.Error(err))
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.audit.LogAsync(ctx, Entry{
		UserID:        callerID(caller),
		Action:        "Registro de nuevo usuario",
		AffectedTable: "users",
		RequestID:     requestID,
	})

	return u, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint, cmd *UpdateUserCommand, caller *domain.Claims, requestID string) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cmd.Name) != "" {
		u.Name = strings.TrimSpace(cmd.Name)
	}
	if strings.TrimSpace(cmd.Phone) != "" {
		u.Phone = strings.TrimSpace(cmd.Phone)
	}
	if cmd.RoleID != 0 {
		u.RoleID = cmd.RoleID
	}
	if cmd.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, ErrPhoneTaken) {
			return nil, ErrPhoneTaken
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}

	s.audit.LogAsync(ctx, Entry{
		UserID:        callerID(caller),
		Action:        fmt.Sprintf("Actualización usuario ID %d", id),
		AffectedTable: "users",
		RequestID:     requestID,
	})

	return u, nil
}

// DeleteUser removes the user together with the visits they attended, in
// one transaction, so no visit is left pointing at a missing attendee.
func (s *UserService) DeleteUser(ctx context.Context, id uint, caller *domain.Claims, requestID string) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.visits.DeleteByAttendee(ctx, id); err != nil {
			return fmt.Errorf("deleting attended visits: %w", err)
		}
		return s.users.Delete(ctx, id)
	})
	if err != nil {
		s.log.Error("user deletion failed", zap.Uint("user_id", id), zap.Error(err))
		return err
	}

	s.audit.LogAsync(ctx, Entry{
		UserID:        callerID(caller),
		Action:        fmt.Sprintf("Eliminación usuario ID %d", id),
		AffectedTable: "users",
		RequestID:     requestID,
	})
	return nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]UserListing, error) {
	return s.users.List(ctx)
}
