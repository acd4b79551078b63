package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/mockinterview/pkg/auth"
	"github.com/artem13815/mockinterview/pkg/interview"
)

var ErrInvalidRole = errors.New("invalid role")

// UserInterviews is a user together with the sessions they own.
type UserInterviews struct {
	User       auth.User            `json:"user"`
	Interviews []interview.Overview `json:"interviews"`
}

// UseCase: административные сценарии. Вызывающий уже проверен как администратор.
type UseCase interface {
	ListInterviews(ctx context.Context, limit, offset int) ([]interview.Overview, error)
	ListUsers(ctx context.Context, limit, offset int) ([]auth.User, error)
	UserInterviews(ctx context.Context, userID uuid.UUID, limit, offset int) (UserInterviews, error)
	UpdateRole(ctx context.Context, userID uuid.UUID, role string) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	DeleteInterview(ctx context.Context, id uuid.UUID) error
}

type service struct {
	users    auth.UserRepository
	sessions interview.Repository
	log      *zap.Logger
}

func NewService(users auth.UserRepository, sessions interview.Repository, log *zap.Logger) UseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{users: users, sessions: sessions, log: log}
}

func (s *service) ListInterviews(ctx context.Context, limit, offset int) ([]interview.Overview, error) {
	return s.sessions.ListAll(ctx, limit, offset)
}

func (s *service) ListUsers(ctx context.Context, limit, offset int) ([]auth.User, error) {
	return s.users.List(ctx, limit, offset)
}

func (s *service) UserInterviews(ctx context.Context, userID uuid.UUID, limit, offset int) (UserInterviews, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return UserInterviews{}, err
	}
	items, err := s.sessions.ListByOwner(ctx, userID, limit, offset)
	if err != nil {
		return UserInterviews{}, err
	}
	if items == nil {
		items = []interview.Overview{}
	}
	return UserInterviews{User: u, Interviews: items}, nil
}

func (s *service) UpdateRole(ctx context.Context, userID uuid.UUID, role string) error {
	if !auth.ValidRole(role) {
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return err
	}
	s.log.Info("user role updated", zap.String("userId", userID.String()), zap.String("role", role))
	return nil
}

// DeleteUser removes the user's sessions first, then the user.
func (s *service) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.sessions.DeleteByOwner(ctx, userID); err != nil {
		return fmt.Errorf("delete interviews: %w", err)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.log.Info("user deleted", zap.String("userId", userID.String()))
	return nil
}

func (s *service) DeleteInterview(ctx context.Context, id uuid.UUID) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("interview deleted", zap.String("interviewId", id.String()))
	return nil
}
