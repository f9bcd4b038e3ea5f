package user

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/crm-console/internal"
	userDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/user"
	"github.com/frahmantamala/crm-console/internal/permission"
)

type API interface {
	ListUsers(ctx context.Context) ([]userDatamodel.User, error)
	CreateUser(ctx context.Context, body userDatamodel.CreateRequest) error
	UpdateUser(ctx context.Context, id string, body userDatamodel.UpdateRequest) error
	DeactivateUser(ctx context.Context, id string) error
}

var errProtected = internal.NewForbiddenError("superadmin accounts cannot be changed", internal.ErrCodeAccessDenied)

type Service struct {
	api    API
	logger *slog.Logger
}

func NewService(api API, logger *slog.Logger) *Service {
	return &Service{api: api, logger: logger}
}

func (s *Service) List(ctx context.Context, checker permission.Checker) ([]Account, error) {
	if err := permission.Require(checker, permission.ResourceUsers, permission.ActionRead); err != nil {
		return nil, err
	}

	list, err := s.api.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return FromDataModels(list), nil
}

// Find goes through the list; the backend has no single user endpoint.
func (s *Service) Find(ctx context.Context, checker permission.Checker, id string) (*Account, error) {
	accounts, err := s.List(ctx, checker)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].ID == id || accounts[i].Username == id {
			return &accounts[i], nil
		}
	}
	return nil, internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
}

func (s *Service) Create(ctx context.Context, checker permission.Checker, dto CreateDTO) error {
	if err := permission.Require(checker, permission.ResourceUsers, permission.ActionWrite); err != nil {
		return err
	}
	if err := dto.Validate(); err != nil {
		return err
	}

	req := dto.ToRequest()
	if err := s.api.CreateUser(ctx, req); err != nil {
		s.logger.Error("failed to create user", "error", err, "username", req.Username)
		return err
	}
	s.logger.Info("user created", "username", req.Username, "role", req.Role)
	return nil
}

func (s *Service) Update(ctx context.Context, checker permission.Checker, id string, dto UpdateDTO) error {
	if err := permission.Require(checker, permission.ResourceUsers, permission.ActionWrite); err != nil {
		return err
	}
	if err := dto.Validate(); err != nil {
		return err
	}

	if err := s.api.UpdateUser(ctx, id, dto.ToRequest()); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return err
	}
	s.logger.Info("user updated", "user_id", id, "role", dto.Role)
	return nil
}

func (s *Service) Deactivate(ctx context.Context, checker permission.Checker, id string) error {
	account, err := s.mutable(ctx, checker, id)
	if err != nil {
		return err
	}

	if err := s.api.DeactivateUser(ctx, account.ID); err != nil {
		s.logger.Error("failed to deactivate user", "error", err, "user_id", account.ID)
		return err
	}
	s.logger.Info("user deactivated", "user_id", account.ID)
	return nil
}

// ToggleActive flips the isActive flag and returns the new value.
func (s *Service) ToggleActive(ctx context.Context, checker permission.Checker, id string) (bool, error) {
	account, err := s.mutable(ctx, checker, id)
	if err != nil {
		return false, err
	}

	next := !account.IsActive
	if err := s.api.UpdateUser(ctx, account.ID, userDatamodel.UpdateRequest{IsActive: &next}); err != nil {
		s.logger.Error("failed to toggle user", "error", err, "user_id", account.ID)
		return account.IsActive, err
	}
	s.logger.Info("user active flag changed", "user_id", account.ID, "is_active", next)
	return next, nil
}

func (s *Service) mutable(ctx context.Context, checker permission.Checker, id string) (*Account, error) {
	if err := permission.Require(checker, permission.ResourceUsers, permission.ActionWrite); err != nil {
		return nil, err
	}
	account, err := s.Find(ctx, checker, id)
	if err != nil {
		return nil, err
	}
	if account.Protected() {
		return nil, errProtected
	}
	return account, nil
}
