package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/biosecret/go-todo/database"
	"github.com/biosecret/go-todo/models"
	"github.com/biosecret/go-todo/notify"
)

// AdminService chỉ phục vụ khi name/password khớp cặp admin
type AdminService struct {
	store      database.Store
	admin      AdminCredentials
	dispatcher *Dispatcher
}

func NewAdminService(store database.Store, admin AdminCredentials, dispatcher *Dispatcher) *AdminService {
	return &AdminService{store: store, admin: admin, dispatcher: dispatcher}
}

// ListUsers trả về mọi user trừ chính admin, kèm todos
func (s *AdminService) ListUsers(ctx context.Context, name, password string) ([]models.User, error) {
	if !s.admin.Match(name, password) {
		return nil, ErrForbidden
	}

	users, err := s.store.FindUsersExcept(ctx, s.admin.Name)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser xoá user theo id
func (s *AdminService) DeleteUser(ctx context.Context, name, password, userID string) (*models.User, error) {
	if !s.admin.Match(name, password) {
		return nil, ErrForbidden
	}
	if userID == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.store.FindUserByID(ctx, userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user %q: %w", userID, err)
	}

	// User có thể đã bị xoá bởi request khác giữa hai bước
	user, err := s.store.DeleteUser(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete user %q: %w", userID, err)
	}

	s.dispatcher.Dispatch(notify.KindUserDeleted, user.Name, user.ID)
	return user, nil
}
