package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/biosecret/go-todo/database"
	"github.com/biosecret/go-todo/models"
	"github.com/biosecret/go-todo/notify"
	"github.com/biosecret/go-todo/utils"
	"go.uber.org/zap"
)

// AdminCredentials là cặp name/password của admin, lấy từ cấu hình
type AdminCredentials struct {
	Name     string
	Password string
}

// Match so khớp tuyệt đối. Admin chưa cấu hình thì không ai khớp.
func (a AdminCredentials) Match(name, password string) bool {
	if a.Name == "" || a.Password == "" {
		return false
	}
	nameOK := subtle.ConstantTimeCompare([]byte(name), []byte(a.Name)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.Password)) == 1
	return nameOK && passOK
}

// SignupResult: Created cho biết user vừa được tạo hay đã tồn tại
type SignupResult struct {
	Created bool
	Todos   []models.Todo
}

type AccountService struct {
	store      database.Store
	passwords  utils.PasswordHasher
	admin      AdminCredentials
	dispatcher *Dispatcher
	logger     *zap.Logger
}

func NewAccountService(store database.Store, passwords utils.PasswordHasher, admin AdminCredentials, dispatcher *Dispatcher, logger *zap.Logger) *AccountService {
	return &AccountService{
		store:      store,
		passwords:  passwords,
		admin:      admin,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// IsAdmin kiểm tra cặp thông tin đăng nhập admin
func (s *AccountService) IsAdmin(name, password string) bool {
	return s.admin.Match(name, password)
}

// SignupOrLogin tạo user mới nếu name chưa tồn tại, ngược lại đăng nhập
func (s *AccountService) SignupOrLogin(ctx context.Context, name, password string) (*SignupResult, error) {
	if name == "" || password == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.store.FindUserByName(ctx, name)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return s.signup(ctx, name, password)
	case err != nil:
		return nil, fmt.Errorf("find user %q: %w", name, err)
	}

	ok, err := s.passwords.Compare(existing.Password, password)
	if err != nil {
		return nil, fmt.Errorf("compare password for %q: %w", name, err)
	}
	if !ok {
		return nil, ErrUnauthorized
	}

	if s.IsAdmin(name, password) {
		s.logger.Info("Admin logged in", zap.String("name", name))
		s.dispatcher.Dispatch(notify.KindAdminLogin, name, "")
	}

	return &SignupResult{Created: false, Todos: existing.Todos}, nil
}

func (s *AccountService) signup(ctx context.Context, name, password string) (*SignupResult, error) {
	stored, err := s.passwords.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Name: name, Password: stored}
	err = s.store.CreateUser(ctx, user)
	if errors.Is(err, database.ErrDuplicateName) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("create user %q: %w", name, err)
	}

	s.dispatcher.Dispatch(notify.KindUserCreated, name, user.ID)
	return &SignupResult{Created: true, Todos: []models.Todo{}}, nil
}
