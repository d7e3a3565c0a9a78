package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/biosecret/go-todo/config"
	"github.com/biosecret/go-todo/models"
	"go.uber.org/zap"
)

var (
	// ErrNotFound: không có user với name/id đã cho
	ErrNotFound = errors.New("user not found")
	// ErrTodoNotFound: user tồn tại nhưng không có todo với id đã cho
	ErrTodoNotFound = errors.New("todo not found")
	// ErrDuplicateName: vi phạm ràng buộc unique trên name
	ErrDuplicateName = errors.New("user name already exists")
)

// Store là lớp lưu trữ User cùng các todos của họ.
// Mọi thao tác ghi trên todos là nguyên tử trên một user.
type Store interface {
	FindUserByName(ctx context.Context, name string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	// CreateUser gán ID cho user và lưu với danh sách todos rỗng
	CreateUser(ctx context.Context, user *models.User) error
	// AddTodo thêm todo vào cuối danh sách và trả về todo kèm ID do store cấp
	AddTodo(ctx context.Context, userID string, title, data string) (models.Todo, error)
	DeleteTodo(ctx context.Context, userID, todoID string) error
	// DeleteUser xoá user theo id và trả về bản ghi đã xoá
	DeleteUser(ctx context.Context, id string) (*models.User, error)
	// FindUsersExcept trả về mọi user có name khác name đã cho
	FindUsersExcept(ctx context.Context, name string) ([]models.User, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open khởi tạo store theo DB_DRIVER
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		s, err := StartPostgreSQL(ctx, cfg.PostgreSQLURI, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "mongodb":
		s, err := StartMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		logger.Warn("Using in-memory store, data is lost on restart")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}
