package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/biosecret/go-todo/models"
	"github.com/biosecret/go-todo/utils"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver cho database/sql
	"go.uber.org/zap"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// PostgresStore lưu users và todos trong hai bảng, todos giữ thứ tự theo cột position
type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// StartPostgreSQL khởi tạo kết nối với PostgreSQL và tạo bảng nếu chưa tồn tại
func StartPostgreSQL(ctx context.Context, uri string, logger *zap.Logger) (*PostgresStore, error) {
	db, err := sql.Open("pgx", uri)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot connect to PostgreSQL: %w", err)
	}

	logger.Info("Connected to PostgreSQL successfully")

	s := &PostgresStore{db: db, logger: logger}
	err = s.createTables(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// createTables tạo bảng nếu chưa tồn tại
func (s *PostgresStore) createTables(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS todos (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		position BIGSERIAL,
		title TEXT NOT NULL,
		data TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS todos_user_position_idx ON todos (user_id, position)
	`
	_, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return err
	}

	s.logger.Info("Tables created or already exist")
	return nil
}

func (s *PostgresStore) FindUserByName(ctx context.Context, name string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, password FROM users WHERE name = $1", name)
	return s.scanUserWithTodos(ctx, row)
}

func (s *PostgresStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	if !utils.IsValidID(id) {
		return nil, ErrNotFound
	}
	row := s.db.QueryRowContext(ctx, "SELECT id, name, password FROM users WHERE id = $1", id)
	return s.scanUserWithTodos(ctx, row)
}

func (s *PostgresStore) scanUserWithTodos(ctx context.Context, row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Password)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		s.logger.Error("Error fetching user from database", zap.Error(err))
		return nil, err
	}

	user.Todos, err = s.todosOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStore) todosOf(ctx context.Context, userID string) ([]models.Todo, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, data FROM todos WHERE user_id = $1 ORDER BY position", userID)
	if err != nil {
		s.logger.Error("Error fetching todos from database", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		var todo models.Todo
		if err := rows.Scan(&todo.ID, &todo.Title, &todo.Data); err != nil {
			s.logger.Error("Error scanning todo row", zap.Error(err))
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO users (name, password) VALUES ($1, $2) RETURNING id",
		user.Name, user.Password,
	).Scan(&user.ID)
	if pgCode(err) == pgUniqueViolation {
		return ErrDuplicateName
	}
	if err != nil {
		s.logger.Error("Error inserting user into database", zap.Error(err))
		return err
	}
	user.Todos = []models.Todo{}
	return nil
}

func (s *PostgresStore) AddTodo(ctx context.Context, userID string, title, data string) (models.Todo, error) {
	if !utils.IsValidID(userID) {
		return models.Todo{}, ErrNotFound
	}
	todo := models.Todo{Title: title, Data: data}
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO todos (user_id, title, data) VALUES ($1, $2, $3) RETURNING id",
		userID, title, data,
	).Scan(&todo.ID)
	if pgCode(err) == pgForeignKeyViolation {
		return models.Todo{}, ErrNotFound
	}
	if err != nil {
		s.logger.Error("Error inserting todo into database", zap.Error(err))
		return models.Todo{}, err
	}
	return todo, nil
}

func (s *PostgresStore) DeleteTodo(ctx context.Context, userID, todoID string) error {
	if !utils.IsValidID(todoID) {
		return ErrTodoNotFound
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE user_id = $1 AND id = $2", userID, todoID)
	if err != nil {
		s.logger.Error("Error deleting todo from database", zap.Error(err))
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrTodoNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	if !utils.IsValidID(id) {
		return nil, ErrNotFound
	}
	var user models.User
	err := s.db.QueryRowContext(ctx,
		"DELETE FROM users WHERE id = $1 RETURNING id, name, password", id,
	).Scan(&user.ID, &user.Name, &user.Password)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		s.logger.Error("Error deleting user from database", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStore) FindUsersExcept(ctx context.Context, name string) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.name, u.password, t.id, t.title, t.data
		FROM users u
		LEFT JOIN todos t ON t.user_id = u.id
		WHERE u.name <> $1
		ORDER BY u.created_at, u.id, t.position`, name)
	if err != nil {
		s.logger.Error("Error fetching users from database", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var (
			user                        models.User
			todoID, todoTitle, todoData sql.NullString
		)
		if err := rows.Scan(&user.ID, &user.Name, &user.Password, &todoID, &todoTitle, &todoData); err != nil {
			s.logger.Error("Error scanning user row", zap.Error(err))
			return nil, err
		}
		if len(users) == 0 || users[len(users)-1].ID != user.ID {
			user.Todos = []models.Todo{}
			users = append(users, user)
		}
		if todoID.Valid {
			last := &users[len(users)-1]
			last.Todos = append(last.Todos, models.Todo{ID: todoID.String, Title: todoTitle.String, Data: todoData.String})
		}
	}
	return users, rows.Err()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close đóng kết nối với PostgreSQL
func (s *PostgresStore) Close(context.Context) error {
	err := s.db.Close()
	if err != nil {
		return err
	}
	s.logger.Info("Database connection closed")
	return nil
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
