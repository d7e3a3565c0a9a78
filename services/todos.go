package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/biosecret/go-todo/database"
	"github.com/biosecret/go-todo/models"
	"github.com/biosecret/go-todo/notify"
)

type TodoService struct {
	store      database.Store
	dispatcher *Dispatcher
}

func NewTodoService(store database.Store, dispatcher *Dispatcher) *TodoService {
	return &TodoService{store: store, dispatcher: dispatcher}
}

func (s *TodoService) findUser(ctx context.Context, name string) (*models.User, error) {
	user, err := s.store.FindUserByName(ctx, name)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", name, err)
	}
	return user, nil
}

// AddTodo thêm todo vào cuối danh sách của user
func (s *TodoService) AddTodo(ctx context.Context, name, title, data string) (models.Todo, error) {
	if name == "" || title == "" || data == "" {
		return models.Todo{}, ErrInvalidInput
	}

	user, err := s.findUser(ctx, name)
	if err != nil {
		return models.Todo{}, err
	}

	todo, err := s.store.AddTodo(ctx, user.ID, title, data)
	if errors.Is(err, database.ErrNotFound) {
		return models.Todo{}, ErrUserNotFound
	}
	if err != nil {
		return models.Todo{}, fmt.Errorf("add todo for %q: %w", name, err)
	}

	s.dispatcher.Dispatch(notify.KindTodoAdded, name, todo.ID)
	return todo, nil
}

// ListTodos trả về todos theo đúng thứ tự đã thêm
func (s *TodoService) ListTodos(ctx context.Context, name string) ([]models.Todo, error) {
	if name == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.findUser(ctx, name)
	if err != nil {
		return nil, err
	}
	return user.Todos, nil
}

// DeleteTodo xoá đúng một todo, giữ nguyên thứ tự các todo còn lại
func (s *TodoService) DeleteTodo(ctx context.Context, name, todoID string) error {
	if name == "" || todoID == "" {
		return ErrInvalidInput
	}

	user, err := s.findUser(ctx, name)
	if err != nil {
		return err
	}

	err = s.store.DeleteTodo(ctx, user.ID, todoID)
	switch {
	case errors.Is(err, database.ErrTodoNotFound):
		return ErrTodoNotFound
	case errors.Is(err, database.ErrNotFound):
		return ErrUserNotFound
	case err != nil:
		return fmt.Errorf("delete todo %q for %q: %w", todoID, name, err)
	}

	s.dispatcher.Dispatch(notify.KindTodoDeleted, name, todoID)
	return nil
}
