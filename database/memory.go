package database

import (
	"context"
	"slices"
	"sync"

	"github.com/biosecret/go-todo/models"
	"github.com/biosecret/go-todo/utils"
)

// MemoryStore giữ users trong bộ nhớ, thứ tự theo lúc tạo
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[string]*models.User
	byName map[string]string
	order  []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[string]*models.User),
		byName: make(map[string]string),
	}
}

func (s *MemoryStore) FindUserByName(_ context.Context, name string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, exists := s.byName[name]
	if !exists {
		return nil, ErrNotFound
	}
	return cloneUser(s.users[id]), nil
}

func (s *MemoryStore) FindUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, exists := s.users[id]
	if !exists {
		return nil, ErrNotFound
	}
	return cloneUser(user), nil
}

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byName[user.Name]; exists {
		return ErrDuplicateName
	}
	user.ID = utils.GenerateRandomID()
	user.Todos = []models.Todo{}
	s.users[user.ID] = cloneUser(user)
	s.byName[user.Name] = user.ID
	s.order = append(s.order, user.ID)
	return nil
}

func (s *MemoryStore) AddTodo(_ context.Context, userID string, title, data string) (models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, exists := s.users[userID]
	if !exists {
		return models.Todo{}, ErrNotFound
	}
	todo := models.Todo{ID: utils.GenerateRandomID(), Title: title, Data: data}
	user.Todos = append(user.Todos, todo)
	return todo, nil
}

func (s *MemoryStore) DeleteTodo(_ context.Context, userID, todoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, exists := s.users[userID]
	if !exists {
		return ErrNotFound
	}
	idx := slices.IndexFunc(user.Todos, func(t models.Todo) bool { return t.ID == todoID })
	if idx == -1 {
		return ErrTodoNotFound
	}
	user.Todos = slices.Delete(user.Todos, idx, idx+1)
	return nil
}

func (s *MemoryStore) DeleteUser(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, exists := s.users[id]
	if !exists {
		return nil, ErrNotFound
	}
	delete(s.users, id)
	delete(s.byName, user.Name)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return user, nil
}

func (s *MemoryStore) FindUsersExcept(_ context.Context, name string) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.order))
	for _, id := range s.order {
		user := s.users[id]
		if user.Name == name {
			continue
		}
		users = append(users, *cloneUser(user))
	}
	return users, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close(context.Context) error { return nil }

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Todos = append([]models.Todo{}, u.Todos...)
	return &c
}
