package database

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/biosecret/go-todo/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// testStore chạy cùng một bộ kiểm thử cho mọi backend
func testStore(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("create and find", func(t *testing.T) {
		alice := &models.User{Name: "alice", Password: "p1"}
		require.NoError(t, s.CreateUser(ctx, alice))
		require.NotEmpty(t, alice.ID)
		assert.Empty(t, alice.Todos)

		byName, err := s.FindUserByName(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, byName.ID)
		assert.Equal(t, "p1", byName.Password)
		assert.NotNil(t, byName.Todos)
		assert.Empty(t, byName.Todos)

		byID, err := s.FindUserByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", byID.Name)

		_, err = s.FindUserByName(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.FindUserByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicate name", func(t *testing.T) {
		err := s.CreateUser(ctx, &models.User{Name: "alice", Password: "other"})
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("todos keep order", func(t *testing.T) {
		alice, err := s.FindUserByName(ctx, "alice")
		require.NoError(t, err)

		var ids []string
		for _, title := range []string{"a", "b", "c"} {
			todo, err := s.AddTodo(ctx, alice.ID, title, title+"-data")
			require.NoError(t, err)
			require.NotEmpty(t, todo.ID)
			assert.Equal(t, title, todo.Title)
			ids = append(ids, todo.ID)
		}
		assert.Len(t, uniq(ids), 3)

		require.NoError(t, s.DeleteTodo(ctx, alice.ID, ids[1]))
		assert.ErrorIs(t, s.DeleteTodo(ctx, alice.ID, ids[1]), ErrTodoNotFound)
		assert.ErrorIs(t, s.DeleteTodo(ctx, alice.ID, "garbage"), ErrTodoNotFound)

		alice, err = s.FindUserByName(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, alice.Todos, 2)
		assert.Equal(t, ids[0], alice.Todos[0].ID)
		assert.Equal(t, "a-data", alice.Todos[0].Data)
		assert.Equal(t, ids[2], alice.Todos[1].ID)
	})

	t.Run("concurrent adds are not lost", func(t *testing.T) {
		bob := &models.User{Name: "bob", Password: "pw"}
		require.NoError(t, s.CreateUser(ctx, bob))

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.AddTodo(ctx, bob.ID, "t", "d")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		bob, err := s.FindUserByName(ctx, "bob")
		require.NoError(t, err)
		assert.Len(t, bob.Todos, 10)
	})

	t.Run("find users except", func(t *testing.T) {
		users, err := s.FindUsersExcept(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "bob", users[0].Name)
		assert.Len(t, users[0].Todos, 10)

		users, err = s.FindUsersExcept(ctx, "admin")
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "alice", users[0].Name)
		assert.Len(t, users[0].Todos, 2)
	})

	t.Run("delete user", func(t *testing.T) {
		bob, err := s.FindUserByName(ctx, "bob")
		require.NoError(t, err)

		deleted, err := s.DeleteUser(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob", deleted.Name)

		_, err = s.DeleteUser(ctx, bob.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.FindUserByName(ctx, "bob")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.AddTodo(ctx, bob.ID, "late", "x")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, s.Ping(ctx))
	})
}

func uniq(ids []string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := &models.User{Name: "carol", Password: "pw"}
	require.NoError(t, s.CreateUser(ctx, u))
	_, err := s.AddTodo(ctx, u.ID, "t", "d")
	require.NoError(t, err)

	found, err := s.FindUserByName(ctx, "carol")
	require.NoError(t, err)
	found.Todos[0].Title = "changed"

	again, err := s.FindUserByName(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, "t", again.Todos[0].Title)
}

func TestPostgresStore(t *testing.T) {
	uri := os.Getenv("TEST_POSTGRESQL_URI")
	if uri == "" {
		t.Skip("TEST_POSTGRESQL_URI not set")
	}
	ctx := context.Background()
	s, err := StartPostgreSQL(ctx, uri, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close(ctx) })

	_, err = s.db.ExecContext(ctx, "TRUNCATE users CASCADE")
	require.NoError(t, err)

	testStore(t, s)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	dbName := "todos_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	s, err := StartMongoDB(ctx, uri, dbName, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.client.Database(dbName).Drop(ctx)
		s.Close(ctx)
	})

	testStore(t, s)
}
