package router

import (
	"github.com/biosecret/go-todo/handlers"
	"github.com/biosecret/go-todo/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	app.Get("/health", h.HandleHealthCheck)

	app.Post("/signup", h.HandleSignup)

	app.Post("/addTodo", h.HandleAddTodo)
	app.Get("/todos", h.HandleListTodos)
	app.Delete("/deleteTodo", h.HandleDeleteTodo)

	admin := app.Group("/admin")
	admin.Get("/users", h.HandleListUsers)
	admin.Delete("/deleteUser", h.HandleDeleteUser)
	admin.Get("/events", middleware.AdminOnly(h.Accounts.IsAdmin), h.HandleEvents)
}
