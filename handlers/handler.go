package handlers

import (
	"errors"

	"github.com/biosecret/go-todo/database"
	"github.com/biosecret/go-todo/notify"
	"github.com/biosecret/go-todo/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler gom các service mà route cần
type Handler struct {
	Accounts *services.AccountService
	Todos    *services.TodoService
	Admin    *services.AdminService
	Store    database.Store
	Broker   *notify.Broker
	Logger   *zap.Logger
}

// errorResponse ánh xạ lỗi của service sang status code.
// Lỗi không xác định được ghi log và trả "Server error", không lộ chi tiết.
func (h *Handler) errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, services.ErrTodoNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Todo not found"})
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Username exists but password is incorrect."})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "User already exists"})
	}

	h.Logger.Error("Request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}
