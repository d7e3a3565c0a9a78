package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type addTodoRequest struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Data  string `json:"data"`
}

type deleteTodoRequest struct {
	Name   string `json:"name"`
	TodoID string `json:"todoId"`
}

// Tạo mới một Todo
//
//	@Summary	Add a todo
//	@Tags		todos
//	@Accept		json
//	@Produce	json
//	@Param		body	body		addTodoRequest	true	"owner, title and data"
//	@Success	201		{object}	map[string]any
//	@Failure	404		{object}	map[string]string
//	@Router		/addTodo [post]
func (h *Handler) HandleAddTodo(c *fiber.Ctx) error {
	input := new(addTodoRequest)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, err)
	}

	todo, err := h.Todos.AddTodo(c.UserContext(), input.Name, input.Title, input.Data)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Todo added successfully!",
		"todo":    todo,
	})
}

// Lấy tất cả Todos của một user
//
//	@Summary	List todos of a user
//	@Tags		todos
//	@Produce	json
//	@Param		name	query		string	true	"user name"
//	@Success	200		{object}	map[string]any
//	@Failure	404		{object}	map[string]string
//	@Router		/todos [get]
func (h *Handler) HandleListTodos(c *fiber.Ctx) error {
	todos, err := h.Todos.ListTodos(c.UserContext(), c.Query("name"))
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"todos": todos})
}

// Xóa một Todo
//
//	@Summary	Delete a todo
//	@Tags		todos
//	@Accept		json
//	@Produce	json
//	@Param		body	body		deleteTodoRequest	true	"owner and todo id"
//	@Success	200		{object}	map[string]string
//	@Failure	404		{object}	map[string]string
//	@Router		/deleteTodo [delete]
func (h *Handler) HandleDeleteTodo(c *fiber.Ctx) error {
	input := new(deleteTodoRequest)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, err)
	}

	if err := h.Todos.DeleteTodo(c.UserContext(), input.Name, input.TodoID); err != nil {
		return h.errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Todo deleted successfully!"})
}
