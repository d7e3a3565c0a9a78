package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type deleteUserRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	UserID   string `json:"userId"`
}

// HandleListUsers trả về mọi user trừ admin
//
//	@Summary	List users (admin)
//	@Tags		admin
//	@Produce	json
//	@Param		name		query	string	true	"admin name"
//	@Param		password	query	string	true	"admin password"
//	@Success	200			{array}	models.User
//	@Failure	403			{object}	map[string]string
//	@Router		/admin/users [get]
func (h *Handler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.Admin.ListUsers(c.UserContext(), c.Query("name"), c.Query("password"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

// HandleDeleteUser xoá một user theo id
//
//	@Summary	Delete a user (admin)
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		body	body		deleteUserRequest	true	"admin credentials and user id"
//	@Success	200		{object}	map[string]string
//	@Failure	403		{object}	map[string]string
//	@Failure	404		{object}	map[string]string
//	@Router		/admin/deleteUser [delete]
func (h *Handler) HandleDeleteUser(c *fiber.Ctx) error {
	input := new(deleteUserRequest)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, err)
	}

	if _, err := h.Admin.DeleteUser(c.UserContext(), input.Name, input.Password, input.UserID); err != nil {
		return h.errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "User deleted successfully!"})
}
