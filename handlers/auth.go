package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type credentialsRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// HandleSignup đăng ký user mới hoặc đăng nhập nếu name đã tồn tại
//
//	@Summary	Sign up or log in
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		credentialsRequest	true	"name and password"
//	@Success	200		{object}	map[string]any		"existing user, todos returned"
//	@Success	201		{object}	map[string]any		"user created"
//	@Failure	401		{object}	map[string]string
//	@Router		/signup [post]
func (h *Handler) HandleSignup(c *fiber.Ctx) error {
	input := new(credentialsRequest)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, err)
	}

	res, err := h.Accounts.SignupOrLogin(c.UserContext(), input.Name, input.Password)
	if err != nil {
		return h.errorResponse(c, err)
	}

	if res.Created {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "User created successfully!",
			"todos":   res.Todos,
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User already exists, login successful!",
		"todos":   res.Todos,
	})
}
