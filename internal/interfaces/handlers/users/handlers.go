package users

import (
	usersvc "eventplanner-backend/internal/application/users"
	"eventplanner-backend/internal/interfaces/handlers/errmap"
	"eventplanner-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *usersvc.Service
}

// List GET /api/users
func (h *Handlers) List(c *fiber.Ctx) error {
	users, err := h.Service.List(c.UserContext())
	if err != nil {
		return err
	}
	return response.List(c, users)
}

// Create POST /api/users
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in usersvc.CreateUserInput
	if err := c.BodyParser(&in); err != nil {
		return errmap.BadBody(c)
	}
	u, err := h.Service.Create(c.UserContext(), in)
	if err != nil {
		return errmap.Respond(c, err)
	}
	return response.SuccessCreated(c, "User added successfully", fiber.Map{"user": u}, nil)
}

// Update PUT /api/users/:email merges the supplied fields.
func (h *Handlers) Update(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil || len(body) == 0 {
		return errmap.BadBody(c)
	}
	u, err := h.Service.Update(c.UserContext(), errmap.Param(c, "email"), body)
	if err != nil {
		return errmap.Respond(c, err)
	}
	return response.Success(c, "User updated successfully", fiber.Map{"user": u}, nil)
}

// Delete DELETE /api/users/:email
func (h *Handlers) Delete(c *fiber.Ctx) error {
	if err := h.Service.Delete(c.UserContext(), errmap.Param(c, "email")); err != nil {
		return errmap.Respond(c, err)
	}
	return response.Success(c, "User deleted successfully", nil, nil)
}
