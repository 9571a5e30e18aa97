package reminders

import (
	remindersvc "eventplanner-backend/internal/application/reminders"
	"eventplanner-backend/internal/interfaces/handlers/errmap"
	"eventplanner-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *remindersvc.Service
}

// List GET /api/reminders
func (h *Handlers) List(c *fiber.Ctx) error {
	list, err := h.Service.List(c.UserContext())
	if err != nil {
		return err
	}
	return response.List(c, list)
}

// ListByEvent GET /api/reminders/:eventId
func (h *Handlers) ListByEvent(c *fiber.Ctx) error {
	list, err := h.Service.ListByEvent(c.UserContext(), errmap.Param(c, "eventId"))
	if err != nil {
		return err
	}
	return response.List(c, list)
}

// Create POST /api/reminders and POST /api/reminders/:eventId (the path wins).
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in remindersvc.CreateReminderInput
	if err := c.BodyParser(&in); err != nil {
		return errmap.BadBody(c)
	}
	if id := errmap.Param(c, "eventId"); id != "" {
		in.EventID = id
	}
	r, err := h.Service.Create(c.UserContext(), in)
	if err != nil {
		return errmap.Respond(c, err)
	}
	return response.SuccessCreated(c, "Reminder created successfully", fiber.Map{"id": r.ID, "reminder": r}, nil)
}

// Update PUT /api/reminders/:eventId/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil || len(body) == 0 {
		return errmap.BadBody(c)
	}
	r, err := h.Service.Update(c.UserContext(), errmap.Param(c, "eventId"), errmap.Param(c, "id"), body)
	if err != nil {
		return errmap.Respond(c, err)
	}
	return response.Success(c, "Reminder updated successfully", fiber.Map{"reminder": r}, nil)
}

// Delete DELETE /api/reminders/:eventId/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	if err := h.Service.Delete(c.UserContext(), errmap.Param(c, "eventId"), errmap.Param(c, "id")); err != nil {
		return errmap.Respond(c, err)
	}
	return response.Success(c, "Reminder deleted successfully", nil, nil)
}
