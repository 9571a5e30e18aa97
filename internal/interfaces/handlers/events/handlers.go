package events

import (
	eventsvc "eventplanner-backend/internal/application/events"
	"eventplanner-backend/internal/interfaces/handlers/errmap"
	"eventplanner-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *eventsvc.Service
}

// List GET /api/events
func (h *Handlers) List(c *fiber.Ctx) error {
	events, err := h.Service.List(c.UserContext())
	if err != nil {
		return err
	}
	return response.List(c, events)
}

// Get GET /api/events/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	e, err := h.Service.Get(c.UserContext(), errmap.Param(c, "id"))
	if err != nil {
		return errmap.Respond(c, err)
	}
	return response.Success(c, "Event found", fiber.Map{"event": e}, nil)
}

// ICS GET /api/events/:id/ics downloads the event as an iCalendar file.
func (h *Handlers) ICS(c *fiber.Ctx) error {
	id := errmap.Param(c, "id")
	b, err := h.Service.ICS(c.UserContext(), id)
	if err != nil {
		return errmap.Respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+id+`.ics"`)
	return c.Send(b)
}

// Create POST /api/events
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in eventsvc.CreateEventInput
	if err := c.BodyParser(&in); err != nil {
		return errmap.BadBody(c)
	}
	e, err := h.Service.Create(c.UserContext(), in)
	if err != nil {
		return errmap.Respond(c, err)
	}
	return response.SuccessCreated(c, "Event created successfully", fiber.Map{"id": e.ID, "event": e}, nil)
}

// Update PUT /api/events/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil || len(body) == 0 {
		return errmap.BadBody(c)
	}
	e, err := h.Service.Update(c.UserContext(), errmap.Param(c, "id"), body)
	if err != nil {
		return errmap.Respond(c, err)
	}
	return response.Success(c, "Event updated successfully", fiber.Map{"event": e}, nil)
}

// Delete DELETE /api/events/:id removes the event and its invitees.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	if err := h.Service.Delete(c.UserContext(), errmap.Param(c, "id")); err != nil {
		return errmap.Respond(c, err)
	}
	return response.Success(c, "Event deleted successfully", nil, nil)
}
