package guests

import (
	guestsvc "eventplanner-backend/internal/application/guests"
	"eventplanner-backend/internal/interfaces/handlers/errmap"
	"eventplanner-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *guestsvc.Service
}

// AddGuestRequest accepts the event id as eventId or event_id.
type AddGuestRequest struct {
	EventID      string `json:"eventId"`
	EventIDSnake string `json:"event_id"`
	Email        string `json:"email"`
	Status       string `json:"status"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// List GET /api/guests/:eventId
func (h *Handlers) List(c *fiber.Ctx) error {
	list, err := h.Service.ListInvitees(c.UserContext(), errmap.Param(c, "eventId"))
	if err != nil {
		return errmap.Respond(c, err)
	}
	return response.List(c, list)
}

// Add POST /api/guests
func (h *Handlers) Add(c *fiber.Ctx) error {
	var req AddGuestRequest
	if err := c.BodyParser(&req); err != nil {
		return errmap.BadBody(c)
	}
	eventID := req.EventID
	if eventID == "" {
		eventID = req.EventIDSnake
	}
	if eventID == "" || req.Email == "" {
		return response.Error(c, "eventId and email are required", fiber.StatusBadRequest, nil)
	}
	inv, err := h.Service.AddInvitee(c.UserContext(), eventID, req.Email, req.Status)
	if err != nil {
		return errmap.Respond(c, err)
	}
	return response.SuccessCreated(c, "Guest added successfully", fiber.Map{"event_id": eventID, "guest": inv}, nil)
}

// UpdateStatus PUT /api/guests/:eventId/:email
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return errmap.BadBody(c)
	}
	inv, err := h.Service.UpdateInviteeStatus(c.UserContext(), errmap.Param(c, "eventId"), errmap.Param(c, "email"), req.Status)
	if err != nil {
		return errmap.Respond(c, err)
	}
	return response.Success(c, "Guest status updated successfully", fiber.Map{"guest": inv}, nil)
}

// Remove DELETE /api/guests/:eventId/:email
func (h *Handlers) Remove(c *fiber.Ctx) error {
	if err := h.Service.RemoveInvitee(c.UserContext(), errmap.Param(c, "eventId"), errmap.Param(c, "email")); err != nil {
		return errmap.Respond(c, err)
	}
	return response.Success(c, "Guest removed successfully", nil, nil)
}

// ListLegacy GET /api/legacy/guests
func (h *Handlers) ListLegacy(c *fiber.Ctx) error {
	list, err := h.Service.ListLegacyGuests(c.UserContext())
	if err != nil {
		return err
	}
	return response.List(c, list)
}

// DeleteLegacy DELETE /api/legacy/guests/:id
func (h *Handlers) DeleteLegacy(c *fiber.Ctx) error {
	if err := h.Service.DeleteLegacyGuest(c.UserContext(), errmap.Param(c, "id")); err != nil {
		return errmap.Respond(c, err)
	}
	return response.Success(c, "Guest deleted successfully", nil, nil)
}
