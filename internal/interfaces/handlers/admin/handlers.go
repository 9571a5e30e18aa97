package admin

import (
	guestsvc "eventplanner-backend/internal/application/guests"
	"eventplanner-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the one-shot data migrations. Routes are guarded by
// middleware.RequireAdminKey.
type Handlers struct {
	Guests *guestsvc.Service
}

// NormalizeInvitees POST /api/admin/normalize-invitees
func (h *Handlers) NormalizeInvitees(c *fiber.Ctx) error {
	report, err := h.Guests.NormalizeAllInvitees(c.UserContext())
	if err != nil {
		return err
	}
	return response.Success(c, "Invitees normalized", report, nil)
}

// ImportLegacyGuests POST /api/admin/import-legacy-guests
func (h *Handlers) ImportLegacyGuests(c *fiber.Ctx) error {
	report, err := h.Guests.ImportLegacyGuests(c.UserContext())
	if err != nil {
		return err
	}
	return response.Success(c, "Legacy guests imported", report, nil)
}
