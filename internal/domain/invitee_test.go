package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeInvitees_MixedLegacyForms(t *testing.T) {
	raw := []any{
		"a@x.com",
		map[string]any{"email": "b@x.com", "status": "Confirmed"},
		map[string]any{"email": "c@x.com"},
		map[string]any{"status": "Declined"},
		42,
		"",
	}
	got := NormalizeInvitees(raw)
	assert.Equal(t, []Invitee{
		{Email: "a@x.com", Status: StatusInvited},
		{Email: "b@x.com", Status: StatusConfirmed},
		{Email: "c@x.com", Status: StatusInvited},
	}, got)
}

func TestNormalizeInvitees_MissingFieldIsEmpty(t *testing.T) {
	got := NormalizeInvitees(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNormalizeInvitee_FreeFormStatusKept(t *testing.T) {
	inv, ok := NormalizeInvitee(map[string]any{"email": "a@x.com", "status": "Maybe"})
	assert.True(t, ok)
	assert.Equal(t, "Maybe", inv.Status)
}

func TestInviteesDocument_RoundTrip(t *testing.T) {
	list := []Invitee{{Email: "a@x.com", Status: StatusInvited}}
	doc := InviteesDocument(list)
	assert.Equal(t, []any{map[string]any{"email": "a@x.com", "status": StatusInvited}}, doc)
	assert.Equal(t, list, NormalizeInvitees(doc))
}

func TestIndexOfInvitee_CaseSensitive(t *testing.T) {
	list := []Invitee{{Email: "a@x.com", Status: StatusInvited}}
	assert.Equal(t, 0, IndexOfInvitee(list, "a@x.com"))
	assert.Equal(t, -1, IndexOfInvitee(list, "A@x.com"))
}

func TestValidEventID(t *testing.T) {
	assert.True(t, ValidEventID("e1"))
	assert.True(t, ValidEventID("6500f1c2a1b2c3d4e5f60718"))
	assert.True(t, ValidEventID("3f0e8c1a-5b7d-4c1e-9a2b-0c1d2e3f4a5b"))
	assert.False(t, ValidEventID(""))
	assert.False(t, ValidEventID("has space"))
	assert.False(t, ValidEventID("-leading"))
}

func TestEventFromDocument_DefaultsInvitees(t *testing.T) {
	ev := EventFromDocument(map[string]any{"id": "e1", "title": "Conf"})
	assert.Equal(t, "e1", ev.ID)
	assert.Equal(t, []Invitee{}, ev.Invitees)
}
