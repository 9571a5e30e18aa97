package domain

import "regexp"

var eventIDRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]{0,127}$`)

// Event is stored as one document in the events collection, invitees embedded.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OrganizerID string    `json:"organizer_id"`
	Date        string    `json:"date"`
	Location    string    `json:"location"`
	Invitees    []Invitee `json:"invitees"`
}

// EventFields are the event attributes a client may set; invitees are excluded.
var EventFields = []string{"title", "description", "organizer_id", "date", "location"}

// ValidEventID reports whether id is usable as an event identifier.
func ValidEventID(id string) bool {
	return eventIDRe.MatchString(id)
}

func EventFromDocument(doc map[string]any) Event {
	return Event{
		ID:          stringField(doc, "id"),
		Title:       stringField(doc, "title"),
		Description: stringField(doc, "description"),
		OrganizerID: stringField(doc, "organizer_id"),
		Date:        stringField(doc, "date"),
		Location:    stringField(doc, "location"),
		Invitees:    NormalizeInvitees(doc["invitees"]),
	}
}

func (e Event) Document() map[string]any {
	return map[string]any{
		"id":           e.ID,
		"title":        e.Title,
		"description":  e.Description,
		"organizer_id": e.OrganizerID,
		"date":         e.Date,
		"location":     e.Location,
		"invitees":     InviteesDocument(e.Invitees),
	}
}
