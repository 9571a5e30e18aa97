package domain

// Guest is a record of the legacy guests collection, superseded by embedded invitees.
// ID is the store's record identifier.
type Guest struct {
	ID      string `json:"_id"`
	EventID string `json:"event_id"`
	Email   string `json:"email"`
	Status  string `json:"status"`
}

func GuestFromDocument(doc map[string]any) Guest {
	return Guest{
		ID:      stringField(doc, "_id"),
		EventID: stringField(doc, "event_id"),
		Email:   stringField(doc, "email"),
		Status:  stringField(doc, "status"),
	}
}
