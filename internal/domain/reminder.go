package domain

const DefaultReminderStatus = "scheduled"

// Reminder is a stored record only; nothing delivers it.
type Reminder struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	SentTo  string `json:"sent_to"`
	SentAt  string `json:"sent_at"`
	Status  string `json:"status"`
}

func ReminderFromDocument(doc map[string]any) Reminder {
	return Reminder{
		ID:      stringField(doc, "id"),
		EventID: stringField(doc, "event_id"),
		SentTo:  stringField(doc, "sent_to"),
		SentAt:  stringField(doc, "sent_at"),
		Status:  stringField(doc, "status"),
	}
}

func (r Reminder) Document() map[string]any {
	return map[string]any{
		"id":       r.ID,
		"event_id": r.EventID,
		"sent_to":  r.SentTo,
		"sent_at":  r.SentAt,
		"status":   r.Status,
	}
}
