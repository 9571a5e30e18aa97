package domain

// Conventional invitee statuses. Status is free-form; other values are stored as given.
const (
	StatusInvited   = "Invited"
	StatusConfirmed = "Confirmed"
	StatusDeclined  = "Declined"
)

// Invitee is a guest entry embedded in an event document.
type Invitee struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

// NormalizeInvitee converts one stored invitee entry into its canonical form.
// A bare email string becomes {email, Invited}; an object passes through, with an
// empty status defaulting to Invited. Anything else is rejected.
func NormalizeInvitee(raw any) (Invitee, bool) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return Invitee{}, false
		}
		return Invitee{Email: v, Status: StatusInvited}, true
	case Invitee:
		if v.Email == "" {
			return Invitee{}, false
		}
		if v.Status == "" {
			v.Status = StatusInvited
		}
		return v, true
	case map[string]any:
		email, _ := v["email"].(string)
		if email == "" {
			return Invitee{}, false
		}
		status, _ := v["status"].(string)
		if status == "" {
			status = StatusInvited
		}
		return Invitee{Email: email, Status: status}, true
	}
	return Invitee{}, false
}

// NormalizeInvitees reads a stored invitees field. A missing field is an empty list.
func NormalizeInvitees(raw any) []Invitee {
	out := []Invitee{}
	switch list := raw.(type) {
	case []any:
		for _, entry := range list {
			if inv, ok := NormalizeInvitee(entry); ok {
				out = append(out, inv)
			}
		}
	case []string:
		for _, entry := range list {
			if inv, ok := NormalizeInvitee(entry); ok {
				out = append(out, inv)
			}
		}
	case []map[string]any:
		for _, entry := range list {
			if inv, ok := NormalizeInvitee(entry); ok {
				out = append(out, inv)
			}
		}
	case []Invitee:
		for _, entry := range list {
			if inv, ok := NormalizeInvitee(entry); ok {
				out = append(out, inv)
			}
		}
	}
	return out
}

// InviteesDocument is the canonical stored form of an invitee list.
func InviteesDocument(list []Invitee) []any {
	out := make([]any, 0, len(list))
	for _, inv := range list {
		out = append(out, map[string]any{"email": inv.Email, "status": inv.Status})
	}
	return out
}

// IndexOfInvitee returns the position of email in list, or -1. Matching is case-sensitive.
func IndexOfInvitee(list []Invitee, email string) int {
	for i, inv := range list {
		if inv.Email == email {
			return i
		}
	}
	return -1
}
