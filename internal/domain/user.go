package domain

const DefaultRole = "user"

// User is identified by email. Password holds a bcrypt hash and is never serialized.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Role     string `json:"role"`
}

func UserFromDocument(doc map[string]any) User {
	return User{
		Name:     stringField(doc, "name"),
		Email:    stringField(doc, "email"),
		Password: stringField(doc, "password"),
		Role:     stringField(doc, "role"),
	}
}

func (u User) Document() map[string]any {
	return map[string]any{
		"name":     u.Name,
		"email":    u.Email,
		"password": u.Password,
		"role":     u.Role,
	}
}
