package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventplanner-backend/internal/domain"
	"eventplanner-backend/internal/infrastructure/docstore"
	"eventplanner-backend/internal/pkg/validation"

	"golang.org/x/crypto/bcrypt"
)

const DefaultPageLimit = 10

// Service is the users repository. Email is the natural key; uniqueness is checked
// before each write, there is no store constraint.
type Service struct {
	Store     docstore.Store
	PageLimit int
}

// CreateUserInput is the body of POST /api/users.
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Service) users() docstore.Collection {
	return s.Store.Collection(docstore.Users)
}

// List returns at most PageLimit users.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	limit := s.PageLimit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	docs, err := s.users().Find(ctx, docstore.Filter{}, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.UserFromDocument(d))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, email string) (*domain.User, error) {
	doc, err := s.users().FindOne(ctx, docstore.Filter{"email": email})
	if errors.Is(err, docstore.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	u := domain.UserFromDocument(doc)
	return &u, nil
}

func (s *Service) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrValidation)
	}
	if !validation.IsValidEmail(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}
	if _, err := s.Get(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	u := domain.User{Name: name, Email: email, Role: strings.TrimSpace(in.Role)}
	if u.Role == "" {
		u.Role = domain.DefaultRole
	}
	if in.Password != "" {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if err := s.users().InsertOne(ctx, u.Document()); err != nil {
		return nil, err
	}
	return &u, nil
}

// Update merges the supplied fields among name, email, password and role. Other keys
// are ignored; an update with none of them is a validation error.
func (s *Service) Update(ctx context.Context, email string, fields map[string]any) (*domain.User, error) {
	allowed := map[string]bool{"name": true, "email": true, "password": true, "role": true}
	set := docstore.Document{}
	for k, v := range fields {
		if !allowed[k] {
			continue
		}
		str, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a string", domain.ErrValidation, k)
		}
		set[k] = strings.TrimSpace(str)
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields", domain.ErrValidation)
	}

	current, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if newEmail, ok := set["email"].(string); ok && newEmail != email {
		if !validation.IsValidEmail(newEmail) {
			return nil, fmt.Errorf("%w: invalid email format", domain.ErrValidation)
		}
		if _, err := s.Get(ctx, newEmail); err == nil {
			return nil, domain.ErrUserExists
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	}
	if name, ok := set["name"].(string); ok && name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
	}
	if p, ok := set["password"].(string); ok {
		hash, err := hashPassword(p)
		if err != nil {
			return nil, err
		}
		set["password"] = hash
	}

	matched, err := s.users().UpdateOne(ctx, docstore.Filter{"email": email}, set)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, domain.ErrUserNotFound
	}
	for k, v := range set {
		switch k {
		case "name":
			current.Name = v.(string)
		case "email":
			current.Email = v.(string)
		case "password":
			current.Password = v.(string)
		case "role":
			current.Role = v.(string)
		}
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, email string) error {
	deleted, err := s.users().DeleteOne(ctx, docstore.Filter{"email": email})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// checkPassword reports whether password matches the stored hash.
func checkPassword(u *domain.User, password string) bool {
	if u == nil || u.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

func hashPassword(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("%w: password cannot be empty", domain.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(p), 10)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
