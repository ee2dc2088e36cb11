package user

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/example/restaurant-orders/internal/infrastructure/store"
)

const collection = "users"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("user already exists")
)

// User is a registered account. PasswordHash is the bcrypt hash persisted
// with the document; API responses use trimmed views, never this struct.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Store is the typed user collection over the document store.
type Store struct {
	docs store.DocumentStore
}

func NewStore(docs store.DocumentStore) *Store {
	return &Store{docs: docs}
}

// Insert persists a new user. Fails with ErrEmailTaken when the email is
// already registered.
func (s *Store) Insert(ctx context.Context, u *User) (string, error) {
	if _, exists, err := s.FindByEmail(ctx, u.Email); err != nil {
		return "", err
	} else if exists {
		return "", ErrEmailTaken
	}

	u.ID = uuid.New().String()
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	u.CreatedAt = time.Now().UTC()
	if err := s.docs.Put(ctx, collection, u.ID, u); err != nil {
		return "", err
	}
	return u.ID, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*User, bool, error) {
	doc, ok, err := s.docs.Get(ctx, collection, id)
	if err != nil || !ok {
		return nil, false, err
	}
	var u User
	if err := json.Unmarshal(doc, &u); err != nil {
		return nil, false, err
	}
	return &u, true, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*User, bool, error) {
	docs, err := s.docs.FindByField(ctx, collection, "email", email)
	if err != nil {
		return nil, false, err
	}
	if len(docs) == 0 {
		return nil, false, nil
	}
	var u User
	if err := json.Unmarshal(docs[0], &u); err != nil {
		return nil, false, err
	}
	return &u, true, nil
}
