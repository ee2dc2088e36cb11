package reservation

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/example/restaurant-orders/internal/infrastructure/store"
)

const collection = "reservations"

var ErrIncomplete = errors.New("reservation requires date, time, party size, name, phone and email")

// Reservation is a table booking request. Date, time and party size stay
// free-form strings; the restaurant confirms by phone or email.
type Reservation struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	People    string    `json:"people"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is the typed reservation collection over the document store.
type Store struct {
	docs store.DocumentStore
}

func NewStore(docs store.DocumentStore) *Store {
	return &Store{docs: docs}
}

func (s *Store) Insert(ctx context.Context, r *Reservation) (string, error) {
	if r.Date == "" || r.Time == "" || r.People == "" || r.Name == "" || r.Phone == "" || r.Email == "" {
		return "", ErrIncomplete
	}
	r.ID = uuid.New().String()
	r.CreatedAt = time.Now().UTC()
	if err := s.docs.Put(ctx, collection, r.ID, r); err != nil {
		return "", err
	}
	return r.ID, nil
}

// List returns reservations newest first.
func (s *Store) List(ctx context.Context) ([]*Reservation, error) {
	docs, err := s.docs.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	reservations := make([]*Reservation, 0, len(docs))
	for _, doc := range docs {
		var r Reservation
		if err := json.Unmarshal(doc, &r); err != nil {
			return nil, err
		}
		reservations = append(reservations, &r)
	}
	sort.SliceStable(reservations, func(i, j int) bool {
		return reservations[i].CreatedAt.After(reservations[j].CreatedAt)
	})
	return reservations, nil
}
