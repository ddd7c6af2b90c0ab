package mockapi

import (
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/suteetoe/productdesk/internal/model"
)

var (
	errNotFound     = errors.New("not found")
	errEmailTaken   = errors.New("email already registered")
	errUnknownEmail = errors.New("unknown email")
)

// Store keeps products and accounts in memory, in insertion order
type Store struct {
	mu       sync.RWMutex
	order    []string
	products map[string]model.Record
	users    map[string]user
}

type user struct {
	ID           string
	Email        string
	PasswordHash string
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		products: make(map[string]model.Record),
		users:    make(map[string]user),
	}
}

// Products returns a snapshot of all products
func (s *Store) Products() []model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]model.Record, 0, len(s.order))
	for _, id := range s.order {
		records = append(records, s.products[id])
	}
	return records
}

// Insert stores a product under a new ObjectID, ignoring any id the caller proposed
func (s *Store) Insert(p model.Payload) model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := model.Record{ID: primitive.NewObjectID().Hex(), Payload: p}
	s.products[record.ID] = record
	s.order = append(s.order, record.ID)
	return record
}

// Replace overwrites the product with the given id
func (s *Store) Replace(id string, p model.Payload) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return model.Record{}, errNotFound
	}
	record := model.Record{ID: id, Payload: p}
	s.products[id] = record
	return record, nil
}

// Remove deletes the product with the given id
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return errNotFound
	}
	delete(s.products, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// AddUser registers an account with an already hashed password
func (s *Store) AddUser(email, passwordHash string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; ok {
		return "", errEmailTaken
	}
	id := primitive.NewObjectID().Hex()
	s.users[email] = user{ID: id, Email: email, PasswordHash: passwordHash}
	return id, nil
}

func (s *Store) findUser(email string) (user, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email]
	if !ok {
		return user{}, errUnknownEmail
	}
	return u, nil
}
