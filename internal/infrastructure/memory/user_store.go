package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/MedStock-api/internal/domain"
	"github.com/jhoicas/MedStock-api/internal/domain/entity"
	"github.com/jhoicas/MedStock-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserStore)(nil)

// UserStore repositorio de usuarios en memoria.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]entity.User
}

// NewUserStore construye un repositorio vacío.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]entity.User)}
}

// Create persiste el usuario; ErrEmailAlreadyExists si el email ya existe (sin distinguir mayúsculas).
func (s *UserStore) Create(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	s.users[user.ID] = *user
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (s *UserStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetByEmail devuelve nil, nil si no existe.
func (s *UserStore) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

// CountBySite cuenta los usuarios asignados a la sede.
func (s *UserStore) CountBySite(_ context.Context, siteID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, u := range s.users {
		if u.SiteID == siteID {
			n++
		}
	}
	return n, nil
}
