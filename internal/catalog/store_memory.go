package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// InMemoryStore keeps products in a map. Used by tests and local dev.
type InMemoryStore struct {
	mu       sync.RWMutex
	products map[string]Product
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{products: make(map[string]Product)}
}

func (s *InMemoryStore) Create(_ context.Context, p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.products[p.ID]; exists {
		return fmt.Errorf("product %s already exists", p.ID)
	}
	s.products[p.ID] = p
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *InMemoryStore) ListPending(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Product
	for _, p := range s.products {
		if p.VerificationStatus == StatusPending {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *InMemoryStore) SetStatus(_ context.Context, id string, status VerificationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return ErrNotFound
	}
	p.VerificationStatus = status
	p.UpdatedAt = time.Now()
	s.products[id] = p
	return nil
}

// ApplyVerifications validates the whole batch before touching any record
// so the all-or-nothing contract holds even in memory.
func (s *InMemoryStore) ApplyVerifications(_ context.Context, updates []VerificationUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range updates {
		if _, ok := s.products[u.ProductID]; !ok {
			return fmt.Errorf("apply verifications: %w: %s", ErrNotFound, u.ProductID)
		}
	}
	for _, u := range updates {
		p := s.products[u.ProductID]
		p.VerificationStatus = u.Status
		p.LastVerificationDate = &u.LastVerificationDate
		p.ComplianceSummary = u.ComplianceSummary
		p.UpdatedAt = u.LastVerificationDate
		s.products[u.ProductID] = p
	}
	return nil
}
