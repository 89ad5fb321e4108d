package project

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is an in-memory Repository used in unit tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*Project
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*Project)}
}

func (m *MemoryRepository) List(ctx context.Context) ([]Card, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cards := make([]Card, 0, len(m.store))
	for _, p := range m.store {
		cards = append(cards, Card{ID: p.ID, Title: p.Title, Description: p.Description, HeroImage: p.HeroImage})
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID < cards[j].ID })
	return cards, nil
}

func (m *MemoryRepository) Get(ctx context.Context, id string) (*Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.store[id]
	return ok, nil
}

func (m *MemoryRepository) Create(ctx context.Context, p *Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[p.ID]; ok {
		return ErrDuplicateID
	}
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *MemoryRepository) Replace(ctx context.Context, p *Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[p.ID]; !ok {
		return ErrNotFound
	}
	cp := *p
	m.store[p.ID] = &cp
	return nil
}
