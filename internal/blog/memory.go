package blog

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is an in-memory Repository used in unit tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*Post
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*Post)}
}

// Seed adds a post, standing in for the out-of-band seeding the real
// collection receives.
func (m *MemoryRepository) Seed(p *Post) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
}

func (m *MemoryRepository) List(ctx context.Context) ([]Card, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cards := make([]Card, 0, len(m.store))
	for _, p := range m.store {
		cards = append(cards, Card{ID: p.ID, Title: p.Title, Summary: p.Summary, Tags: p.Tags, CreatedAt: p.CreatedAt, HeroImage: p.HeroImage})
	}
	// newest first; ISO timestamps sort lexicographically
	sort.SliceStable(cards, func(i, j int) bool { return cards[i].CreatedAt > cards[j].CreatedAt })
	return cards, nil
}

func (m *MemoryRepository) Get(ctx context.Context, id string) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}
