// Package store provides the storage backends for truck listings: an
// in-process map, a single JSON index document, one JSON file per
// record, a MongoDB collection, and a remote HTTP adapter. All of them
// satisfy the truck.Store contract and behave identically to callers.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/imperialtrucks/truck-market/internal/models"
	"github.com/imperialtrucks/truck-market/internal/truck"
)

// Memory is an in-process implementation of truck.Store, keyed by id
// with an insertion-order list and a monotonically incrementing sequence
// counter. Contents are volatile. Safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	trucks   map[string]models.Truck
	order    []string
	sequence int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{trucks: make(map[string]models.Truck)}
}

func (m *Memory) List(ctx context.Context) ([]models.Truck, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Truck, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.trucks[id])
	}
	return out, nil
}

func (m *Memory) Get(ctx context.Context, id string) (*models.Truck, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.trucks[id]
	if !ok {
		return nil, truck.NewNotFound(id)
	}
	return &t, nil
}

func (m *Memory) Create(ctx context.Context, patch models.TruckPatch) (*models.Truck, error) {
	t := truck.NormalizeForCreate(patch)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sequence++
	m.trucks[t.ID] = t
	m.order = append(m.order, t.ID)
	return &t, nil
}

func (m *Memory) Update(ctx context.Context, id string, patch models.TruckPatch) (*models.Truck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.trucks[id]
	if !ok {
		return nil, truck.NewNotFound(id)
	}
	merged := truck.MergePatch(existing, patch, id)
	m.trucks[id] = merged
	return &merged, nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.trucks[id]; !ok {
		return truck.NewNotFound(id)
	}
	delete(m.trucks, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) Replace(ctx context.Context, trucks []models.Truck) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.trucks = make(map[string]models.Truck, len(trucks))
	m.order = m.order[:0]
	for _, t := range trucks {
		if _, ok := m.trucks[t.ID]; !ok {
			m.order = append(m.order, t.ID)
		}
		m.trucks[t.ID] = t
	}
	m.sequence = len(m.order)
	return nil
}

func (m *Memory) Stats(ctx context.Context) (*models.StoreStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return &models.StoreStats{
		Version:     truck.ExportVersion,
		Status:      "healthy",
		TruckCount:  len(m.trucks),
		LastChecked: time.Now().UTC(),
	}, nil
}
