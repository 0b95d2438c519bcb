package truck

import (
	"context"
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/imperialtrucks/truck-market/internal/models"
)

// ExportVersion tags export documents and store stats.
const ExportVersion = "1.0"

// Event actions published on listing changes.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// ImportResult reports the outcome of an import.
type ImportResult struct {
	Success       bool `json:"success"`
	ImportedCount int  `json:"importedCount"`
}

// Service is the query and lifecycle layer over a storage backend. Images
// and events are optional collaborators; a nil value disables them.
type Service struct {
	store  Store
	images ImageAssociator
	events EventPublisher
}

// NewService creates a truck service over the given store.
func NewService(store Store, images ImageAssociator, events EventPublisher) *Service {
	return &Service{store: store, images: images, events: events}
}

// List returns all trucks sorted by sortBy (default newest first). A
// storage outage degrades to an empty list rather than an error; the
// failure is logged.
func (s *Service) List(ctx context.Context, sortBy string) []models.Truck {
	trucks, err := s.store.List(ctx)
	if err != nil {
		log.WithError(err).Warn("listing trucks failed, returning empty result")
		return []models.Truck{}
	}
	for i := range trucks {
		trucks[i] = Denormalize(trucks[i])
	}
	return SortTrucks(trucks, sortBy)
}

// Filter returns the sorted list narrowed to trucks matching every
// criteria entry. Filter with empty criteria is equivalent to List.
func (s *Service) Filter(ctx context.Context, criteria map[string]any, sortBy string) []models.Truck {
	return FilterTrucks(s.List(ctx, sortBy), criteria)
}

// Get returns a single truck by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Truck, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	d := Denormalize(*t)
	return &d, nil
}

// Create stores a new truck from the partial input. Temporary upload
// references in the image list are re-homed under the new id afterwards,
// rewriting the record's image list in a second update.
func (s *Service) Create(ctx context.Context, patch models.TruckPatch) (*models.Truck, error) {
	created, err := s.store.Create(ctx, patch)
	if err != nil {
		return nil, err
	}
	created, err = s.associateImages(ctx, created)
	if err != nil {
		return nil, err
	}
	s.publish(EventCreated, *created)
	return created, nil
}

// Update shallow-merges the partial input over the existing record.
func (s *Service) Update(ctx context.Context, id string, patch models.TruckPatch) (*models.Truck, error) {
	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	updated, err = s.associateImages(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.publish(EventUpdated, *updated)
	return updated, nil
}

// Delete removes a truck and, best-effort, its image files.
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(EventDeleted, *existing)
	return nil
}

// Export returns a full snapshot of the collection, usable as import
// input.
func (s *Service) Export(ctx context.Context) (*models.ExportDocument, error) {
	trucks, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range trucks {
		trucks[i] = Denormalize(trucks[i])
	}
	return &models.ExportDocument{
		Version:    ExportVersion,
		ExportDate: time.Now().UTC(),
		TruckCount: len(trucks),
		Trucks:     trucks,
	}, nil
}

// Import replaces the entire collection with the records from the given
// document. Not a merge: existing records are dropped, imported ids are
// preserved. Fails with ErrInvalidFormat when the trucks field is missing
// or not an array.
func (s *Service) Import(ctx context.Context, raw json.RawMessage) (*ImportResult, error) {
	var probe struct {
		Trucks json.RawMessage `json:"trucks"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, ErrInvalidFormat
	}
	var trucks []models.Truck
	if probe.Trucks == nil || json.Unmarshal(probe.Trucks, &trucks) != nil {
		return nil, ErrInvalidFormat
	}

	kept := make([]models.Truck, 0, len(trucks))
	for _, t := range trucks {
		if t.ID == "" {
			continue
		}
		kept = append(kept, Denormalize(t))
	}
	if err := s.store.Replace(ctx, kept); err != nil {
		return nil, err
	}
	return &ImportResult{Success: true, ImportedCount: len(trucks)}, nil
}

// Stats reports backend health and record count.
func (s *Service) Stats(ctx context.Context) (*models.StoreStats, error) {
	return s.store.Stats(ctx)
}

// associateImages rewrites temporary upload references to id-derived
// paths and persists the substituted list when anything changed.
func (s *Service) associateImages(ctx context.Context, t *models.Truck) (*models.Truck, error) {
	if s.images == nil || len(t.Images) == 0 {
		return t, nil
	}
	refs, changed := s.images.Associate(t.ID, t.Images)
	if !changed {
		return t, nil
	}
	return s.store.Update(ctx, t.ID, models.TruckPatch{Images: refs})
}

func (s *Service) publish(action string, t models.Truck) {
	if s.events == nil {
		return
	}
	s.events.Publish(action, t)
}
