package truck

import (
	"context"

	"github.com/imperialtrucks/truck-market/internal/models"
)

// Store is the contract every storage backend satisfies. All backends
// behave identically to calling code: same operations, same error
// taxonomy, same merge semantics.
type Store interface {
	// List returns every stored truck in storage order.
	List(ctx context.Context) ([]models.Truck, error)
	// Get returns the stored truck for id, or NotFoundError.
	Get(ctx context.Context, id string) (*models.Truck, error)
	// Create normalizes the partial input into a new record (fresh id,
	// defaults filled) and persists it.
	Create(ctx context.Context, patch models.TruckPatch) (*models.Truck, error)
	// Update shallow-merges the partial input over the existing record.
	// The id is immutable: the path parameter wins over any payload id.
	// Returns NotFoundError when id is absent.
	Update(ctx context.Context, id string, patch models.TruckPatch) (*models.Truck, error)
	// Delete removes the record, plus best-effort removal of image files
	// prefixed with the record id. Returns NotFoundError when absent.
	Delete(ctx context.Context, id string) error
	// Replace swaps the entire collection for the given records,
	// preserving their ids. Used by import.
	Replace(ctx context.Context, trucks []models.Truck) error
	// Stats reports backend health and record count.
	Stats(ctx context.Context) (*models.StoreStats, error)
}

// ImageAssociator re-homes temporary upload references under a truck's
// permanent id. Returns the substituted list and whether anything changed.
type ImageAssociator interface {
	Associate(truckID string, refs []string) ([]string, bool)
}

// EventPublisher receives listing lifecycle notifications. Publishing is
// fire-and-forget; failures must never fail the triggering operation.
type EventPublisher interface {
	Publish(action string, t models.Truck)
}
