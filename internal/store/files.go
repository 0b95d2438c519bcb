package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/imperialtrucks/truck-market/internal/images"
	"github.com/imperialtrucks/truck-market/internal/models"
	"github.com/imperialtrucks/truck-market/internal/truck"
)

const (
	truckFilePrefix = "truck_"
	truckFileSuffix = ".json"
)

// Files stores one truck_<id>.json document per record under the data
// directory. The record set is derived from a directory listing; there
// is no secondary index. Same contract and data dir as the Index
// backend, alternate layout.
type Files struct {
	mu      sync.Mutex
	dataDir string
	images  *images.Manager
}

// NewFiles creates a file-per-record store rooted at dataDir.
func NewFiles(dataDir string, imgs *images.Manager) (*Files, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Files{dataDir: dataDir, images: imgs}, nil
}

func (s *Files) path(id string) string {
	return filepath.Join(s.dataDir, truckFilePrefix+id+truckFileSuffix)
}

// listIDs returns every record id present, in directory order.
func (s *Files) listIDs() ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, truck.NewUnavailable(err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, truckFilePrefix) || !strings.HasSuffix(name, truckFileSuffix) {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(name, truckFilePrefix), truckFileSuffix)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// read loads one record file. Any failure, including a corrupt file,
// reads as the record being absent.
func (s *Files) read(id string) (*models.Truck, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, truck.NewNotFound(id)
	}
	var t models.Truck
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, truck.NewNotFound(id)
	}
	return &t, nil
}

func (s *Files) write(t models.Truck) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding truck %s: %w", t.ID, err)
	}
	return atomicWrite(s.path(t.ID), data)
}

func (s *Files) List(ctx context.Context) ([]models.Truck, error) {
	ids, err := s.listIDs()
	if err != nil {
		return nil, err
	}
	trucks := make([]models.Truck, 0, len(ids))
	for _, id := range ids {
		t, err := s.read(id)
		if err != nil {
			// A file that vanished or went corrupt between the
			// listing and the read makes the whole listing
			// unreliable.
			return nil, truck.NewUnavailable(err)
		}
		trucks = append(trucks, *t)
	}
	return trucks, nil
}

func (s *Files) Get(ctx context.Context, id string) (*models.Truck, error) {
	return s.read(id)
}

func (s *Files) Create(ctx context.Context, patch models.TruckPatch) (*models.Truck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := truck.NormalizeForCreate(patch)
	if err := s.write(t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Files) Update(ctx context.Context, id string, patch models.TruckPatch) (*models.Truck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.read(id)
	if err != nil {
		return nil, err
	}
	merged := truck.MergePatch(*existing, patch, id)
	if err := s.write(merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (s *Files) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.read(id); err != nil {
		return err
	}
	if err := os.Remove(s.path(id)); err != nil {
		return fmt.Errorf("deleting truck file: %w", err)
	}
	if s.images != nil {
		s.images.RemoveForTruck(id)
	}
	return nil
}

func (s *Files) Replace(ctx context.Context, trucks []models.Truck) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.listIDs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := os.Remove(s.path(id)); err != nil {
			return fmt.Errorf("removing truck file: %w", err)
		}
	}
	for _, t := range trucks {
		if err := s.write(t); err != nil {
			return err
		}
	}
	return nil
}

func (s *Files) Stats(ctx context.Context) (*models.StoreStats, error) {
	ids, err := s.listIDs()
	if err != nil {
		return nil, err
	}
	stats := &models.StoreStats{
		Version:     truck.ExportVersion,
		Status:      "healthy",
		TruckCount:  len(ids),
		DataDir:     s.dataDir,
		LastChecked: time.Now().UTC(),
	}
	if s.images != nil {
		stats.ImagesDir = s.images.Dir()
	}
	return stats, nil
}
