package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/imperialtrucks/truck-market/internal/images"
	"github.com/imperialtrucks/truck-market/internal/models"
	"github.com/imperialtrucks/truck-market/internal/truck"
)

// indexFileName is the single durable document for the Index backend.
const indexFileName = "index.json"

// indexDocument is the on-disk aggregate: the full record collection
// plus a last-modified timestamp.
type indexDocument struct {
	Trucks      []models.Truck `json:"trucks"`
	LastUpdated time.Time      `json:"lastUpdated"`
}

// Index stores all trucks in one index.json document under the data
// directory. Every mutation is a whole-document read-modify-write; a
// process-local mutex serializes writers so an in-process race cannot
// lose an update. Cross-process writers still race at last-write-wins
// granularity.
type Index struct {
	mu      sync.Mutex
	dataDir string
	images  *images.Manager
}

// NewIndex creates an index-document store rooted at dataDir.
func NewIndex(dataDir string, imgs *images.Manager) (*Index, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Index{dataDir: dataDir, images: imgs}, nil
}

func (s *Index) path() string {
	return filepath.Join(s.dataDir, indexFileName)
}

// load reads the whole document. A missing file is an empty collection;
// an unreadable or corrupt file is an UnavailableError.
func (s *Index) load() (*indexDocument, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return &indexDocument{Trucks: []models.Truck{}}, nil
		}
		return nil, truck.NewUnavailable(err)
	}
	var doc indexDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, truck.NewUnavailable(err)
	}
	if doc.Trucks == nil {
		doc.Trucks = []models.Truck{}
	}
	return &doc, nil
}

// save persists the whole document with a refreshed timestamp, using an
// atomic temp-file-plus-rename so a failed write leaves the prior
// document intact.
func (s *Index) save(doc *indexDocument) error {
	doc.LastUpdated = time.Now().UTC()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding index document: %w", err)
	}
	return atomicWrite(s.path(), data)
}

func (s *Index) List(ctx context.Context) ([]models.Truck, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Trucks, nil
}

func (s *Index) Get(ctx context.Context, id string) (*models.Truck, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Trucks {
		if doc.Trucks[i].ID == id {
			t := doc.Trucks[i]
			return &t, nil
		}
	}
	return nil, truck.NewNotFound(id)
}

func (s *Index) Create(ctx context.Context, patch models.TruckPatch) (*models.Truck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	t := truck.NormalizeForCreate(patch)
	doc.Trucks = append(doc.Trucks, t)
	if err := s.save(doc); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Index) Update(ctx context.Context, id string, patch models.TruckPatch) (*models.Truck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Trucks {
		if doc.Trucks[i].ID != id {
			continue
		}
		merged := truck.MergePatch(doc.Trucks[i], patch, id)
		doc.Trucks[i] = merged
		if err := s.save(doc); err != nil {
			return nil, err
		}
		return &merged, nil
	}
	return nil, truck.NewNotFound(id)
}

func (s *Index) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for i := range doc.Trucks {
		if doc.Trucks[i].ID != id {
			continue
		}
		doc.Trucks = append(doc.Trucks[:i], doc.Trucks[i+1:]...)
		if err := s.save(doc); err != nil {
			return err
		}
		if s.images != nil {
			s.images.RemoveForTruck(id)
		}
		return nil
	}
	return truck.NewNotFound(id)
}

func (s *Index) Replace(ctx context.Context, trucks []models.Truck) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if trucks == nil {
		trucks = []models.Truck{}
	}
	return s.save(&indexDocument{Trucks: trucks})
}

func (s *Index) Stats(ctx context.Context) (*models.StoreStats, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	stats := &models.StoreStats{
		Version:     truck.ExportVersion,
		Status:      "healthy",
		TruckCount:  len(doc.Trucks),
		DataDir:     s.dataDir,
		LastChecked: time.Now().UTC(),
	}
	if s.images != nil {
		stats.ImagesDir = s.images.Dir()
	}
	return stats, nil
}

// atomicWrite writes data to path via a temp file and rename in the same
// directory.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
