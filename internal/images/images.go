// Package images manages truck image files on disk: storing uploads
// under temporary names, re-homing them once a truck id is known, and
// cleaning up when a truck is deleted.
package images

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// URLPrefix is the public path images are served under. Upload
// references that do not point here pass through association unchanged.
const URLPrefix = "/data/trucks/images/"

const (
	uploadPrefix = "upload_"
	truckPrefix  = "truck_"
)

// Manager owns the images directory.
type Manager struct {
	dir string
}

// NewManager creates a Manager storing images under <dataDir>/images.
func NewManager(dataDir string) *Manager {
	return &Manager{dir: filepath.Join(dataDir, "images")}
}

// Dir returns the images directory on disk.
func (m *Manager) Dir() string {
	return m.dir
}

// UploadResult describes a stored upload.
type UploadResult struct {
	FileName   string    `json:"fileName"`
	FileURL    string    `json:"file_url"`
	FileSize   int64     `json:"file_size"`
	UploadDate time.Time `json:"upload_date"`
}

// SaveUpload stores an uploaded file under a temporary upload_<stamp>
// name, keeping the original extension. The owning truck id is not known
// yet; Associate re-homes the file later.
func (m *Manager) SaveUpload(r io.Reader, originalName string) (*UploadResult, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating images directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	name := uploadPrefix + strconv.FormatInt(time.Now().UnixMilli(), 10) + ext
	path := filepath.Join(m.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating upload file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("writing upload file: %w", err)
	}

	return &UploadResult{
		FileName:   name,
		FileURL:    URLPrefix + name,
		FileSize:   size,
		UploadDate: time.Now().UTC(),
	}, nil
}

// Associate renames temporary upload files to truck_<id>_<suffix> names
// and substitutes the references accordingly. References that do not
// match the temporary pattern pass through unchanged. An individual
// rename failure keeps that reference as-is and processing continues.
func (m *Manager) Associate(truckID string, refs []string) ([]string, bool) {
	out := make([]string, len(refs))
	changed := false
	for i, ref := range refs {
		out[i] = ref
		base, ok := uploadBase(ref)
		if !ok {
			continue
		}
		newName := truckPrefix + truckID + "_" + strings.TrimPrefix(base, uploadPrefix)
		if err := os.Rename(filepath.Join(m.dir, base), filepath.Join(m.dir, newName)); err != nil {
			log.WithError(err).WithField("image", base).Warn("could not associate image, keeping original reference")
			continue
		}
		out[i] = URLPrefix + newName
		changed = true
	}
	return out, changed
}

// RemoveForTruck deletes every image file prefixed with the truck's id.
// Best-effort: failures are logged, never returned.
func (m *Manager) RemoveForTruck(truckID string) int {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).Warn("could not read images directory for cleanup")
		}
		return 0
	}

	prefix := truckPrefix + truckID + "_"
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		if err := os.Remove(filepath.Join(m.dir, e.Name())); err != nil {
			log.WithError(err).WithField("image", e.Name()).Warn("could not delete image")
			continue
		}
		removed++
	}
	return removed
}

// uploadBase extracts the on-disk filename from a reference when it is a
// temporary upload at the known upload origin.
func uploadBase(ref string) (string, bool) {
	if !strings.HasPrefix(ref, URLPrefix) {
		return "", false
	}
	base := strings.TrimPrefix(ref, URLPrefix)
	if base == "" || strings.Contains(base, "/") || !strings.HasPrefix(base, uploadPrefix) {
		return "", false
	}
	return base, true
}
