package images

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveUpload(t *testing.T) {
	m := NewManager(t.TempDir())

	result, err := m.SaveUpload(strings.NewReader("fake image bytes"), "Photo.JPG")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.FileName, "upload_"))
	assert.True(t, strings.HasSuffix(result.FileName, ".jpg"))
	assert.Equal(t, URLPrefix+result.FileName, result.FileURL)
	assert.Equal(t, int64(len("fake image bytes")), result.FileSize)

	data, err := os.ReadFile(filepath.Join(m.Dir(), result.FileName))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestAssociate_RenamesUpload(t *testing.T) {
	m := NewManager(t.TempDir())

	result, err := m.SaveUpload(strings.NewReader("img"), "a.png")
	require.NoError(t, err)

	refs, changed := m.Associate("t1", []string{result.FileURL})
	assert.True(t, changed)
	require.Len(t, refs, 1)

	suffix := strings.TrimPrefix(result.FileName, "upload_")
	assert.Equal(t, URLPrefix+"truck_t1_"+suffix, refs[0])

	_, err = os.Stat(filepath.Join(m.Dir(), "truck_t1_"+suffix))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(m.Dir(), result.FileName))
	assert.True(t, os.IsNotExist(err))
}

func TestAssociate_ForeignReferencesPassThrough(t *testing.T) {
	m := NewManager(t.TempDir())

	refs := []string{
		"https://example.com/external.jpg",
		URLPrefix + "truck_other_1.jpg",
		"",
	}
	out, changed := m.Associate("t1", refs)
	assert.False(t, changed)
	assert.Equal(t, refs, out)
}

func TestAssociate_MissingFileKeepsReference(t *testing.T) {
	m := NewManager(t.TempDir())

	ref := URLPrefix + "upload_123.jpg"
	out, changed := m.Associate("t1", []string{ref})
	assert.False(t, changed)
	assert.Equal(t, []string{ref}, out)
}

func TestAssociate_RejectsPathTraversal(t *testing.T) {
	m := NewManager(t.TempDir())

	ref := URLPrefix + "../upload_123.jpg"
	out, changed := m.Associate("t1", []string{ref})
	assert.False(t, changed)
	assert.Equal(t, []string{ref}, out)
}

func TestRemoveForTruck(t *testing.T) {
	m := NewManager(t.TempDir())
	require.NoError(t, os.MkdirAll(m.Dir(), 0o755))

	for _, name := range []string{"truck_t1_a.jpg", "truck_t1_b.jpg", "truck_t2_a.jpg", "upload_1.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(m.Dir(), name), []byte("x"), 0o644))
	}

	removed := m.RemoveForTruck("t1")
	assert.Equal(t, 2, removed)

	entries, err := os.ReadDir(m.Dir())
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"truck_t2_a.jpg", "upload_1.jpg"}, names)
}

func TestRemoveForTruck_MissingDirectory(t *testing.T) {
	m := NewManager(t.TempDir())
	assert.Equal(t, 0, m.RemoveForTruck("t1"))
}
