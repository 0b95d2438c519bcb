package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imperialtrucks/truck-market/internal/images"
	"github.com/imperialtrucks/truck-market/internal/models"
	"github.com/imperialtrucks/truck-market/internal/truck"
)

func newTestFiles(t *testing.T) (*Files, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewFiles(dir, images.NewManager(dir))
	require.NoError(t, err)
	return s, dir
}

func TestFiles_CreateWritesRecordFile(t *testing.T) {
	s, dir := newTestFiles(t)
	ctx := context.Background()

	created, err := s.Create(ctx, samplePatch())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "truck_"+created.ID+".json"))
	assert.NoError(t, err)
}

func TestFiles_GetMissing(t *testing.T) {
	s, _ := newTestFiles(t)

	_, err := s.Get(context.Background(), "nope")
	assert.True(t, truck.IsNotFound(err))
	assert.EqualError(t, err, "Truck not found: nope")
}

func TestFiles_CorruptFileReadsAsMissing(t *testing.T) {
	s, dir := newTestFiles(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "truck_bad.json"), []byte("{nope"), 0o644))

	_, err := s.Get(context.Background(), "bad")
	assert.True(t, truck.IsNotFound(err))
}

func TestFiles_ListIgnoresForeignFiles(t *testing.T) {
	s, dir := newTestFiles(t)
	ctx := context.Background()

	created, err := s.Create(ctx, samplePatch())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0o755))

	trucks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, trucks, 1)
	assert.Equal(t, created.ID, trucks[0].ID)
}

func TestFiles_UpdateAndDelete(t *testing.T) {
	s, dir := newTestFiles(t)
	ctx := context.Background()

	created, err := s.Create(ctx, samplePatch())
	require.NoError(t, err)

	updated, err := s.Update(ctx, created.ID, models.TruckPatch{Price: floatp(80000)})
	require.NoError(t, err)
	assert.Equal(t, 80000.0, updated.Price)
	assert.Equal(t, "Peterbilt", updated.Make)

	require.NoError(t, s.Delete(ctx, created.ID))
	_, err = os.Stat(filepath.Join(dir, "truck_"+created.ID+".json"))
	assert.True(t, os.IsNotExist(err))

	err = s.Delete(ctx, created.ID)
	assert.True(t, truck.IsNotFound(err))
}

func TestFiles_DeleteRemovesImages(t *testing.T) {
	s, dir := newTestFiles(t)
	ctx := context.Background()

	created, err := s.Create(ctx, samplePatch())
	require.NoError(t, err)

	imagesDir := filepath.Join(dir, "images")
	require.NoError(t, os.MkdirAll(imagesDir, 0o755))
	owned := filepath.Join(imagesDir, "truck_"+created.ID+"_1.jpg")
	require.NoError(t, os.WriteFile(owned, []byte("img"), 0o644))

	require.NoError(t, s.Delete(ctx, created.ID))

	_, err = os.Stat(owned)
	assert.True(t, os.IsNotExist(err))
}

func TestFiles_Replace(t *testing.T) {
	s, dir := newTestFiles(t)
	ctx := context.Background()

	created, err := s.Create(ctx, samplePatch())
	require.NoError(t, err)

	require.NoError(t, s.Replace(ctx, []models.Truck{{ID: "r1", Make: "Volvo"}}))

	_, err = os.Stat(filepath.Join(dir, "truck_"+created.ID+".json"))
	assert.True(t, os.IsNotExist(err))

	got, err := s.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Volvo", got.Make)
}

func TestFiles_Stats(t *testing.T) {
	s, dir := newTestFiles(t)
	ctx := context.Background()

	_, err := s.Create(ctx, samplePatch())
	require.NoError(t, err)
	_, err = s.Create(ctx, models.TruckPatch{Make: strp("Kenworth")})
	require.NoError(t, err)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TruckCount)
	assert.Equal(t, dir, stats.DataDir)
}
