package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imperialtrucks/truck-market/internal/models"
	"github.com/imperialtrucks/truck-market/internal/truck"
)

func strp(s string) *string     { return &s }
func intp(n int) *int           { return &n }
func floatp(f float64) *float64 { return &f }

func samplePatch() models.TruckPatch {
	return models.TruckPatch{
		Make:  strp("Peterbilt"),
		Model: strp("579"),
		Year:  intp(2019),
		Price: floatp(85000),
	}
}

func TestMemory_CreateAndGet(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	created, err := s.Create(ctx, samplePatch())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)
}

func TestMemory_GetMissing(t *testing.T) {
	s := NewMemory()

	_, err := s.Get(context.Background(), "nope")
	assert.True(t, truck.IsNotFound(err))
	assert.EqualError(t, err, "Truck not found: nope")
}

func TestMemory_ListInsertionOrder(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	first, err := s.Create(ctx, samplePatch())
	require.NoError(t, err)
	second, err := s.Create(ctx, models.TruckPatch{Make: strp("Kenworth")})
	require.NoError(t, err)

	trucks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, trucks, 2)
	assert.Equal(t, first.ID, trucks[0].ID)
	assert.Equal(t, second.ID, trucks[1].ID)
}

func TestMemory_Update(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	created, err := s.Create(ctx, samplePatch())
	require.NoError(t, err)

	updated, err := s.Update(ctx, created.ID, models.TruckPatch{Price: floatp(80000)})
	require.NoError(t, err)
	assert.Equal(t, 80000.0, updated.Price)
	assert.Equal(t, "Peterbilt", updated.Make)

	_, err = s.Update(ctx, "nope", models.TruckPatch{Price: floatp(1)})
	assert.True(t, truck.IsNotFound(err))
}

func TestMemory_Delete(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	created, err := s.Create(ctx, samplePatch())
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))

	_, err = s.Get(ctx, created.ID)
	assert.True(t, truck.IsNotFound(err))

	err = s.Delete(ctx, created.ID)
	assert.True(t, truck.IsNotFound(err))
}

func TestMemory_Replace(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_, err := s.Create(ctx, samplePatch())
	require.NoError(t, err)

	replacement := []models.Truck{
		{ID: "r1", Make: "Volvo"},
		{ID: "r2", Make: "Mack"},
	}
	require.NoError(t, s.Replace(ctx, replacement))

	trucks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, trucks, 2)
	assert.Equal(t, "r1", trucks[0].ID)
	assert.Equal(t, "r2", trucks[1].ID)
}

func TestMemory_Stats(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_, err := s.Create(ctx, samplePatch())
	require.NoError(t, err)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", stats.Status)
	assert.Equal(t, 1, stats.TruckCount)
	assert.Equal(t, "1.0", stats.Version)
}
