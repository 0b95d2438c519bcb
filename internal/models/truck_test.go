package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumValidation(t *testing.T) {
	assert.True(t, IsValidCondition(ConditionExcellent))
	assert.False(t, IsValidCondition("mint"))

	assert.True(t, IsValidFuelType(FuelDiesel))
	assert.False(t, IsValidFuelType("coal"))

	assert.True(t, IsValidStatus(StatusAvailable))
	assert.False(t, IsValidStatus("archived"))
}

func TestTruckWireFormat(t *testing.T) {
	truck := Truck{
		ID:               "abc123",
		Make:             "Peterbilt",
		Model:            "579",
		Year:             2019,
		Price:            85000,
		CompanyInspected: true,
		Features:         []string{"APU"},
		Images:           []string{},
		Status:           StatusAvailable,
		CreatedDate:      time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(truck)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))

	// Field names are snake_case on the wire.
	assert.Equal(t, "abc123", m["id"])
	assert.Equal(t, true, m["company_inspected"])
	assert.Equal(t, "2023-06-01T12:00:00Z", m["created_date"])
	assert.NotContains(t, m, "updated_date")
	assert.NotContains(t, m, "mileage")
}

func TestTruckPatchAbsentFieldsStayNil(t *testing.T) {
	var patch TruckPatch
	require.NoError(t, json.Unmarshal([]byte(`{"price":79000}`), &patch))

	require.NotNil(t, patch.Price)
	assert.Equal(t, 79000.0, *patch.Price)
	assert.Nil(t, patch.Make)
	assert.Nil(t, patch.Features)
	assert.Nil(t, patch.CompanyInspected)
}

func TestTruckPatchLegacyInspectedAlias(t *testing.T) {
	var patch TruckPatch
	require.NoError(t, json.Unmarshal([]byte(`{"imperial_inspected":true}`), &patch))

	require.NotNil(t, patch.ImperialInspected)
	assert.True(t, *patch.ImperialInspected)
	assert.Nil(t, patch.CompanyInspected)
}
