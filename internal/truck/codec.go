// Package truck implements the truck-listing domain: the record codec,
// the query layer, the store contract, and the service that ties them to
// a storage backend.
package truck

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/imperialtrucks/truck-market/internal/models"
)

// Provenance tags recorded on the source field.
const (
	SourceAdminCreated = "admin_created"
	SourceAdminUpdated = "admin_updated"
)

// GenerateID returns a new unique truck id: base36 unix milliseconds plus
// a base36 random suffix. Collision probability is treated as negligible
// and is not actively checked.
func GenerateID() string {
	millis := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strconv.FormatUint(rand.Uint64(), 36)
	return millis + suffix
}

// NormalizeForCreate maps a partial input to the canonical stored record
// for the create path: defaults are filled, a fresh id is assigned (any
// caller-supplied id is ignored), and created_date is set. The codec
// never rejects input; validation is the caller's responsibility.
func NormalizeForCreate(patch models.TruckPatch) models.Truck {
	var t models.Truck
	applyPatch(&t, patch)

	t.ID = GenerateID()
	t.CreatedDate = time.Now().UTC()
	t.UpdatedDate = nil
	if t.Status == "" {
		t.Status = models.StatusAvailable
	}
	if t.Source == "" {
		t.Source = SourceAdminCreated
	}
	return Denormalize(t)
}

// MergePatch shallow-merges a partial input over an existing record for
// the update path: supplied fields overwrite, absent fields are retained,
// the id is forced to the given value regardless of payload content, and
// updated_date is refreshed. created_date is never overwritten.
func MergePatch(existing models.Truck, patch models.TruckPatch, id string) models.Truck {
	t := existing
	applyPatch(&t, patch)

	t.ID = id
	t.CreatedDate = existing.CreatedDate
	now := time.Now().UTC()
	t.UpdatedDate = &now
	// Provenance survives updates; the payload cannot rewrite it.
	t.Source = existing.Source
	if t.Source == "" {
		t.Source = SourceAdminUpdated
	}
	return Denormalize(t)
}

// Denormalize guarantees the slice-typed fields are never nil, even when
// the stored form lost them.
func Denormalize(t models.Truck) models.Truck {
	if t.Features == nil {
		t.Features = []string{}
	}
	if t.Images == nil {
		t.Images = []string{}
	}
	return t
}

func applyPatch(t *models.Truck, p models.TruckPatch) {
	if p.Make != nil {
		t.Make = *p.Make
	}
	if p.Model != nil {
		t.Model = *p.Model
	}
	if p.Year != nil {
		t.Year = *p.Year
	}
	if p.Price != nil {
		t.Price = *p.Price
	}
	if p.Mileage != nil {
		t.Mileage = *p.Mileage
	}
	if p.Condition != nil {
		t.Condition = *p.Condition
	}
	if p.FuelType != nil {
		t.FuelType = *p.FuelType
	}
	if p.Transmission != nil {
		t.Transmission = *p.Transmission
	}
	if p.Engine != nil {
		t.Engine = *p.Engine
	}
	if p.Horsepower != nil {
		t.Horsepower = *p.Horsepower
	}
	if p.Torque != nil {
		t.Torque = *p.Torque
	}
	if p.AxleConfiguration != nil {
		t.AxleConfiguration = *p.AxleConfiguration
	}
	if p.CabType != nil {
		t.CabType = *p.CabType
	}
	if p.SleeperSize != nil {
		t.SleeperSize = *p.SleeperSize
	}
	if p.Wheelbase != nil {
		t.Wheelbase = *p.Wheelbase
	}
	if p.GVWR != nil {
		t.GVWR = *p.GVWR
	}
	if p.ExteriorColor != nil {
		t.ExteriorColor = *p.ExteriorColor
	}
	if p.InteriorColor != nil {
		t.InteriorColor = *p.InteriorColor
	}
	// company_inspected and imperial_inspected are the same logical
	// attribute; the canonical name wins when both are present.
	if p.CompanyInspected != nil {
		t.CompanyInspected = *p.CompanyInspected
	} else if p.ImperialInspected != nil {
		t.CompanyInspected = *p.ImperialInspected
	}
	if p.InspectionDate != nil {
		t.InspectionDate = *p.InspectionDate
	}
	if p.InspectionNotes != nil {
		t.InspectionNotes = *p.InspectionNotes
	}
	if p.Features != nil {
		t.Features = p.Features
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ShopName != nil {
		t.ShopName = *p.ShopName
	}
	if p.ContactPhone != nil {
		t.ContactPhone = *p.ContactPhone
	}
	if p.ContactEmail != nil {
		t.ContactEmail = *p.ContactEmail
	}
	if p.Location != nil {
		t.Location = *p.Location
	}
	if p.Latitude != nil {
		t.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		t.Longitude = p.Longitude
	}
	if p.VIN != nil {
		t.VIN = *p.VIN
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Images != nil {
		t.Images = p.Images
	}
	if p.Source != nil {
		t.Source = *p.Source
	}
}
