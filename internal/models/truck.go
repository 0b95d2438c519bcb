package models

import (
	"time"
)

// Condition represents the overall condition of a truck listing.
type Condition string

const (
	ConditionNew       Condition = "new"
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
)

// FuelType represents the fuel type of a truck.
type FuelType string

const (
	FuelDiesel     FuelType = "diesel"
	FuelElectric   FuelType = "electric"
	FuelNaturalGas FuelType = "natural_gas"
	FuelHybrid     FuelType = "hybrid"
)

// Status represents the sale status of a truck listing.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusSold      Status = "sold"
)

// Truck represents one truck listing, the unit of storage.
type Truck struct {
	ID                string     `bson:"id" json:"id"`
	Make              string     `bson:"make" json:"make"`
	Model             string     `bson:"model" json:"model"`
	Year              int        `bson:"year" json:"year"`
	Price             float64    `bson:"price" json:"price"`
	Mileage           int        `bson:"mileage,omitempty" json:"mileage,omitempty"`
	Condition         Condition  `bson:"condition,omitempty" json:"condition,omitempty"`
	FuelType          FuelType   `bson:"fuel_type,omitempty" json:"fuel_type,omitempty"`
	Transmission      string     `bson:"transmission,omitempty" json:"transmission,omitempty"`
	Engine            string     `bson:"engine,omitempty" json:"engine,omitempty"`
	Horsepower        int        `bson:"horsepower,omitempty" json:"horsepower,omitempty"`
	Torque            int        `bson:"torque,omitempty" json:"torque,omitempty"`
	AxleConfiguration string     `bson:"axle_configuration,omitempty" json:"axle_configuration,omitempty"`
	CabType           string     `bson:"cab_type,omitempty" json:"cab_type,omitempty"`
	SleeperSize       string     `bson:"sleeper_size,omitempty" json:"sleeper_size,omitempty"`
	Wheelbase         int        `bson:"wheelbase,omitempty" json:"wheelbase,omitempty"`
	GVWR              int        `bson:"gvwr,omitempty" json:"gvwr,omitempty"`
	ExteriorColor     string     `bson:"exterior_color,omitempty" json:"exterior_color,omitempty"`
	InteriorColor     string     `bson:"interior_color,omitempty" json:"interior_color,omitempty"`
	CompanyInspected  bool       `bson:"company_inspected" json:"company_inspected"`
	InspectionDate    string     `bson:"inspection_date,omitempty" json:"inspection_date,omitempty"`
	InspectionNotes   string     `bson:"inspection_notes" json:"inspection_notes"`
	Features          []string   `bson:"features" json:"features"`
	Description       string     `bson:"description,omitempty" json:"description,omitempty"`
	ShopName          string     `bson:"shop_name,omitempty" json:"shop_name,omitempty"`
	ContactPhone      string     `bson:"contact_phone,omitempty" json:"contact_phone,omitempty"`
	ContactEmail      string     `bson:"contact_email,omitempty" json:"contact_email,omitempty"`
	Location          string     `bson:"location,omitempty" json:"location,omitempty"`
	Latitude          *float64   `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude         *float64   `bson:"longitude,omitempty" json:"longitude,omitempty"`
	VIN               string     `bson:"vin,omitempty" json:"vin,omitempty"`
	Status            Status     `bson:"status" json:"status"`
	Images            []string   `bson:"images" json:"images"`
	CreatedDate       time.Time  `bson:"created_date" json:"created_date"`
	UpdatedDate       *time.Time `bson:"updated_date,omitempty" json:"updated_date,omitempty"`
	Source            string     `bson:"source,omitempty" json:"source,omitempty"`
}

// TruckPatch is a partial truck record as supplied by callers on create and
// update. Nil fields are "not supplied" and keep their existing value.
type TruckPatch struct {
	ID                *string    `json:"id,omitempty"`
	Make              *string    `json:"make,omitempty"`
	Model             *string    `json:"model,omitempty"`
	Year              *int       `json:"year,omitempty"`
	Price             *float64   `json:"price,omitempty"`
	Mileage           *int       `json:"mileage,omitempty"`
	Condition         *Condition `json:"condition,omitempty"`
	FuelType          *FuelType  `json:"fuel_type,omitempty"`
	Transmission      *string    `json:"transmission,omitempty"`
	Engine            *string    `json:"engine,omitempty"`
	Horsepower        *int       `json:"horsepower,omitempty"`
	Torque            *int       `json:"torque,omitempty"`
	AxleConfiguration *string    `json:"axle_configuration,omitempty"`
	CabType           *string    `json:"cab_type,omitempty"`
	SleeperSize       *string    `json:"sleeper_size,omitempty"`
	Wheelbase         *int       `json:"wheelbase,omitempty"`
	GVWR              *int       `json:"gvwr,omitempty"`
	ExteriorColor     *string    `json:"exterior_color,omitempty"`
	InteriorColor     *string    `json:"interior_color,omitempty"`
	CompanyInspected  *bool      `json:"company_inspected,omitempty"`
	// ImperialInspected is a legacy alias for CompanyInspected kept for
	// older payloads. Same logical attribute, CompanyInspected wins when
	// both are present.
	ImperialInspected *bool      `json:"imperial_inspected,omitempty"`
	InspectionDate    *string    `json:"inspection_date,omitempty"`
	InspectionNotes   *string    `json:"inspection_notes,omitempty"`
	Features          []string   `json:"features,omitempty"`
	Description       *string    `json:"description,omitempty"`
	ShopName          *string    `json:"shop_name,omitempty"`
	ContactPhone      *string    `json:"contact_phone,omitempty"`
	ContactEmail      *string    `json:"contact_email,omitempty"`
	Location          *string    `json:"location,omitempty"`
	Latitude          *float64   `json:"latitude,omitempty"`
	Longitude         *float64   `json:"longitude,omitempty"`
	VIN               *string    `json:"vin,omitempty"`
	Status            *Status    `json:"status,omitempty"`
	Images            []string   `json:"images,omitempty"`
	Source            *string    `json:"source,omitempty"`
}

// IsValidCondition checks if a condition value is valid.
func IsValidCondition(c Condition) bool {
	switch c {
	case ConditionNew, ConditionExcellent, ConditionGood, ConditionFair:
		return true
	default:
		return false
	}
}

// IsValidFuelType checks if a fuel type value is valid.
func IsValidFuelType(f FuelType) bool {
	switch f {
	case FuelDiesel, FuelElectric, FuelNaturalGas, FuelHybrid:
		return true
	default:
		return false
	}
}

// IsValidStatus checks if a status value is valid.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusPending, StatusSold:
		return true
	default:
		return false
	}
}

// ExportDocument is a full snapshot of the truck collection, usable as
// import input.
type ExportDocument struct {
	Version    string    `json:"version"`
	ExportDate time.Time `json:"exportDate"`
	TruckCount int       `json:"truckCount"`
	Trucks     []Truck   `json:"trucks"`
}

// StoreStats describes the state of a storage backend.
type StoreStats struct {
	Version     string    `json:"version"`
	Status      string    `json:"status"`
	TruckCount  int       `json:"truckCount"`
	DataDir     string    `json:"dataDir,omitempty"`
	ImagesDir   string    `json:"imagesDir,omitempty"`
	LastChecked time.Time `json:"lastChecked"`
}
