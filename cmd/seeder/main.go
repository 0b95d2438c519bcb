// Seeder posts sample truck listings to a running truck-market server,
// useful for demos and local development. It logs in as the admin,
// then drives the same remote adapter the service itself uses.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/imperialtrucks/truck-market/internal/models"
	"github.com/imperialtrucks/truck-market/internal/store"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080/api", "base URL of the truck market API")
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password")
	clear := flag.Bool("clear", false, "delete all existing trucks instead of seeding")
	flag.Parse()

	if *password == "" {
		log.Fatal("password is required (-password)")
	}

	token, err := login(*apiURL, *username, *password)
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}

	remote := store.NewRemote(*apiURL)
	remote.SetToken(token)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if *clear {
		clearAll(ctx, remote)
		return
	}

	for _, patch := range sampleTrucks() {
		created, err := remote.Create(ctx, patch)
		if err != nil {
			log.WithError(err).Error("Failed to create truck")
			continue
		}
		log.WithFields(log.Fields{
			"id":    created.ID,
			"make":  created.Make,
			"model": created.Model,
		}).Info("Seeded truck")
	}
}

func login(apiURL, username, password string) (string, error) {
	body, err := json.Marshal(models.LoginRequest{Username: username, Password: password})
	if err != nil {
		return "", err
	}
	resp, err := http.Post(strings.TrimRight(apiURL, "/")+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login returned HTTP %d", resp.StatusCode)
	}
	var loginResp models.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return "", err
	}
	return loginResp.Token, nil
}

func clearAll(ctx context.Context, remote *store.Remote) {
	trucks, err := remote.List(ctx)
	if err != nil {
		log.Fatalf("Listing trucks failed: %v", err)
	}
	for _, t := range trucks {
		if err := remote.Delete(ctx, t.ID); err != nil {
			log.WithError(err).WithField("id", t.ID).Error("Failed to delete truck")
			continue
		}
		log.WithField("id", t.ID).Info("Deleted truck")
	}
	log.WithField("count", len(trucks)).Info("Cleared trucks")
}

func sampleTrucks() []models.TruckPatch {
	return []models.TruckPatch{
		{
			Make:              strp("Peterbilt"),
			Model:             strp("579"),
			Year:              intp(2019),
			Price:             floatp(85000),
			Mileage:           intp(450000),
			Condition:         condp(models.ConditionExcellent),
			FuelType:          fuelp(models.FuelDiesel),
			Transmission:      strp("manual"),
			Engine:            strp("Cummins X15"),
			Horsepower:        intp(450),
			Torque:            intp(1650),
			AxleConfiguration: strp("6x4"),
			CabType:           strp("sleeper_cab"),
			SleeperSize:       strp("72 inch"),
			Wheelbase:         intp(244),
			GVWR:              intp(80000),
			ExteriorColor:     strp("Bright Red"),
			InteriorColor:     strp("Gray"),
			Features:          []string{"APU", "Custom Exhaust", "Navigation System"},
			Description:       strp("Well-maintained Peterbilt 579 with excellent fuel economy and comfortable sleeper."),
			ShopName:          strp("Imperial Truck Sales"),
			ContactPhone:      strp("(555) 123-4567"),
			Location:          strp("Sacramento, CA"),
			Latitude:          floatp(38.5816),
			Longitude:         floatp(-121.4944),
		},
		{
			Make:              strp("Freightliner"),
			Model:             strp("Cascadia"),
			Year:              intp(2020),
			Price:             floatp(95000),
			Mileage:           intp(380000),
			Condition:         condp(models.ConditionExcellent),
			FuelType:          fuelp(models.FuelDiesel),
			Transmission:      strp("automatic"),
			Engine:            strp("Detroit DD16"),
			Horsepower:        intp(500),
			Torque:            intp(1850),
			AxleConfiguration: strp("6x4"),
			CabType:           strp("sleeper_cab"),
			SleeperSize:       strp("63 inch"),
			Wheelbase:         intp(252),
			GVWR:              intp(80000),
			ExteriorColor:     strp("Arctic White"),
			InteriorColor:     strp("Black"),
			CompanyInspected:  boolp(true),
			InspectionDate:    strp("2024-01-15"),
			InspectionNotes:   strp("Recently inspected and approved. All systems working perfectly."),
			Features:          []string{"LED Headlights", "Bluetooth", "Cruise Control"},
			Description:       strp("Low mileage Freightliner Cascadia with automatic transmission for easier driving."),
			ShopName:          strp("Imperial Truck Sales"),
			ContactPhone:      strp("(555) 123-4567"),
			Location:          strp("Fresno, CA"),
			Latitude:          floatp(36.7378),
			Longitude:         floatp(-119.7871),
		},
	}
}

func strp(s string) *string                       { return &s }
func intp(n int) *int                             { return &n }
func floatp(f float64) *float64                   { return &f }
func boolp(b bool) *bool                          { return &b }
func condp(c models.Condition) *models.Condition  { return &c }
func fuelp(f models.FuelType) *models.FuelType    { return &f }
