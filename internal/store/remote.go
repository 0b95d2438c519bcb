package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/imperialtrucks/truck-market/internal/models"
	"github.com/imperialtrucks/truck-market/internal/truck"
)

// Remote implements truck.Store over the companion HTTP API. Non-2xx
// responses are translated into the same error taxonomy as the local
// backends; an unreachable server surfaces as UnavailableError, which
// the service layer degrades to an empty list for reads.
type Remote struct {
	baseURL string
	client  *http.Client
	token   string
}

// NewRemote creates a remote store against baseURL (including the /api
// prefix, e.g. http://localhost:8080/api).
func NewRemote(baseURL string) *Remote {
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken sets the bearer token sent on every request. Mutating
// operations require an admin token on the server side.
func (s *Remote) SetToken(token string) {
	s.token = token
}

func (s *Remote) List(ctx context.Context) ([]models.Truck, error) {
	var trucks []models.Truck
	err := s.request(ctx, http.MethodGet, "/trucks?sortBy="+url.QueryEscape(truck.DefaultSort), "", nil, &trucks)
	if err != nil {
		return nil, err
	}
	return trucks, nil
}

func (s *Remote) Get(ctx context.Context, id string) (*models.Truck, error) {
	var t models.Truck
	if err := s.request(ctx, http.MethodGet, "/trucks/"+url.PathEscape(id), id, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Remote) Create(ctx context.Context, patch models.TruckPatch) (*models.Truck, error) {
	var t models.Truck
	if err := s.request(ctx, http.MethodPost, "/trucks", "", patch, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Remote) Update(ctx context.Context, id string, patch models.TruckPatch) (*models.Truck, error) {
	var t models.Truck
	if err := s.request(ctx, http.MethodPut, "/trucks/"+url.PathEscape(id), id, patch, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Remote) Delete(ctx context.Context, id string) error {
	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	return s.request(ctx, http.MethodDelete, "/trucks/"+url.PathEscape(id), id, nil, &result)
}

func (s *Remote) Replace(ctx context.Context, trucks []models.Truck) error {
	doc := models.ExportDocument{
		Version:    truck.ExportVersion,
		ExportDate: time.Now().UTC(),
		TruckCount: len(trucks),
		Trucks:     trucks,
	}
	var result truck.ImportResult
	return s.request(ctx, http.MethodPost, "/import", "", doc, &result)
}

func (s *Remote) Stats(ctx context.Context) (*models.StoreStats, error) {
	var stats models.StoreStats
	if err := s.request(ctx, http.MethodGet, "/status", "", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// request performs one JSON round trip. id, when non-empty, is the truck
// id the operation addresses, used to shape 404 responses into
// NotFoundError.
func (s *Remote) request(ctx context.Context, method, path, id string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return truck.NewUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return s.translateError(resp, id)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (s *Remote) translateError(resp *http.Response, id string) error {
	var payload struct {
		Error string `json:"error"`
	}
	// A non-JSON error body falls back to a status-derived message.
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	if resp.StatusCode == http.StatusNotFound && id != "" {
		return truck.NewNotFound(id)
	}
	msg := payload.Error
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return &truck.RequestError{StatusCode: resp.StatusCode, Message: msg}
}
