// Package handlers implements the HTTP JSON API for the truck market
// service.
package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/imperialtrucks/truck-market/internal/images"
	"github.com/imperialtrucks/truck-market/internal/models"
	"github.com/imperialtrucks/truck-market/internal/truck"
)

const maxUploadSize = 10 << 20 // 10MB

// TruckHandler handles truck listing requests.
type TruckHandler struct {
	service *truck.Service
	images  *images.Manager
}

// NewTruckHandler creates a new truck handler.
func NewTruckHandler(service *truck.Service, imgs *images.Manager) *TruckHandler {
	return &TruckHandler{service: service, images: imgs}
}

// ListTrucks handles GET /api/trucks?sortBy=<spec>. Any other query
// parameter is treated as an attribute-equality filter.
func (h *TruckHandler) ListTrucks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sortBy := query.Get("sortBy")

	criteria := map[string]any{}
	for key, values := range query {
		if key == "sortBy" || len(values) == 0 {
			continue
		}
		criteria[key] = parseQueryValue(values[0])
	}

	trucks := h.service.Filter(r.Context(), criteria, sortBy)
	writeJSON(w, http.StatusOK, trucks)
}

// GetTruck handles GET /api/trucks/{id}.
func (h *TruckHandler) GetTruck(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	t, err := h.service.Get(r.Context(), id)
	if err != nil {
		if truck.IsNotFound(err) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// CreateTruck handles POST /api/trucks.
func (h *TruckHandler) CreateTruck(w http.ResponseWriter, r *http.Request) {
	var patch models.TruckPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	created, err := h.service.Create(r.Context(), patch)
	if err != nil {
		log.WithError(err).Error("creating truck failed")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// UpdateTruck handles PUT /api/trucks/{id}.
func (h *TruckHandler) UpdateTruck(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch models.TruckPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	updated, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		if truck.IsNotFound(err) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		log.WithError(err).WithField("id", id).Error("updating truck failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTruck handles DELETE /api/trucks/{id}.
func (h *TruckHandler) DeleteTruck(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		if truck.IsNotFound(err) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		log.WithError(err).WithField("id", id).Error("deleting truck failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Truck %s deleted", id),
	})
}

// Status handles GET /api/status.
func (h *TruckHandler) Status(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status":      "error",
			"error":       err.Error(),
			"lastChecked": time.Now().UTC(),
		})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Export handles GET /api/export.
func (h *TruckHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.Export(r.Context())
	if err != nil {
		log.WithError(err).Error("exporting trucks failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Import handles POST /api/import. The entire collection is replaced
// with the posted document's trucks.
func (h *TruckHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	result, err := h.service.Import(r.Context(), body)
	if err != nil {
		if err == truck.ErrInvalidFormat {
			writeError(w, http.StatusBadRequest, "Invalid data format")
			return
		}
		log.WithError(err).Error("importing trucks failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Upload handles POST /api/upload: stores a multipart image under a
// temporary upload_<stamp> name. The file is re-homed once its truck id
// is known.
func (h *TruckHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	result, err := h.images.SaveUpload(file, header.Filename)
	if err != nil {
		log.WithError(err).Error("storing upload failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// UpdateImageTruckID handles PUT /api/images/update-truck-id: re-homes
// temporary uploads under the truck's id and rewrites the record's image
// list.
func (h *TruckHandler) UpdateImageTruckID(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TruckID   string   `json:"truckId"`
		ImageURLs []string `json:"imageUrls"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.TruckID == "" {
		writeError(w, http.StatusBadRequest, "truckId is required")
		return
	}

	refs, changed := h.images.Associate(req.TruckID, req.ImageURLs)
	if changed {
		if _, err := h.service.Update(r.Context(), req.TruckID, models.TruckPatch{Images: refs}); err != nil {
			if truck.IsNotFound(err) {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			log.WithError(err).WithField("id", req.TruckID).Error("rewriting image list failed")
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"imageUrls": refs,
	})
}

// parseQueryValue maps a query string to the type the stored field
// carries on the wire, so equality filtering stays strict.
func parseQueryValue(v string) any {
	if v == "true" {
		return true
	}
	if v == "false" {
		return false
	}
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return n
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("encoding response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
