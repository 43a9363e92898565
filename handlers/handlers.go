package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"scentbase/models"
	"scentbase/repository"
	"scentbase/scheduler"
	"scentbase/services"
)

type Handlers struct {
	perfumes        *repository.PerfumeRepository
	recommendations *services.RecommendationService
	exporter        *services.ExportService
	refresher       *scheduler.CatalogRefresher
	exportPath      string
}

func NewHandlers(perfumes *repository.PerfumeRepository, recommendations *services.RecommendationService,
	exporter *services.ExportService, refresher *scheduler.CatalogRefresher, exportPath string) *Handlers {
	return &Handlers{
		perfumes:        perfumes,
		recommendations: recommendations,
		exporter:        exporter,
		refresher:       refresher,
		exportPath:      exportPath,
	}
}

// HealthCheck returns service health and the current catalog size.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	count, err := h.perfumes.Count()
	status := "healthy"
	if err != nil {
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"service":   "scentbase",
		"timestamp": time.Now(),
		"perfumes":  count,
	})
}

// GetCatalog returns the full active catalog, served from cache when warm.
func (h *Handlers) GetCatalog(w http.ResponseWriter, r *http.Request) {
	records, err := h.perfumes.GetAll()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load catalog")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(records),
		"perfumes": records,
	})
}

// GetPerfumeByArticle returns a single record by its article code.
func (h *Handlers) GetPerfumeByArticle(w http.ResponseWriter, r *http.Request) {
	article := mux.Vars(r)["article"]
	if article == "" {
		writeError(w, http.StatusBadRequest, "Article is required")
		return
	}

	record, err := h.perfumes.GetByArticle(article)
	if err != nil {
		writeError(w, http.StatusNotFound, "Perfume not found")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// TriggerParse starts a catalog parse in the background. A second trigger
// while one is running is rejected, not queued.
func (h *Handlers) TriggerParse(w http.ResponseWriter, r *http.Request) {
	if !h.refresher.Trigger() {
		writeError(w, http.StatusConflict, "A parse run is already in progress")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
}

// GetParseStatus reports whether a run is in flight plus the last run's
// stats.
func (h *Handlers) GetParseStatus(w http.ResponseWriter, r *http.Request) {
	running, last := h.refresher.Status()

	response := map[string]interface{}{"running": running}
	if last != nil {
		response["last_run"] = last
	}
	writeJSON(w, http.StatusOK, response)
}

// GetRecommendations scores the posted quiz answers and returns the
// narrowed catalog slice.
func (h *Handlers) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	var answers models.QuizAnswerSet
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.recommendations.Recommend(answers)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build recommendations")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type snapshotRequest struct {
	Path string `json:"path"`
}

// ExportCatalog writes the catalog snapshot file.
func (h *Handlers) ExportCatalog(w http.ResponseWriter, r *http.Request) {
	req := snapshotRequest{Path: h.exportPath}
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	count, err := h.exporter.Export(req.Path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export catalog")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"exported": count, "path": req.Path})
}

// ImportCatalog loads a snapshot file into the store.
func (h *Handlers) ImportCatalog(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		writeError(w, http.StatusBadRequest, "Snapshot path is required")
		return
	}

	count, err := h.exporter.Import(req.Path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to import catalog")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"imported": count})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
