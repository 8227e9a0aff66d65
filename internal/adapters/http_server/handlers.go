// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_reviews/internal/app"
)

type Handlers struct {
	Analysis *app.AnalysisService
	Bulk     *app.BulkService
	Reports  *app.ReportService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/reviews/analyze", h.analyzeOne)
	s.mux.Post("/v1/reviews/analyze-bulk", h.analyzeBulk)
	s.mux.Get("/v1/hotels/{id}/reviews/summary", h.summary)
	s.mux.Get("/v1/db/info", h.dbInfo)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

type analyzeRequest struct {
	HotelID      string `json:"hotel_id"`
	ReviewText   string `json:"review_text"`
	Rating       int    `json:"rating"`
	ReviewerName string `json:"reviewer_name,omitempty"`
	Source       string `json:"source,omitempty"`
}

func (h *Handlers) analyzeOne(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be JSON")
		return
	}
	if req.HotelID == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid hotel_id", "hotel_id is required")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeProblem(w, http.StatusBadRequest, "Invalid rating", "rating must be an integer between 1 and 5")
		return
	}
	if strings.TrimSpace(req.ReviewText) == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid review_text", "review_text is required")
		return
	}

	rec, err := h.Analysis.AnalyzeOne(r.Context(), app.AnalyzeRequest{
		HotelID:      req.HotelID,
		Rating:       req.Rating,
		Text:         req.ReviewText,
		ReviewerName: req.ReviewerName,
		Source:       req.Source,
	})
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Analysis failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type bulkRequest struct {
	HotelID     string `json:"hotel_id"`
	InputFormat string `json:"input_format"`
	InputPath   string `json:"input_path"`
}

func (h *Handlers) analyzeBulk(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be JSON")
		return
	}
	if req.HotelID == "" || req.InputFormat == "" || req.InputPath == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid request", "hotel_id, input_format and input_path are required")
		return
	}

	res, err := h.Bulk.Run(r.Context(), app.BulkRequest{
		HotelID:     req.HotelID,
		InputFormat: req.InputFormat,
		InputPath:   req.InputPath,
	})
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bulk analysis failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) summary(w http.ResponseWriter, r *http.Request) {
	hotelID := chi.URLParam(r, "id")
	if hotelID == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "hotel id is required")
		return
	}
	out, err := h.Reports.Summary(r.Context(), hotelID)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Summary failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) dbInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.Reports.DBInfo(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "DB info failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, info)
}
