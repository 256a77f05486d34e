package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/lost-found/internal/catalog"
	"github.com/kozaktomas/lost-found/internal/database"
	"github.com/kozaktomas/lost-found/internal/embedding"
	"github.com/kozaktomas/lost-found/internal/match"
	"github.com/kozaktomas/lost-found/internal/storage"
	"github.com/kozaktomas/lost-found/internal/web/middleware"
)

// ItemsHandler handles item submission and retrieval endpoints.
type ItemsHandler struct {
	service *catalog.Service
	items   database.ItemReader
	images  storage.ImageStore
}

// NewItemsHandler creates a new items handler.
func NewItemsHandler(service *catalog.Service, items database.ItemReader, images storage.ImageStore) *ItemsHandler {
	return &ItemsHandler{
		service: service,
		items:   items,
		images:  images,
	}
}

// ItemResponse is the wire representation of an item. Embeddings stay internal.
type ItemResponse struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Contact     string `json:"contact,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// MatchResponse pairs a matched lost item with its similarity score.
type MatchResponse struct {
	Item  ItemResponse `json:"item"`
	Score float64      `json:"score"`
}

func toItemResponse(item database.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Kind:        string(item.Kind),
		Name:        item.Name,
		Description: item.Description,
		Location:    item.Location,
		Contact:     item.Contact,
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
	}
}

func toMatchResponses(candidates []match.Candidate) []MatchResponse {
	out := make([]MatchResponse, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, MatchResponse{Item: toItemResponse(c.Lost), Score: c.Score})
	}
	return out
}

// parseSubmission reads the multipart form shared by both submission endpoints.
func parseSubmission(r *http.Request) (catalog.ItemReport, []byte, string, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return catalog.ItemReport{}, nil, "", errors.New("failed to parse multipart form")
	}

	report := catalog.ItemReport{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
		Contact:     r.FormValue("contact"),
	}
	if report.Name == "" {
		return catalog.ItemReport{}, nil, "", errors.New("name is required")
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return catalog.ItemReport{}, nil, "", errors.New("image file is required")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return catalog.ItemReport{}, nil, "", errors.New("failed to read image file")
	}

	return report, data, header.Filename, nil
}

// respondSubmissionError maps pipeline errors to HTTP status codes.
func respondSubmissionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, embedding.ErrInvalidImage):
		respondError(w, http.StatusBadRequest, "uploaded file is not a valid image")
	case errors.Is(err, embedding.ErrModelUnavailable):
		respondError(w, http.StatusServiceUnavailable, "feature extraction service unavailable")
	default:
		log.Printf("item submission failed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to process submission")
	}
}

// ReportLost handles a lost item report.
func (h *ItemsHandler) ReportLost(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	report, image, filename, err := parseSubmission(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.service.ReportItem(r.Context(), session.UserID, database.ItemLost, report, image, filename)
	if err != nil {
		respondSubmissionError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toItemResponse(*item))
}

// SubmitFound handles a found item submission and returns the matches
// discovered against the lost catalog.
func (h *ItemsHandler) SubmitFound(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	report, image, filename, err := parseSubmission(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, matches, err := h.service.SubmitFoundAndMatch(r.Context(), session.UserID, report, image, filename)
	if err != nil {
		if item == nil {
			respondSubmissionError(w, err)
			return
		}
		// Item persisted but the catalog scan failed.
		log.Printf("match scan failed for item %d: %v", item.ID, err)
		respondJSON(w, http.StatusCreated, map[string]any{
			"item":    toItemResponse(*item),
			"matches": []MatchResponse{},
			"warning": "match scan failed, try again later",
		})
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"item":    toItemResponse(*item),
		"matches": toMatchResponses(matches),
	})
}

// List returns items of a kind, optionally filtered by location substring.
// With mine=true only the calling user's own reports are returned.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	kind := database.ItemKind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = database.ItemLost
	}
	if !kind.Valid() {
		respondError(w, http.StatusBadRequest, "kind must be lost or found")
		return
	}

	var items []database.Item
	var err error
	if r.URL.Query().Get("mine") == "true" {
		session := middleware.GetSessionFromContext(r.Context())
		items, err = h.items.ListByUser(r.Context(), session.UserID, kind)
	} else {
		items, err = h.items.ListByKind(r.Context(), kind)
	}
	if err != nil {
		log.Printf("failed to list %s items: %v", kind, err)
		respondError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	location := r.URL.Query().Get("location")
	results := []ItemResponse{}
	for _, item := range items {
		if !database.MatchesLocation(item.Location, location) {
			continue
		}
		results = append(results, toItemResponse(item))
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"items": results,
		"count": len(results),
	})
}

// Get returns a single item by ID.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.items.Get(r.Context(), id)
	if err != nil {
		log.Printf("failed to get item %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		respondError(w, http.StatusNotFound, "item not found")
		return
	}

	respondJSON(w, http.StatusOK, toItemResponse(*item))
}

// Image serves the stored photo of an item.
func (h *ItemsHandler) Image(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.items.Get(r.Context(), id)
	if err != nil {
		log.Printf("failed to get item %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		respondError(w, http.StatusNotFound, "item not found")
		return
	}

	data, err := h.images.Read(r.Context(), item.ImageKey)
	if err != nil {
		log.Printf("failed to read image %s: %v", sanitizeForLog(item.ImageKey), err)
		respondError(w, http.StatusNotFound, "image not found")
		return
	}

	w.Header().Set("Content-Type", embedding.DetectMIMEType(data))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
