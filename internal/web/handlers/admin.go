package handlers

import (
	"log"
	"net/http"

	"github.com/kozaktomas/lost-found/internal/catalog"
)

// AdminHandler handles destructive maintenance endpoints.
type AdminHandler struct {
	service *catalog.Service
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(service *catalog.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// Reset wipes every item, notification and stored image.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reset(r.Context()); err != nil {
		log.Printf("reset failed: %v", err)
		respondError(w, http.StatusInternalServerError, "reset failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
