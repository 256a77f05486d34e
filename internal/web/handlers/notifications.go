package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/kozaktomas/lost-found/internal/database"
	"github.com/kozaktomas/lost-found/internal/web/middleware"
)

// NotificationsHandler handles match alert endpoints.
type NotificationsHandler struct {
	notifications database.NotificationWriter
	items         database.ItemReader
}

// NewNotificationsHandler creates a new notifications handler.
func NewNotificationsHandler(notifications database.NotificationWriter, items database.ItemReader) *NotificationsHandler {
	return &NotificationsHandler{
		notifications: notifications,
		items:         items,
	}
}

// NotificationResponse is the wire representation of a match alert.
type NotificationResponse struct {
	ID        int64         `json:"id"`
	Message   string        `json:"message"`
	Status    string        `json:"status"`
	SentAt    string        `json:"sent_at"`
	LostItem  *ItemResponse `json:"lost_item,omitempty"`
	FoundItem *ItemResponse `json:"found_item,omitempty"`
}

// List returns the calling user's notifications, newest first, with the
// matched items attached when they still exist.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())

	notifications, err := h.notifications.ListByUser(r.Context(), session.UserID)
	if err != nil {
		log.Printf("failed to list notifications for user %d: %v", session.UserID, err)
		respondError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}

	// One batched lookup for every referenced item.
	ids := make([]int64, 0, len(notifications)*2)
	for _, n := range notifications {
		ids = append(ids, n.LostItemID, n.FoundItemID)
	}
	itemsByID := map[int64]database.Item{}
	if len(ids) > 0 {
		items, err := h.items.GetByIDs(r.Context(), ids)
		if err != nil {
			log.Printf("failed to load notification items: %v", err)
		} else {
			for _, item := range items {
				itemsByID[item.ID] = item
			}
		}
	}

	results := []NotificationResponse{}
	for _, n := range notifications {
		resp := NotificationResponse{
			ID:      n.ID,
			Message: n.Message,
			Status:  string(n.Status),
			SentAt:  n.SentAt.Format(time.RFC3339),
		}
		if item, ok := itemsByID[n.LostItemID]; ok {
			ir := toItemResponse(item)
			resp.LostItem = &ir
		}
		if item, ok := itemsByID[n.FoundItemID]; ok {
			ir := toItemResponse(item)
			resp.FoundItem = &ir
		}
		results = append(results, resp)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"notifications": results,
		"count":         len(results),
	})
}
