package handlers

import (
	"net/http"

	"github.com/circuitology-club/portalgo/internal/middleware"
	"github.com/circuitology-club/portalgo/internal/models"
	"github.com/circuitology-club/portalgo/internal/utils"
	ws "github.com/circuitology-club/portalgo/internal/websocket"
)

// listNotifications returns the member's notifications, newest first.
// Broadcast rows (user_id IS NULL) are included.
func (r *Router) listNotifications(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())

	var notifications []models.Notification
	if err := r.db.
		Where("user_id = ? OR user_id IS NULL", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}
	respondJSON(w, http.StatusOK, notifications)
}

// markNotificationRead flags one notification as read
func (r *Router) markNotificationRead(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}
	userID := middleware.UserIDFromContext(req.Context())

	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update notification")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Notification not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

// markAllNotificationsRead flags every unread notification as read
func (r *Router) markAllNotificationsRead(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())

	if err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update notifications")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "All notifications marked as read"})
}

// serveNotificationsWs upgrades to a websocket for live notification push.
// Browsers cannot set an Authorization header on websocket upgrades, so the
// access token travels as a query parameter.
func (r *Router) serveNotificationsWs(w http.ResponseWriter, req *http.Request) {
	token := req.URL.Query().Get("token")
	if token == "" {
		respondError(w, http.StatusUnauthorized, "token query parameter required")
		return
	}

	claims, err := utils.ValidateToken(token, r.cfg.JWTSecret)
	if err != nil || claims["type"] != nil {
		respondError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	userID, _ := claims["id"].(string)
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "Invalid token claims")
		return
	}

	ws.ServeWs(r.hub, userID, w, req)
}
