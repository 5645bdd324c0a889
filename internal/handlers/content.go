package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/circuitology-club/portalgo/internal/middleware"
	"github.com/gorilla/mux"
)

// getContent returns the full editable content map, defaults included
func (r *Router) getContent(w http.ResponseWriter, req *http.Request) {
	contentMap, err := r.content.All()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch content")
		return
	}
	respondJSON(w, http.StatusOK, contentMap)
}

// setContent overwrites one content key
func (r *Router) setContent(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	var body struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	actorID := middleware.UserIDFromContext(req.Context())
	if err := r.content.Set(vars["key"], body.Value, actorID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save content")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"key":   vars["key"],
		"value": body.Value,
	})
}

// resetContent restores the hardcoded default content wholesale
func (r *Router) resetContent(w http.ResponseWriter, req *http.Request) {
	if err := r.content.Reset(); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to reset content")
		return
	}

	contentMap, err := r.content.All()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Content reset but fetch failed")
		return
	}
	respondJSON(w, http.StatusOK, contentMap)
}
