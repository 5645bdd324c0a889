package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/circuitology-club/portalgo/internal/middleware"
	"github.com/circuitology-club/portalgo/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	errAlreadyRegistered = errors.New("already registered")
	errEventFull         = errors.New("event full")
)

// lockForUpdate builds a SELECT ... FOR UPDATE clause
func lockForUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

// EventInput is the payload for club events
type EventInput struct {
	Title           string    `json:"title" validate:"required,min=3,max=200"`
	Description     string    `json:"description" validate:"required"`
	Date            time.Time `json:"date" validate:"required"`
	Time            string    `json:"time"`
	Location        string    `json:"location"`
	MaxParticipants *int      `json:"maxParticipants,omitempty" validate:"omitempty,min=0"`
	ImageURL        *string   `json:"imageUrl,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
}

// listEvents returns upcoming events first
func (r *Router) listEvents(w http.ResponseWriter, req *http.Request) {
	var events []models.Event
	if err := r.db.Order("date ASC").Find(&events).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// createEvent adds a club event
func (r *Router) createEvent(w http.ResponseWriter, req *http.Request) {
	var input EventInput
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !r.validateStruct(w, &input) {
		return
	}

	event := models.Event{
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Time:        input.Time,
		Location:    input.Location,
		ImageURL:    input.ImageURL,
		Tags:        input.Tags,
		CreatedBy:   middleware.UserIDFromContext(req.Context()),
	}
	if input.MaxParticipants != nil {
		event.MaxParticipants = *input.MaxParticipants
	}

	if err := r.db.Create(&event).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	// Let everyone who is online know there is something new
	r.hub.Broadcast(map[string]interface{}{
		"type":  "EVENT_CREATED",
		"event": event,
	})

	respondJSON(w, http.StatusCreated, event)
}

// updateEvent overwrites a club event
func (r *Router) updateEvent(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}

	var event models.Event
	if err := r.db.First(&event, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Event not found")
		return
	}

	var input EventInput
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !r.validateStruct(w, &input) {
		return
	}

	event.Title = input.Title
	event.Description = input.Description
	event.Date = input.Date
	event.Time = input.Time
	event.Location = input.Location
	if input.MaxParticipants != nil {
		event.MaxParticipants = *input.MaxParticipants
	}
	if input.ImageURL != nil {
		event.ImageURL = input.ImageURL
	}
	if input.Tags != nil {
		event.Tags = input.Tags
	}

	if err := r.db.Save(&event).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update event")
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// deleteEvent removes a club event
func (r *Router) deleteEvent(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}

	res := r.db.Delete(&models.Event{}, "id = ?", id)
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Event not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Event deleted successfully",
	})
}

// registerForEvent claims a participant spot for the signed-in member. The
// whole check-and-join runs in one transaction with the row locked.
func (r *Router) registerForEvent(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}
	userID := middleware.UserIDFromContext(req.Context())

	var event models.Event
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockForUpdate()).First(&event, "id = ?", id).Error; err != nil {
			return err
		}
		if event.IsRegistered(userID) {
			return errAlreadyRegistered
		}
		if event.IsFull() {
			return errEventFull
		}
		event.RegisteredParticipants = append(event.RegisteredParticipants, userID)
		return tx.Save(&event).Error
	})

	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, event)
	case errors.Is(err, errAlreadyRegistered):
		respondError(w, http.StatusConflict, "Already registered for this event")
	case errors.Is(err, errEventFull):
		respondError(w, http.StatusConflict, "Event is full")
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, "Event not found")
	default:
		respondError(w, http.StatusInternalServerError, "Failed to register for event")
	}
}
