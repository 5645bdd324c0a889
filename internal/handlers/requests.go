package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/circuitology-club/portalgo/internal/middleware"
	"github.com/circuitology-club/portalgo/internal/models"
	"github.com/circuitology-club/portalgo/internal/services/inventory"
)

// SubmitRequestInput is the payload for borrowing components
type SubmitRequestInput struct {
	ComponentID        string    `json:"componentId" validate:"required,uuid4"`
	Quantity           int       `json:"quantity" validate:"required,min=1"`
	Purpose            string    `json:"purpose" validate:"required,min=5"`
	ExpectedReturnDate time.Time `json:"expectedReturnDate" validate:"required"`
}

// submitRequest creates a pending borrow request for the signed-in member
func (r *Router) submitRequest(w http.ResponseWriter, req *http.Request) {
	var input SubmitRequestInput
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !r.validateStruct(w, &input) {
		return
	}
	if !input.ExpectedReturnDate.After(time.Now()) {
		respondError(w, http.StatusBadRequest, "expectedReturnDate must be in the future")
		return
	}

	userID := middleware.UserIDFromContext(req.Context())
	request, err := r.inventory.Submit(userID, inventory.SubmitInput{
		ComponentID:        input.ComponentID,
		Quantity:           input.Quantity,
		Purpose:            input.Purpose,
		ExpectedReturnDate: input.ExpectedReturnDate,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, request)
}

// listRequests returns requests newest-first. Admins see everything,
// students only their own.
func (r *Router) listRequests(w http.ResponseWriter, req *http.Request) {
	q := r.db.Preload("Component").Preload("Requester").Order("request_date DESC")

	role := middleware.RoleFromContext(req.Context())
	if role != models.RoleAdmin && role != models.RoleSuperAdmin {
		q = q.Where("user_id = ?", middleware.UserIDFromContext(req.Context()))
	}
	if status := req.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var requests []models.ComponentRequest
	if err := q.Find(&requests).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch requests")
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

// getRequest returns one request, visible to its owner and to admins
func (r *Router) getRequest(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}

	var request models.ComponentRequest
	if err := r.db.Preload("Component").Preload("Requester").First(&request, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Request not found")
		return
	}

	role := middleware.RoleFromContext(req.Context())
	if request.UserID != middleware.UserIDFromContext(req.Context()) &&
		role != models.RoleAdmin && role != models.RoleSuperAdmin {
		respondError(w, http.StatusForbidden, "Not your request")
		return
	}

	respondJSON(w, http.StatusOK, request)
}

// approveRequest moves a pending request to approved
func (r *Router) approveRequest(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}
	actorID := middleware.UserIDFromContext(req.Context())

	request, err := r.inventory.Approve(id, actorID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, request)
}

// rejectRequest moves a request to its terminal rejected state
func (r *Router) rejectRequest(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}
	actorID := middleware.UserIDFromContext(req.Context())

	var body struct {
		Notes *string `json:"notes,omitempty"`
	}
	if req.Body != nil {
		_ = json.NewDecoder(req.Body).Decode(&body)
	}

	request, err := r.inventory.Reject(id, actorID, body.Notes)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, request)
}

// issueRequest hands the stock out for an approved request
func (r *Router) issueRequest(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}
	actorID := middleware.UserIDFromContext(req.Context())

	request, err := r.inventory.Issue(id, actorID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, request)
}

// returnRequest books issued stock back in and closes the request
func (r *Router) returnRequest(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}
	actorID := middleware.UserIDFromContext(req.Context())

	var body struct {
		Condition string  `json:"condition" validate:"omitempty,oneof=good damaged missing"`
		Quantity  int     `json:"quantity" validate:"omitempty,min=1"`
		Notes     *string `json:"notes,omitempty"`
	}
	if req.Body != nil {
		_ = json.NewDecoder(req.Body).Decode(&body)
	}
	if !r.validateStruct(w, &body) {
		return
	}

	request, err := r.inventory.Return(id, actorID, inventory.ReturnInput{
		Condition: body.Condition,
		Quantity:  body.Quantity,
		Notes:     body.Notes,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, request)
}
