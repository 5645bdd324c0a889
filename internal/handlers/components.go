package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/circuitology-club/portalgo/internal/middleware"
	"github.com/circuitology-club/portalgo/internal/models"
	"github.com/circuitology-club/portalgo/internal/services/printer"
	"gorm.io/datatypes"
)

// ComponentInput is the payload for creating and updating catalog entries.
// Quantity pointers distinguish "omitted" from zero so partial updates work.
type ComponentInput struct {
	Name              string         `json:"name" validate:"required,min=2,max=200"`
	Category          string         `json:"category" validate:"required,min=2,max=100"`
	Description       string         `json:"description" validate:"required"`
	Specifications    datatypes.JSON `json:"specifications,omitempty"`
	TotalQuantity     *int           `json:"totalQuantity,omitempty" validate:"omitempty,min=0"`
	AvailableQuantity *int           `json:"availableQuantity,omitempty" validate:"omitempty,min=0"`
	IssuedQuantity    *int           `json:"issuedQuantity,omitempty" validate:"omitempty,min=0"`
	DamagedQuantity   *int           `json:"damagedQuantity,omitempty" validate:"omitempty,min=0"`
	LowStockThreshold *int           `json:"lowStockThreshold,omitempty" validate:"omitempty,min=0"`
	Location          *string        `json:"location,omitempty"`
	ImageURL          *string        `json:"imageUrl,omitempty"`
}

// componentView decorates a component with its render-time stock flag
type componentView struct {
	models.Component
	LowStock bool `json:"lowStock"`
}

func viewOf(c models.Component) componentView {
	return componentView{Component: c, LowStock: c.IsLowStock()}
}

// listComponents returns the catalog ordered by name. Optional query params:
// category (exact match) and q (substring on name/description).
func (r *Router) listComponents(w http.ResponseWriter, req *http.Request) {
	q := r.db.Model(&models.Component{}).Order("name ASC")

	if category := req.URL.Query().Get("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if search := req.URL.Query().Get("q"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	var components []models.Component
	if err := q.Find(&components).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch components")
		return
	}

	views := make([]componentView, 0, len(components))
	for _, c := range components {
		views = append(views, viewOf(c))
	}
	respondJSON(w, http.StatusOK, views)
}

// getComponent returns a single catalog entry
func (r *Router) getComponent(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}

	var component models.Component
	if err := r.db.First(&component, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Component not found")
		return
	}
	respondJSON(w, http.StatusOK, viewOf(component))
}

// createComponent adds a catalog entry. Counters must satisfy
// available + issued + damaged == total; available defaults to total.
func (r *Router) createComponent(w http.ResponseWriter, req *http.Request) {
	var input ComponentInput
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !r.validateStruct(w, &input) {
		return
	}

	actorID := middleware.UserIDFromContext(req.Context())
	component := models.Component{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Location:    input.Location,
		ImageURL:    input.ImageURL,
		CreatedBy:   &actorID,
	}
	if input.Specifications != nil {
		component.Specifications = input.Specifications
	}
	if input.TotalQuantity != nil {
		component.TotalQuantity = *input.TotalQuantity
	}
	if input.IssuedQuantity != nil {
		component.IssuedQuantity = *input.IssuedQuantity
	}
	if input.DamagedQuantity != nil {
		component.DamagedQuantity = *input.DamagedQuantity
	}
	if input.AvailableQuantity != nil {
		component.AvailableQuantity = *input.AvailableQuantity
	} else {
		// Untouched stock is fully available
		component.AvailableQuantity = component.TotalQuantity - component.IssuedQuantity - component.DamagedQuantity
	}
	if input.LowStockThreshold != nil {
		component.LowStockThreshold = *input.LowStockThreshold
	} else {
		component.LowStockThreshold = 5
	}

	if err := component.CheckQuantities(); err != nil {
		respondDomainError(w, err)
		return
	}

	if err := r.db.Create(&component).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create component")
		return
	}
	respondJSON(w, http.StatusCreated, viewOf(component))
}

// updateComponent overwrites the supplied fields, re-checking the counter
// invariant over the merged state
func (r *Router) updateComponent(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}

	var component models.Component
	if err := r.db.First(&component, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Component not found")
		return
	}

	var input ComponentInput
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !r.validateStruct(w, &input) {
		return
	}

	component.Name = input.Name
	component.Category = input.Category
	component.Description = input.Description
	if input.Specifications != nil {
		component.Specifications = input.Specifications
	}
	if input.TotalQuantity != nil {
		component.TotalQuantity = *input.TotalQuantity
	}
	if input.AvailableQuantity != nil {
		component.AvailableQuantity = *input.AvailableQuantity
	}
	if input.IssuedQuantity != nil {
		component.IssuedQuantity = *input.IssuedQuantity
	}
	if input.DamagedQuantity != nil {
		component.DamagedQuantity = *input.DamagedQuantity
	}
	if input.LowStockThreshold != nil {
		component.LowStockThreshold = *input.LowStockThreshold
	}
	if input.Location != nil {
		component.Location = input.Location
	}
	if input.ImageURL != nil {
		component.ImageURL = input.ImageURL
	}

	if err := component.CheckQuantities(); err != nil {
		respondDomainError(w, err)
		return
	}

	if err := r.db.Save(&component).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update component")
		return
	}
	respondJSON(w, http.StatusOK, viewOf(component))
}

// deleteComponent removes a catalog entry unless open requests still
// reference it
func (r *Router) deleteComponent(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}

	var openRequests int64
	if err := r.db.Model(&models.ComponentRequest{}).
		Where("component_id = ? AND status NOT IN ?", id, []string{models.StatusRejected, models.StatusReturned}).
		Count(&openRequests).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to check open requests")
		return
	}
	if openRequests > 0 {
		respondError(w, http.StatusConflict, fmt.Sprintf("Component has %d open requests", openRequests))
		return
	}

	res := r.db.Delete(&models.Component{}, "id = ?", id)
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete component")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Component not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Component deleted successfully",
	})
}

// generateComponentLabels renders a printable QR label sheet for the
// selected components
func (r *Router) generateComponentLabels(w http.ResponseWriter, req *http.Request) {
	var body struct {
		ComponentIDs []string            `json:"componentIds" validate:"required,min=1"`
		Sheet        printer.SheetConfig `json:"sheet"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !r.validateStruct(w, &body) {
		return
	}

	var components []models.Component
	if err := r.db.Where("id IN ?", body.ComponentIDs).Order("name ASC").Find(&components).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch components")
		return
	}
	if len(components) == 0 {
		respondError(w, http.StatusNotFound, "No matching components")
		return
	}

	labels := make([]printer.Label, 0, len(components))
	for _, c := range components {
		labels = append(labels, printer.Label{Reference: c.ID, Caption: c.Name})
	}

	body.Sheet.BaseURL = r.cfg.Club.LabelBaseURL
	pdfBytes, err := printer.GenerateLabelsPDF(body.Sheet, labels)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate PDF: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"component_labels.pdf\"")
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.Write(pdfBytes)
}
