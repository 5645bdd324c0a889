package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/circuitology-club/portalgo/internal/models"
)

// TeamMemberInput is the payload for team page entries
type TeamMemberInput struct {
	Name      string  `json:"name" validate:"required,min=2,max=100"`
	Role      string  `json:"role" validate:"required,min=2,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone,omitempty"`
	ImageURL  *string `json:"imageUrl,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
	SortOrder *int    `json:"sortOrder,omitempty"`
}

// listTeamMembers returns the team page roster ordered by sort_order.
// Admins get inactive entries too.
func (r *Router) listTeamMembers(w http.ResponseWriter, req *http.Request) {
	q := r.db.Order("sort_order ASC, name ASC")

	_, role := r.optionalIdentity(req)
	if role != models.RoleAdmin && role != models.RoleSuperAdmin {
		q = q.Where("is_active = ?", true)
	}

	var members []models.TeamMember
	if err := q.Find(&members).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch team members")
		return
	}
	respondJSON(w, http.StatusOK, members)
}

// createTeamMember adds a roster entry
func (r *Router) createTeamMember(w http.ResponseWriter, req *http.Request) {
	var input TeamMemberInput
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !r.validateStruct(w, &input) {
		return
	}

	member := models.TeamMember{
		Name:     input.Name,
		Role:     input.Role,
		Email:    input.Email,
		Phone:    input.Phone,
		ImageURL: input.ImageURL,
		Bio:      input.Bio,
		IsActive: true,
	}
	if input.IsActive != nil {
		member.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		member.SortOrder = *input.SortOrder
	}

	if err := r.db.Create(&member).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create team member")
		return
	}
	respondJSON(w, http.StatusCreated, member)
}

// updateTeamMember overwrites a roster entry
func (r *Router) updateTeamMember(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}

	var member models.TeamMember
	if err := r.db.First(&member, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Team member not found")
		return
	}

	var input TeamMemberInput
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !r.validateStruct(w, &input) {
		return
	}

	member.Name = input.Name
	member.Role = input.Role
	member.Email = input.Email
	if input.Phone != nil {
		member.Phone = input.Phone
	}
	if input.ImageURL != nil {
		member.ImageURL = input.ImageURL
	}
	if input.Bio != nil {
		member.Bio = input.Bio
	}
	if input.IsActive != nil {
		member.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		member.SortOrder = *input.SortOrder
	}

	if err := r.db.Save(&member).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update team member")
		return
	}
	respondJSON(w, http.StatusOK, member)
}

// deleteTeamMember removes a roster entry
func (r *Router) deleteTeamMember(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}

	res := r.db.Delete(&models.TeamMember{}, "id = ?", id)
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete team member")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Team member not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Team member deleted successfully",
	})
}
