package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/circuitology-club/portalgo/internal/middleware"
	"github.com/circuitology-club/portalgo/internal/models"
)

// ProfileUpdateInput is the payload for profile edits. Role is deliberately
// absent; it has its own super-admin-only endpoint.
type ProfileUpdateInput struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	StudentID *string `json:"studentId,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// listProfiles returns all member accounts (admin only)
func (r *Router) listProfiles(w http.ResponseWriter, req *http.Request) {
	var profiles []models.Profile
	if err := r.db.Order("created_at DESC").Find(&profiles).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch profiles")
		return
	}
	respondJSON(w, http.StatusOK, profiles)
}

// updateOwnProfile lets a member edit their own profile fields
func (r *Router) updateOwnProfile(w http.ResponseWriter, req *http.Request) {
	r.applyProfileUpdate(w, req, middleware.UserIDFromContext(req.Context()), false)
}

// updateProfile lets an admin edit any member's profile fields
func (r *Router) updateProfile(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}
	r.applyProfileUpdate(w, req, id, true)
}

func (r *Router) applyProfileUpdate(w http.ResponseWriter, req *http.Request, id string, allowDeactivate bool) {
	var profile models.Profile
	if err := r.db.First(&profile, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Profile not found")
		return
	}

	var input ProfileUpdateInput
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !r.validateStruct(w, &input) {
		return
	}

	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.StudentID != nil {
		profile.StudentID = input.StudentID
	}
	if input.Phone != nil {
		profile.Phone = input.Phone
	}
	if input.AvatarURL != nil {
		profile.AvatarURL = input.AvatarURL
	}
	if input.IsActive != nil && allowDeactivate {
		profile.IsActive = *input.IsActive
	}

	if err := r.db.Save(&profile).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// updateProfileRole changes a member's role (super admin only)
func (r *Router) updateProfileRole(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}

	var body struct {
		Role string `json:"role" validate:"required"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !models.ValidRole(body.Role) {
		respondError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	var profile models.Profile
	if err := r.db.First(&profile, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Profile not found")
		return
	}

	// A super admin cannot demote themselves and lock everyone out
	if profile.ID == middleware.UserIDFromContext(req.Context()) && body.Role != models.RoleSuperAdmin {
		respondError(w, http.StatusConflict, "Cannot change your own role")
		return
	}

	profile.Role = body.Role
	if err := r.db.Save(&profile).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update role")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}
