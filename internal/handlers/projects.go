package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/circuitology-club/portalgo/internal/middleware"
	"github.com/circuitology-club/portalgo/internal/models"
)

// ProjectInput is the payload for showcase submissions
type ProjectInput struct {
	Title        string   `json:"title" validate:"required,min=3,max=200"`
	Description  string   `json:"description" validate:"required,min=10"`
	ImageURL     *string  `json:"imageUrl,omitempty"`
	Contributors []string `json:"contributors,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Difficulty   string   `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	GithubURL    *string  `json:"githubUrl,omitempty" validate:"omitempty,url"`
	DemoURL      *string  `json:"demoUrl,omitempty" validate:"omitempty,url"`
}

// listProjects returns the showcase. Members see approved projects plus
// their own submissions; admins see everything.
func (r *Router) listProjects(w http.ResponseWriter, req *http.Request) {
	q := r.db.Order("created_at DESC")

	userID, role := r.optionalIdentity(req)
	if role != models.RoleAdmin && role != models.RoleSuperAdmin {
		if userID != "" {
			q = q.Where("status = ? OR created_by = ?", models.StatusApproved, userID)
		} else {
			q = q.Where("status = ?", models.StatusApproved)
		}
	}

	var projects []models.Project
	if err := q.Find(&projects).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch projects")
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

// submitProject creates a pending showcase submission
func (r *Router) submitProject(w http.ResponseWriter, req *http.Request) {
	var input ProjectInput
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !r.validateStruct(w, &input) {
		return
	}

	project := models.Project{
		Title:        input.Title,
		Description:  input.Description,
		ImageURL:     input.ImageURL,
		Contributors: input.Contributors,
		Tags:         input.Tags,
		Difficulty:   models.DifficultyBeginner,
		Status:       models.StatusPending,
		GithubURL:    input.GithubURL,
		DemoURL:      input.DemoURL,
		CreatedBy:    middleware.UserIDFromContext(req.Context()),
	}
	if input.Difficulty != "" {
		project.Difficulty = input.Difficulty
	}

	if err := r.db.Create(&project).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to submit project")
		return
	}
	respondJSON(w, http.StatusCreated, project)
}

// approveProject publishes a pending submission
func (r *Router) approveProject(w http.ResponseWriter, req *http.Request) {
	r.reviewProject(w, req, models.StatusApproved)
}

// rejectProject declines a pending submission
func (r *Router) rejectProject(w http.ResponseWriter, req *http.Request) {
	r.reviewProject(w, req, models.StatusRejected)
}

func (r *Router) reviewProject(w http.ResponseWriter, req *http.Request, status string) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}

	var project models.Project
	if err := r.db.First(&project, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}
	if project.Status != models.StatusPending {
		respondError(w, http.StatusConflict, "Project has already been reviewed")
		return
	}

	actorID := middleware.UserIDFromContext(req.Context())
	now := time.Now().UTC()
	project.Status = status
	project.ReviewedBy = &actorID
	project.ReviewedDate = &now

	if err := r.db.Save(&project).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to review project")
		return
	}

	// Tell the submitter
	kind := models.NotificationSuccess
	if status == models.StatusRejected {
		kind = models.NotificationError
	}
	notification := models.Notification{
		UserID:  &project.CreatedBy,
		Type:    kind,
		Title:   "Project " + status,
		Message: "Your project \"" + project.Title + "\" was " + status + ".",
	}
	if err := r.db.Create(&notification).Error; err == nil {
		r.hub.SendToUser(project.CreatedBy, map[string]interface{}{
			"type":         "NOTIFICATION",
			"notification": notification,
		})
	}

	respondJSON(w, http.StatusOK, project)
}

// deleteProject removes a showcase entry
func (r *Router) deleteProject(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}

	res := r.db.Delete(&models.Project{}, "id = ?", id)
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Project deleted successfully",
	})
}
