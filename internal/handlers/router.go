package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/circuitology-club/portalgo/internal/config"
	"github.com/circuitology-club/portalgo/internal/database"
	"github.com/circuitology-club/portalgo/internal/middleware"
	"github.com/circuitology-club/portalgo/internal/models"
	"github.com/circuitology-club/portalgo/internal/services/content"
	"github.com/circuitology-club/portalgo/internal/services/inventory"
	"github.com/circuitology-club/portalgo/internal/utils"
	ws "github.com/circuitology-club/portalgo/internal/websocket"
	"github.com/circuitology-club/portalgo/web"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Router wraps the mux router and the service dependencies
type Router struct {
	*mux.Router
	db        *database.DB
	cfg       *config.Config
	hub       *ws.Hub
	inventory *inventory.Service
	content   *content.Store
	validate  *validator.Validate
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, hub *ws.Hub) *Router {
	r := &Router{
		Router:    mux.NewRouter(),
		db:        db,
		cfg:       cfg,
		hub:       hub,
		inventory: inventory.NewService(db.DB, hub),
		content:   content.NewStore(db.DB),
		validate:  validator.New(),
	}

	authMW := middleware.Auth(cfg.JWTSecret)
	adminMW := middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin)
	superMW := middleware.RequireRole(models.RoleSuperAdmin)

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.register).Methods("POST")
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/logout", r.logout).Methods("POST")
	auth.HandleFunc("/refresh", r.refreshTokens).Methods("POST")
	auth.HandleFunc("/forgot-password", r.forgotPassword).Methods("POST")
	auth.HandleFunc("/reset-password", r.resetPassword).Methods("POST")

	// Public catalog and page content
	r.HandleFunc("/api/components", r.listComponents).Methods("GET")
	r.HandleFunc("/api/components/{id}", r.getComponent).Methods("GET")
	r.HandleFunc("/api/content", r.getContent).Methods("GET")
	r.HandleFunc("/api/team", r.listTeamMembers).Methods("GET")
	r.HandleFunc("/api/events", r.listEvents).Methods("GET")
	r.HandleFunc("/api/projects", r.listProjects).Methods("GET")

	// Signed-in member routes
	me := r.PathPrefix("/api").Subrouter()
	me.Use(authMW)
	me.HandleFunc("/me", r.currentProfile).Methods("GET")
	me.HandleFunc("/me", r.updateOwnProfile).Methods("PUT")
	me.HandleFunc("/requests", r.submitRequest).Methods("POST")
	me.HandleFunc("/requests", r.listRequests).Methods("GET")
	me.HandleFunc("/requests/{id}", r.getRequest).Methods("GET")
	me.HandleFunc("/events/{id}/register", r.registerForEvent).Methods("POST")
	me.HandleFunc("/projects", r.submitProject).Methods("POST")
	me.HandleFunc("/notifications", r.listNotifications).Methods("GET")
	me.HandleFunc("/notifications/{id}/read", r.markNotificationRead).Methods("POST")
	me.HandleFunc("/notifications/read-all", r.markAllNotificationsRead).Methods("POST")

	// Admin routes
	admin := r.PathPrefix("/api").Subrouter()
	admin.Use(authMW, adminMW)
	admin.HandleFunc("/components", r.createComponent).Methods("POST")
	admin.HandleFunc("/components/{id}", r.updateComponent).Methods("PUT")
	admin.HandleFunc("/components/{id}", r.deleteComponent).Methods("DELETE")
	admin.HandleFunc("/components/labels", r.generateComponentLabels).Methods("POST")
	admin.HandleFunc("/requests/{id}/approve", r.approveRequest).Methods("POST")
	admin.HandleFunc("/requests/{id}/reject", r.rejectRequest).Methods("POST")
	admin.HandleFunc("/requests/{id}/issue", r.issueRequest).Methods("POST")
	admin.HandleFunc("/requests/{id}/return", r.returnRequest).Methods("POST")
	admin.HandleFunc("/users", r.listProfiles).Methods("GET")
	admin.HandleFunc("/users/{id}", r.updateProfile).Methods("PUT")
	admin.HandleFunc("/team", r.createTeamMember).Methods("POST")
	admin.HandleFunc("/team/{id}", r.updateTeamMember).Methods("PUT")
	admin.HandleFunc("/team/{id}", r.deleteTeamMember).Methods("DELETE")
	admin.HandleFunc("/events", r.createEvent).Methods("POST")
	admin.HandleFunc("/events/{id}", r.updateEvent).Methods("PUT")
	admin.HandleFunc("/events/{id}", r.deleteEvent).Methods("DELETE")
	admin.HandleFunc("/projects/{id}/approve", r.approveProject).Methods("POST")
	admin.HandleFunc("/projects/{id}/reject", r.rejectProject).Methods("POST")
	admin.HandleFunc("/projects/{id}", r.deleteProject).Methods("DELETE")
	admin.HandleFunc("/content/{key}", r.setContent).Methods("PUT")

	// Super-admin routes
	super := r.PathPrefix("/api").Subrouter()
	super.Use(authMW, superMW)
	super.HandleFunc("/users/{id}/role", r.updateProfileRole).Methods("PUT")
	super.HandleFunc("/content/reset", r.resetContent).Methods("POST")

	// Websocket notification feed (token via query param)
	r.HandleFunc("/ws", r.serveNotificationsWs).Methods("GET")

	// Static frontend (embedded bundle, FRONTEND_DIR overrides in dev)
	staticFS, err := web.GetFileSystem()
	if err != nil {
		log.Printf("⚠️  Static assets unavailable: %v", err)
	} else {
		r.PathPrefix("/").Handler(http.FileServer(http.FS(staticFS)))
	}

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondDomainError maps service errors onto HTTP statuses
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case inventory.IsNotFound(err):
		respondError(w, http.StatusNotFound, "Record not found")
	case errors.Is(err, models.ErrInvalidTransition):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrInsufficientStock):
		respondError(w, http.StatusConflict, "Insufficient stock for the requested quantity")
	case errors.Is(err, models.ErrQuantityInvariant):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "Operation failed")
	}
}

// optionalIdentity resolves the caller from a Bearer token when one is
// present. Public listings use it to widen results for signed-in members
// without putting the route behind the auth middleware.
func (r *Router) optionalIdentity(req *http.Request) (userID, role string) {
	authHeader := req.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", ""
	}
	claims, err := utils.ValidateToken(parts[1], r.cfg.JWTSecret)
	if err != nil || claims["type"] != nil {
		return "", ""
	}
	userID, _ = claims["id"].(string)
	role, _ = claims["role"].(string)
	return userID, role
}

// pathID validates the {id} path variable. Malformed IDs would otherwise
// reach Postgres as a uuid cast error.
func pathID(w http.ResponseWriter, req *http.Request) (string, bool) {
	raw := mux.Vars(req)["id"]
	if _, err := uuid.Parse(raw); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid id")
		return "", false
	}
	return raw, true
}

// validateStruct runs validator tags and flattens failures into one message
func (r *Router) validateStruct(w http.ResponseWriter, v interface{}) bool {
	if err := r.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msg := ""
			for _, fe := range verrs {
				if msg != "" {
					msg += "; "
				}
				msg += fe.Field() + " failed " + fe.Tag()
			}
			respondError(w, http.StatusBadRequest, msg)
			return false
		}
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}
