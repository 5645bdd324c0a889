package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/circuitology-club/portalgo/internal/middleware"
	"github.com/circuitology-club/portalgo/internal/models"
	"github.com/circuitology-club/portalgo/internal/utils"
)

// RegisterRequest represents a signup request
type RegisterRequest struct {
	Name      string  `json:"name" validate:"required,min=2,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	StudentID *string `json:"studentId,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// register handles member signup. New accounts always start as students;
// roles are only changed by a super admin.
func (r *Router) register(w http.ResponseWriter, req *http.Request) {
	if !r.cfg.Club.AllowSignup {
		respondError(w, http.StatusForbidden, "Signup is disabled")
		return
	}

	var regReq RegisterRequest
	if err := json.NewDecoder(req.Body).Decode(&regReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !r.validateStruct(w, &regReq) {
		return
	}

	hashedPassword, err := utils.HashPassword(regReq.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	profile := models.Profile{
		Name:      regReq.Name,
		Email:     regReq.Email,
		Password:  hashedPassword,
		Role:      models.RoleStudent,
		StudentID: regReq.StudentID,
		Phone:     regReq.Phone,
	}

	if err := r.db.Create(&profile).Error; err != nil {
		respondError(w, http.StatusBadRequest, "Failed to create account (email might exist)")
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&profile, r.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Account created but failed to generate tokens")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Account registered successfully",
		"tokens": map[string]string{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
		"user": profile,
	})
}

// login handles member login
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	var loginReq LoginRequest
	if err := json.NewDecoder(req.Body).Decode(&loginReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	var profile models.Profile
	if err := r.db.Where("email = ?", loginReq.Email).First(&profile).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !profile.IsActive {
		respondError(w, http.StatusForbidden, "Account is deactivated")
		return
	}

	if !utils.CheckPasswordHash(loginReq.Password, profile.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now().UTC()
	profile.LastLogin = &now
	r.db.Save(&profile)

	accessToken, refreshToken, err := utils.GenerateTokens(&profile, r.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tokens": map[string]string{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
		"user": profile,
	})
}

// logout handles member logout. Tokens are stateless, so this is an
// acknowledgement for the client to drop its copy.
func (r *Router) logout(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// refreshTokens exchanges a valid refresh token for a new token pair
func (r *Router) refreshTokens(w http.ResponseWriter, req *http.Request) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	claims, err := utils.ValidateTypedToken(body.RefreshToken, r.cfg.JWTSecret, "refresh")
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	id, _ := claims["id"].(string)
	var profile models.Profile
	if err := r.db.First(&profile, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "Account no longer exists")
		return
	}
	if !profile.IsActive {
		respondError(w, http.StatusForbidden, "Account is deactivated")
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&profile, r.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tokens": map[string]string{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
	})
}

// forgotPassword issues a short-lived reset token. The response is the same
// whether or not the email exists, to avoid account probing. Without a mail
// provider the token is logged for an admin to relay.
func (r *Router) forgotPassword(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !r.validateStruct(w, &body) {
		return
	}

	var profile models.Profile
	if err := r.db.Where("email = ?", body.Email).First(&profile).Error; err == nil {
		if token, err := utils.GenerateResetToken(profile.ID, r.cfg.JWTSecret); err == nil {
			log.Printf("🔑 Password reset token for %s: %s", profile.Email, token)
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "If the address is registered, a reset token has been issued",
	})
}

// resetPassword sets a new password from a valid reset token
func (r *Router) resetPassword(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !r.validateStruct(w, &body) {
		return
	}

	claims, err := utils.ValidateTypedToken(body.Token, r.cfg.JWTSecret, "reset")
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid or expired reset token")
		return
	}

	id, _ := claims["id"].(string)
	hashedPassword, err := utils.HashPassword(body.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	res := r.db.Model(&models.Profile{}).Where("id = ?", id).Update("password", hashedPassword)
	if res.Error != nil || res.RowsAffected == 0 {
		respondError(w, http.StatusUnauthorized, "Account no longer exists")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

// currentProfile returns the signed-in member's profile
func (r *Router) currentProfile(w http.ResponseWriter, req *http.Request) {
	id := middleware.UserIDFromContext(req.Context())

	var profile models.Profile
	if err := r.db.First(&profile, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Profile not found")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}
