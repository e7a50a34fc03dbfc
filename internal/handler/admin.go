package handler

import (
	"net/http"

	"github.com/hollowpine/frontier/internal/logger"
	"github.com/hollowpine/frontier/internal/profession"
)

// AdminHandler exposes administrative profession overrides. Every override
// reconciles ability effects afterwards, so revoked tiers are stripped
// immediately rather than on the next restart.
type AdminHandler struct {
	service profession.Service
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(service profession.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// SetXPRequest is the request body for overwriting a profession's XP
type SetXPRequest struct {
	PlayerID   string `json:"player_id" validate:"required"`
	Profession string `json:"profession" validate:"required,profession"`
	XP         int64  `json:"xp" validate:"gte=0"`
}

// HandleSetXP overwrites a profession's XP.
func (h *AdminHandler) HandleSetXP(w http.ResponseWriter, r *http.Request) {
	var req SetXPRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Admin set XP"); err != nil {
		return
	}

	if err := h.service.SetXP(r.Context(), req.PlayerID, req.Profession, req.XP); err != nil {
		respondServiceError(w, r, "Admin set XP", err)
		return
	}

	logger.FromContext(r.Context()).Info("Admin set XP", "player_id", req.PlayerID, "profession", req.Profession, "xp", req.XP)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "xp updated"})
}

// SetLevelRequest is the request body for moving a profession to a level
type SetLevelRequest struct {
	PlayerID   string `json:"player_id" validate:"required"`
	Profession string `json:"profession" validate:"required,profession"`
	Level      int    `json:"level" validate:"required,gte=1"`
}

// HandleSetLevel moves a profession to the start of a level.
func (h *AdminHandler) HandleSetLevel(w http.ResponseWriter, r *http.Request) {
	var req SetLevelRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Admin set level"); err != nil {
		return
	}

	if err := h.service.SetLevel(r.Context(), req.PlayerID, req.Profession, req.Level); err != nil {
		respondServiceError(w, r, "Admin set level", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "level updated"})
}

// ResetRequest is the request body for resetting professions. Leave the
// profession empty to reset all five.
type ResetRequest struct {
	PlayerID   string `json:"player_id" validate:"required"`
	Profession string `json:"profession" validate:"omitempty,profession"`
}

// HandleReset zeroes one profession, or all of them when none is named.
func (h *AdminHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Admin reset"); err != nil {
		return
	}

	var err error
	if req.Profession == "" {
		err = h.service.ResetAll(r.Context(), req.PlayerID)
	} else {
		err = h.service.ResetProfession(r.Context(), req.PlayerID, req.Profession)
	}
	if err != nil {
		respondServiceError(w, r, "Admin reset", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "professions reset"})
}
