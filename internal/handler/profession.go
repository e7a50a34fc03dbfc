package handler

import (
	"net/http"

	"github.com/hollowpine/frontier/internal/domain"
	"github.com/hollowpine/frontier/internal/logger"
	"github.com/hollowpine/frontier/internal/profession"
)

// ProfessionHandler exposes the profession progression operations.
type ProfessionHandler struct {
	service profession.Service
}

// NewProfessionHandler creates a new ProfessionHandler
func NewProfessionHandler(service profession.Service) *ProfessionHandler {
	return &ProfessionHandler{service: service}
}

// AwardXPRequest is the request body for awarding XP
type AwardXPRequest struct {
	PlayerID   string `json:"player_id" validate:"required"`
	Profession string `json:"profession" validate:"required,profession"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
	Source     string `json:"source" validate:"max=64"`
}

// HandleAwardXP grants XP to one of a player's professions.
func (h *ProfessionHandler) HandleAwardXP(w http.ResponseWriter, r *http.Request) {
	var req AwardXPRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Award XP"); err != nil {
		return
	}

	result, err := h.service.AwardXP(r.Context(), req.PlayerID, req.Profession, req.Amount, req.Source)
	if err != nil {
		respondServiceError(w, r, "Award XP", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// StatsResponse wraps a player's full profession state.
type StatsResponse struct {
	PlayerID string                                              `json:"player_id"`
	Stats    map[domain.Profession]domain.ProfessionSnapshot `json:"stats"`
}

// HandleGetStats returns all five profession snapshots for a player.
func (h *ProfessionHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetQueryParam(r, w, "player_id")
	if !ok {
		return
	}

	stats, err := h.service.GetAllStats(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, "Get stats", err)
		return
	}

	respondJSON(w, http.StatusOK, StatsResponse{PlayerID: playerID, Stats: stats})
}

// HandleGetProgress returns one profession's snapshot plus the fraction of
// progress toward the next level.
func (h *ProfessionHandler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetQueryParam(r, w, "player_id")
	if !ok {
		return
	}
	professionName, ok := GetQueryParam(r, w, "profession")
	if !ok {
		return
	}

	progress, err := h.service.GetProgress(r.Context(), playerID, professionName)
	if err != nil {
		respondServiceError(w, r, "Get progress", err)
		return
	}

	respondJSON(w, http.StatusOK, progress)
}

// PlayerSessionRequest identifies a player for join/leave notifications.
type PlayerSessionRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

// HandleJoin prepares a player's session state.
func (h *ProfessionHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	var req PlayerSessionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Player join"); err != nil {
		return
	}

	if err := h.service.HandleJoin(r.Context(), req.PlayerID); err != nil {
		respondServiceError(w, r, "Player join", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "player session ready"})
}

// HandleLeave flushes and tears down a player's session state. Extra cleanups
// (death history, depletion tuning) run after the profession flush.
func (h *ProfessionHandler) HandleLeave(cleanups ...func(playerID string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PlayerSessionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Player leave"); err != nil {
			return
		}

		err := h.service.HandleLeave(r.Context(), req.PlayerID)
		for _, cleanup := range cleanups {
			cleanup(req.PlayerID)
		}
		if err != nil {
			logger.FromContext(r.Context()).Error("Player leave flush failed", "player_id", req.PlayerID, "error", err)
			respondServiceError(w, r, "Player leave", err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "player session closed"})
	}
}
