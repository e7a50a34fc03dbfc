package handler

import (
	"context"
	"net/http"

	"github.com/hollowpine/frontier/internal/domain"
)

// PenaltyService is the slice of the death penalty engine the handler needs.
type PenaltyService interface {
	OnDeath(ctx context.Context, playerID string) (domain.DeathPenaltyResult, error)
}

// DeathHandler exposes the death penalty operation.
type DeathHandler struct {
	penalty PenaltyService
}

// NewDeathHandler creates a new DeathHandler
func NewDeathHandler(penalty PenaltyService) *DeathHandler {
	return &DeathHandler{penalty: penalty}
}

// DeathRequest is the request body for reporting a player death
type DeathRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

// HandleDeath applies the death penalty and returns what was lost.
func (h *DeathHandler) HandleDeath(w http.ResponseWriter, r *http.Request) {
	var req DeathRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Player death"); err != nil {
		return
	}

	result, err := h.penalty.OnDeath(r.Context(), req.PlayerID)
	if err != nil {
		respondServiceError(w, r, "Player death", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
