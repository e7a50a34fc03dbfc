package handler

import (
	"net/http"

	"github.com/hollowpine/frontier/internal/ability"
	"github.com/hollowpine/frontier/internal/domain"
	"github.com/hollowpine/frontier/internal/profession"
)

// AbilityHandler exposes the static ability catalog and per-player unlocks.
type AbilityHandler struct {
	catalog *ability.Catalog
	service profession.Service
}

// NewAbilityHandler creates a new AbilityHandler
func NewAbilityHandler(catalog *ability.Catalog, service profession.Service) *AbilityHandler {
	return &AbilityHandler{catalog: catalog, service: service}
}

// HandleGetCatalog lists the ability definitions, optionally filtered to one
// profession.
func (h *AbilityHandler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("profession"); name != "" {
		prof, err := domain.ParseProfession(name)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgUnknownProfession)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"abilities": h.catalog.AbilitiesFor(prof),
		})
		return
	}

	all := make(map[domain.Profession][]domain.Ability, len(domain.Professions))
	for _, p := range domain.Professions {
		all[p] = h.catalog.AbilitiesFor(p)
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"abilities": all})
}

// PlayerAbilityStatus pairs an ability with whether the player has reached it.
type PlayerAbilityStatus struct {
	domain.Ability
	Unlocked bool `json:"unlocked"`
}

// HandleGetPlayerAbilities lists every ability with the player's unlock state
// derived from current levels.
func (h *AbilityHandler) HandleGetPlayerAbilities(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetQueryParam(r, w, "player_id")
	if !ok {
		return
	}

	stats, err := h.service.GetAllStats(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, "Get player abilities", err)
		return
	}

	var abilities []PlayerAbilityStatus
	for _, p := range domain.Professions {
		level := stats[p].Level
		for _, a := range h.catalog.AbilitiesFor(p) {
			abilities = append(abilities, PlayerAbilityStatus{
				Ability:  a,
				Unlocked: level >= a.RequiredLevel,
			})
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"player_id": playerID,
		"abilities": abilities,
	})
}
