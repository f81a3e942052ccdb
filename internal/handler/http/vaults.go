package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stayvault/stayvault/internal/logger"
	"github.com/stayvault/stayvault/internal/utils"
	"github.com/stayvault/stayvault/models"
)

func (h *Handler) createVault(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	owner, ok := accountID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.CreateVaultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	info, err := h.services.RegistryService.CreateVault(r.Context(), owner, req)
	if err != nil {
		log.Err(err).Str("vault_id", req.VaultID).Msg("vault creation failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, info, http.StatusCreated)
}

func (h *Handler) listVaults(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	infos, err := h.services.RegistryService.ListVaults(r.Context())
	if err != nil {
		log.Err(err).Msg("vault enumeration failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, infos, http.StatusOK)
}

func (h *Handler) getVault(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	vaultID := chi.URLParam(r, "vaultID")

	info, err := h.services.RegistryService.GetVault(r.Context(), vaultID)
	if err != nil {
		log.Err(err).Str("vault_id", vaultID).Msg("vault lookup failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, info, http.StatusOK)
}

func (h *Handler) createDateVault(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	vaultID := chi.URLParam(r, "vaultID")

	var req models.DateVaultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	resp, err := h.services.RegistryService.GetOrCreateDateVault(r.Context(), vaultID, req)
	if err != nil {
		log.Err(err).Str("vault_id", vaultID).Msg("date sub-vault resolution failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, responseStatus(resp.Created))
}

// createDailyVaults handles both the single-day and the bulk form of the
// daily request, switching on which field the body populates.
func (h *Handler) createDailyVaults(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	vaultID := chi.URLParam(r, "vaultID")

	var req models.DailyVaultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if len(req.Days) > 0 {
		out, err := h.services.RegistryService.CreateDailyVaults(r.Context(), vaultID, req.Days, req.AccessCode)
		if err != nil {
			log.Err(err).Str("vault_id", vaultID).Msg("bulk daily sub-vault creation failed")
			http.Error(w, err.Error(), statusFromError(err))
			return
		}
		utils.WriteJSON(w, out, http.StatusCreated)
		return
	}

	resp, err := h.services.RegistryService.GetOrCreateDailyVault(r.Context(), vaultID, req.Day, req.AccessCode)
	if err != nil {
		log.Err(err).Str("vault_id", vaultID).Msg("daily sub-vault resolution failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, responseStatus(resp.Created))
}

func (h *Handler) createNightVault(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	vaultID := chi.URLParam(r, "vaultID")

	var req models.NightVaultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	resp, err := h.services.RegistryService.GetOrCreateNightVault(r.Context(), vaultID, req)
	if err != nil {
		log.Err(err).Str("vault_id", vaultID).Msg("night sub-vault resolution failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, responseStatus(resp.Created))
}

func (h *Handler) setAvailability(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	vaultID := chi.URLParam(r, "vaultID")

	caller, ok := accountID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.RegistryService.SetNightAvailability(r.Context(), caller, vaultID, req); err != nil {
		log.Err(err).Str("vault_id", vaultID).Msg("availability update failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) listSubVaults(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	vaultID := chi.URLParam(r, "vaultID")

	var kind models.SubVaultKind
	switch chi.URLParam(r, "kind") {
	case "dates":
		kind = models.SubVaultDate
	case "days":
		kind = models.SubVaultDaily
	case "nights":
		kind = models.SubVaultNight
	default:
		http.Error(w, "unknown sub-vault kind", http.StatusBadRequest)
		return
	}

	records, err := h.services.RegistryService.SubVaults(r.Context(), vaultID, kind)
	if err != nil {
		log.Err(err).Str("vault_id", vaultID).Msg("sub-vault enumeration failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, records, http.StatusOK)
}

// responseStatus distinguishes a freshly created sub-vault from an idempotent
// lookup of an existing one.
func responseStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}
