package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stayvault/stayvault/internal/logger"
	"github.com/stayvault/stayvault/internal/utils"
	"github.com/stayvault/stayvault/models"
)

// Access-code endpoints. The vault itself enforces the authorized reader set;
// the handlers only carry the authenticated account through.

func (h *Handler) currentAccessCode(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	address := chi.URLParam(r, "address")

	caller, ok := accountID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	resp, err := h.services.BookingService.CurrentAccessCode(r.Context(), address, caller)
	if err != nil {
		log.Err(err).Str("address", address).Msg("access code read failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) accessCode(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	address := chi.URLParam(r, "address")

	caller, ok := accountID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	nonce, err := strconv.ParseUint(chi.URLParam(r, "nonce"), 10, 64)
	if err != nil {
		http.Error(w, "invalid nonce", http.StatusBadRequest)
		return
	}

	code, err := h.services.BookingService.AccessCode(r.Context(), address, caller, nonce)
	if err != nil {
		log.Err(err).Str("address", address).Uint64("nonce", nonce).Msg("access code read failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.AccessCodeResponse{AccessCode: code, Nonce: nonce}, http.StatusOK)
}

func (h *Handler) accessCodeActive(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	address := chi.URLParam(r, "address")

	caller, ok := accountID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	nonce, err := strconv.ParseUint(chi.URLParam(r, "nonce"), 10, 64)
	if err != nil {
		http.Error(w, "invalid nonce", http.StatusBadRequest)
		return
	}

	active, err := h.services.BookingService.IsAccessCodeActive(r.Context(), address, caller, nonce)
	if err != nil {
		log.Err(err).Str("address", address).Uint64("nonce", nonce).Msg("access code activity read failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.AccessCodeActiveResponse{Active: active, Nonce: nonce}, http.StatusOK)
}

func (h *Handler) masterCode(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	address := chi.URLParam(r, "address")

	caller, ok := accountID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	code, err := h.services.BookingService.MasterAccessCode(r.Context(), address, caller)
	if err != nil {
		log.Err(err).Str("address", address).Msg("master code read failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.MasterCodeRequest{AccessCode: code}, http.StatusOK)
}

func (h *Handler) updateMasterCode(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	address := chi.URLParam(r, "address")

	caller, ok := accountID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.MasterCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.BookingService.UpdateMasterAccessCode(r.Context(), address, caller, req.AccessCode); err != nil {
		log.Err(err).Str("address", address).Msg("master code update failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}
