package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stayvault/stayvault/internal/logger"
	"github.com/stayvault/stayvault/internal/utils"
	"github.com/stayvault/stayvault/models"
)

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	address := chi.URLParam(r, "address")

	snap, err := h.services.BookingService.Snapshot(r.Context(), address)
	if err != nil {
		log.Err(err).Str("address", address).Msg("vault snapshot failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, snap, http.StatusOK)
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	address := chi.URLParam(r, "address")

	caller, ok := accountID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.BookingService.CreateReservation(r.Context(), address, caller, req); err != nil {
		log.Err(err).Str("address", address).Msg("reservation failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) listBids(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	address := chi.URLParam(r, "address")

	bids, err := h.services.BookingService.Bids(r.Context(), address)
	if err != nil {
		log.Err(err).Str("address", address).Msg("bid enumeration failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, bids, http.StatusOK)
}

func (h *Handler) placeBid(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	address := chi.URLParam(r, "address")

	caller, ok := accountID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.BidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.BookingService.PlaceBid(r.Context(), address, caller, req.Amount); err != nil {
		log.Err(err).Str("address", address).Msg("bid failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) cedeReservation(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	address := chi.URLParam(r, "address")

	caller, ok := accountID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.CedeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.BookingService.CedeReservation(r.Context(), address, caller, req.BidIndex); err != nil {
		log.Err(err).Str("address", address).Msg("cession failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) checkIn(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	address := chi.URLParam(r, "address")

	caller, ok := accountID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	resp, err := h.services.BookingService.CheckIn(r.Context(), address, caller)
	if err != nil {
		log.Err(err).Str("address", address).Msg("check-in failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) checkOut(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	address := chi.URLParam(r, "address")

	caller, ok := accountID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.BookingService.CheckOut(r.Context(), address, caller); err != nil {
		log.Err(err).Str("address", address).Msg("check-out failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}
