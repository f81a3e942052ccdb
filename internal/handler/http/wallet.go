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

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	account, ok := accountID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	balance, err := h.services.TreasuryService.Balance(r.Context(), account)
	if err != nil {
		log.Err(err).Str("account", account).Msg("balance read failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.BalanceResponse{Account: account, Balance: balance}, http.StatusOK)
}

func (h *Handler) faucet(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	account, ok := accountID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	balance, err := h.services.TreasuryService.Faucet(r.Context(), account)
	if err != nil {
		log.Err(err).Str("account", account).Msg("faucet mint failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.BalanceResponse{Account: account, Balance: balance}, http.StatusOK)
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	account, ok := accountID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.TreasuryService.Approve(r.Context(), account, req.Spender, req.Amount); err != nil {
		log.Err(err).Str("account", account).Str("spender", req.Spender).Msg("approve failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) allowance(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	account, ok := accountID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	spender := r.URL.Query().Get("spender")
	if spender == "" {
		http.Error(w, "spender query parameter is required", http.StatusBadRequest)
		return
	}

	allowance, err := h.services.TreasuryService.Allowance(r.Context(), account, spender)
	if err != nil {
		log.Err(err).Str("account", account).Msg("allowance read failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.AllowanceResponse{Owner: account, Spender: spender, Allowance: allowance}, http.StatusOK)
}

func (h *Handler) earnings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	address := chi.URLParam(r, "address")

	account, ok := accountID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	resp, err := h.services.TreasuryService.Earnings(r.Context(), address, account)
	if err != nil {
		log.Err(err).Str("address", address).Msg("earnings read failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) withdraw(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	address := chi.URLParam(r, "address")

	account, ok := accountID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	resp, err := h.services.TreasuryService.WithdrawEarnings(r.Context(), address, account)
	if err != nil {
		log.Err(err).Str("address", address).Msg("withdrawal failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// settlements reads back the settlement journal, filtered by the optional
// vault_id, booker, and limit query parameters.
func (h *Handler) settlements(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	filter := models.SettlementFilter{
		VaultID: r.URL.Query().Get("vault_id"),
		Booker:  r.URL.Query().Get("booker"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		filter.Limit = limit
	}

	out, err := h.services.TreasuryService.Settlements(r.Context(), filter)
	if err != nil {
		log.Err(err).Msg("settlement journal read failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, out, http.StatusOK)
}
