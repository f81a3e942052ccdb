package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/wallet", func(r chi.Router) {
			r.Get("/balance", h.balance)
			r.Post("/faucet", h.faucet)
			r.Post("/approve", h.approve)
			r.Get("/allowance", h.allowance)
		})

		r.Route("/api/vaults", func(r chi.Router) {
			r.Post("/", h.createVault)
			r.Get("/", h.listVaults)
			r.Get("/{vaultID}", h.getVault)
			r.Post("/{vaultID}/dates", h.createDateVault)
			r.Post("/{vaultID}/days", h.createDailyVaults)
			r.Post("/{vaultID}/nights", h.createNightVault)
			r.Put("/{vaultID}/availability", h.setAvailability)
			r.Get("/{vaultID}/subvaults/{kind}", h.listSubVaults)
		})

		r.Route("/api/escrow/{address}", func(r chi.Router) {
			r.Get("/", h.snapshot)
			r.Post("/reservation", h.createReservation)
			r.Get("/bids", h.listBids)
			r.Post("/bids", h.placeBid)
			r.Post("/cede", h.cedeReservation)
			r.Post("/checkin", h.checkIn)
			r.Post("/checkout", h.checkOut)

			r.Get("/access-code", h.currentAccessCode)
			r.Get("/access-code/{nonce}", h.accessCode)
			r.Get("/access-code/{nonce}/active", h.accessCodeActive)
			r.Get("/master-code", h.masterCode)
			r.Put("/master-code", h.updateMasterCode)

			r.Get("/earnings", h.earnings)
			r.Post("/withdraw", h.withdraw)
		})

		r.Get("/api/settlements", h.settlements)
	})

	return router
}
