package router

import (
	"log/slog"
	"net/http"

	"github.com/senyabanana/freight-service/internal/auth"
	"github.com/senyabanana/freight-service/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handlers - набор обработчиков, которые монтирует InitRoutes.
type Handlers struct {
	Bids         *handlers.BidHandler
	Offers       *handlers.OfferHandler
	Deals        *handlers.DealHandler
	Transporters *handlers.TransporterHandler
}

func InitRoutes(h Handlers, verifier *auth.TokenVerifier, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", handlers.NewPingHandler(logger))

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate(verifier))

			r.Get("/auth/verify", handlers.VerifyPrincipal(logger))

			r.Route("/bids", func(r chi.Router) {
				r.With(auth.Require(auth.ViewBids)).Get("/", h.Bids.ListBids)
				r.With(auth.Require(auth.CreateBid)).Post("/", h.Bids.CreateBid)
				r.With(auth.Require(auth.ViewBids)).Get("/{bidId}", h.Bids.GetBid)
				r.With(auth.Require(auth.CloseBid)).Post("/{bidId}/close", h.Bids.CloseBid)
				r.With(auth.Require(auth.AcceptOffer)).Post("/{bidId}/accept-offer", h.Bids.AcceptOffer)
			})

			r.Route("/offers", func(r chi.Router) {
				r.With(auth.Require(auth.ViewOffers)).Get("/", h.Offers.ListOffers)
				r.With(auth.Require(auth.CreateOffer)).Post("/", h.Offers.CreateOffer)
				r.With(auth.Require(auth.ViewOffers)).Get("/{offerId}", h.Offers.GetOffer)
				r.With(auth.Require(auth.DeleteOffer)).Delete("/{offerId}", h.Offers.DeleteOffer)
			})

			r.Route("/deals", func(r chi.Router) {
				r.With(auth.Require(auth.ViewDeals)).Get("/", h.Deals.ListDeals)
				r.With(auth.Require(auth.LogDeal)).Post("/add", h.Deals.LogDeal)
			})

			r.Route("/transporters", func(r chi.Router) {
				r.With(auth.Require(auth.ViewTransporters)).Get("/", h.Transporters.ListTransporters)
				r.With(auth.Require(auth.ViewTransporters)).Get("/count", h.Transporters.CountTransporters)
				r.With(auth.Require(auth.ManageTransporters)).Post("/", h.Transporters.CreateTransporter)
				r.With(auth.Require(auth.ViewTransporters)).Get("/{transporterId}", h.Transporters.GetTransporter)
				r.With(auth.Require(auth.ManageTransporters)).Patch("/{transporterId}", h.Transporters.UpdateTransporter)
				r.With(auth.Require(auth.ManageTransporters)).Delete("/{transporterId}", h.Transporters.DeleteTransporter)
				r.With(auth.Require(auth.ViewTransporterHist)).Get("/{transporterId}/history", h.Transporters.TransporterHistory)
			})
		})
	})

	return r
}
