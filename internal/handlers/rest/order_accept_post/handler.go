package order_accept_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"ridersync/internal/dto"
	"ridersync/internal/service/orders"
	"ridersync/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]
	if orderID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	order, err := h.service.Accept(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, orders.ErrAlreadyAssigned), errors.Is(err, orders.ErrNotEligible):
			w.WriteHeader(http.StatusConflict)
		case errors.Is(err, orders.ErrNoRider):
			w.WriteHeader(http.StatusUnauthorized)
		default:
			h.log.With(
				logger.NewField("order", orderID),
				logger.NewField("error", err),
			).Warn("accept order failed")
			w.WriteHeader(http.StatusBadGateway)
		}
		return
	}

	h.log.With(
		logger.NewField("order", order.ID),
	).Info("order accepted")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.OrderViewFromEntity(order, h.service.Rider().ID))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
