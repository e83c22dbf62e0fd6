package order_status_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"ridersync/internal/dto"
	"ridersync/internal/entities"
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

	var req dto.StatusUpdateRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || orderID == "" || req.Status == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	order, err := h.service.AdvanceStatus(r.Context(), orderID, entities.OrderStatusType(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, orders.ErrNotAssignedToRider):
			w.WriteHeader(http.StatusForbidden)
		case errors.Is(err, orders.ErrInvalidTransition):
			w.WriteHeader(http.StatusConflict)
		default:
			h.log.With(
				logger.NewField("order", orderID),
				logger.NewField("status", req.Status),
				logger.NewField("error", err),
			).Warn("advance order status failed")
			w.WriteHeader(http.StatusBadGateway)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.OrderViewFromEntity(order, h.service.Rider().ID))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
