package status_get

import (
	"encoding/json"
	"net/http"

	"ridersync/internal/dto"
	"ridersync/pkg/logger"
)

type Handler struct {
	log        handlerLogger
	connection Connection
	orders     Orders
}

func New(log handlerLogger, connection Connection, orders Orders) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:        handlerLog,
		connection: connection,
		orders:     orders,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rider := h.orders.Rider()
	res := dto.StatusResponse{
		Connected:  h.connection.Connected(),
		RiderID:    rider.ID,
		University: rider.University,
		Orders:     len(h.orders.Snapshot()),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err := json.NewEncoder(w).Encode(res)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
