package orders_get

import (
	"encoding/json"
	"net/http"

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
	riderID := h.service.Rider().ID
	snapshot := h.service.Snapshot()

	summary := orders.Summarize(snapshot, riderID)
	found := orders.Search(snapshot, r.URL.Query().Get("q"))

	res := dto.OrdersView{
		Orders: make([]dto.OrderView, 0, len(found)),
		Counters: dto.OrdersCounters{
			Total:     summary.Total,
			New:       summary.New,
			Ongoing:   summary.Ongoing,
			Completed: summary.Completed,
		},
	}
	for _, o := range found {
		res.Orders = append(res.Orders, dto.OrderViewFromEntity(o, riderID))
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
