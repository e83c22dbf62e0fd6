package alert_dismiss_post

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"ridersync/internal/service/alerts"
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
	alertID := mux.Vars(r)["id"]
	if alertID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	err := h.service.Dismiss(r.Context(), alertID)
	if err != nil {
		if errors.Is(err, alerts.ErrAlertNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.log.With(
			logger.NewField("alert", alertID),
			logger.NewField("error", err),
		).Error("dismiss alert")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
