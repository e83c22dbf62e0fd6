package alert_action_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"ridersync/internal/dto"
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

// ServeHTTP закрывает уведомление и отдает цель перехода.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	alertID := mux.Vars(r)["id"]
	if alertID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	action, err := h.service.Act(r.Context(), alertID)
	if err != nil {
		if errors.Is(err, alerts.ErrAlertNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.log.With(
			logger.NewField("alert", alertID),
			logger.NewField("error", err),
		).Error("alert action")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.AlertActionView{Label: action.Label, Target: action.Target})
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
