package ping_get

import (
	"encoding/json"
	"net/http"
	"time"

	"ridersync/internal/dto"
	"ridersync/pkg/logger"
)

const serviceName = "rider-sync"

// Handler отвечает, что демон жив, и сколько он уже работает.
type Handler struct {
	log       handlerLogger
	startedAt time.Time
}

func New(log handlerLogger) *Handler {
	return &Handler{
		log:       log,
		startedAt: time.Now(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := dto.PingResponse{
		Message: "pong",
		Service: serviceName,
		Uptime:  time.Since(h.startedAt).Truncate(time.Second).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		h.log.Error("encode ping response", logger.NewField("error", err))
	}
}
