package healthcheck_head

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"
)

const storePingTimeout = time.Second

// Store - локальное хранилище сессии. Без него демон не знает курьера.
type Store interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	isShuttingDown *atomic.Bool
	store          Store
}

func New(isShuttingDown *atomic.Bool, store Store) *Handler {
	return &Handler{
		isShuttingDown: isShuttingDown,
		store:          store,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.isShuttingDown.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storePingTimeout)
	defer cancel()
	if err := h.store.PingContext(ctx); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
