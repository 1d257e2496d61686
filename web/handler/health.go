package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/frontend/internal/infrastructure/monitor"
	"github.com/fastygo/frontend/internal/session"
	"github.com/fastygo/frontend/pkg/httpcontext"
	"github.com/fastygo/frontend/web/transport"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, cfg Config, adapter *httpcontext.Adapter, store session.Store, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(cfg, adapter, store, logger),
		monitor:     mon,
	}
}

// Check reports the monitor's last snapshot. The endpoint answers from
// memory so probes stay cheap even when the backend is down.
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"services": map[string]interface{}{
			"backend": status.Backend,
			"redis":   status.Redis,
			"assistant": map[string]interface{}{
				"online":        status.History,
				"conversations": status.Conversations,
			},
		},
	}

	if h.monitor.Healthy() {
		h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(payload, nil))
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "dependencies unhealthy", payload))
}
