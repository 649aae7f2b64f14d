package events

import (
	"time"

	"github.com/netops-tools/dnac-console/internal/logging"
)

type APITracer struct{}

var API = APITracer{}

func (APITracer) Request(requestID, method, path string) {
	logging.Trace("api.request", map[string]interface{}{"request": requestID, "method": method, "path": path})
}

func (APITracer) Response(requestID string, status int, elapsed time.Duration, err error) {
	payload := map[string]interface{}{
		"request": requestID,
		"status":  status,
		"elapsed": elapsed.String(),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("api.response", payload)
}

func (APITracer) Authenticated(host string) {
	logging.Trace("api.auth", map[string]interface{}{"host": host})
}
