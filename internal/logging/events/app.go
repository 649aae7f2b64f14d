package events

import "github.com/netops-tools/dnac-console/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Exit(code int, err error) {
	payload := map[string]interface{}{"code": code}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.exit", payload)
}

func (AppTracer) Capabilities(fabric bool, err error) {
	payload := map[string]interface{}{"fabric": fabric}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.capabilities", payload)
}
