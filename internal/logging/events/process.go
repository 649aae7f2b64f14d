package events

import "github.com/netops-tools/dnac-console/internal/logging"

type ProcessTracer struct{}

var Process = ProcessTracer{}

func (ProcessTracer) Start(commandLine, mode string) {
	logging.Trace("process.start", map[string]interface{}{"command": commandLine, "mode": mode})
}

func (ProcessTracer) Exit(commandLine string, code int, err error) {
	payload := map[string]interface{}{"command": commandLine, "code": code}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("process.exit", payload)
}

func (ProcessTracer) Terminal(action string, err error) {
	payload := map[string]interface{}{"action": action}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("process.terminal", payload)
}
