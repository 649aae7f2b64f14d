package events

import (
	"time"

	"github.com/netops-tools/dnac-console/internal/logging"
)

type PollTracer struct{}

var Poll = PollTracer{}

func (PollTracer) Start(id string, timeout, interval time.Duration, backoff float64) {
	logging.Trace("poll.start", map[string]interface{}{
		"id":       id,
		"timeout":  timeout.String(),
		"interval": interval.String(),
		"backoff":  backoff,
	})
}

func (PollTracer) Attempt(id string, attempt int, err error) {
	payload := map[string]interface{}{"id": id, "attempt": attempt}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("poll.attempt", payload)
}

func (PollTracer) Sleep(id string, d time.Duration) {
	logging.Trace("poll.sleep", map[string]interface{}{"id": id, "sleep": d.String()})
}

func (PollTracer) Outcome(id, kind string, attempts int, elapsed time.Duration) {
	logging.Trace("poll.outcome", map[string]interface{}{
		"id":       id,
		"outcome":  kind,
		"attempts": attempts,
		"elapsed":  elapsed.String(),
	})
}
