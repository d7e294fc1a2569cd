package events

import "github.com/atomicstack/termloop/internal/logging"

type SessionTracer struct{}

var Session = SessionTracer{}

func (SessionTracer) Enter(width, height int) {
	logging.Trace("session.enter", map[string]interface{}{"width": width, "height": height})
}

func (SessionTracer) EnterFailed(step string, err error) {
	logging.Trace("session.enter.failed", map[string]interface{}{"step": step, "error": err.Error()})
}

func (SessionTracer) Exit(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("session.exit", payload)
}
