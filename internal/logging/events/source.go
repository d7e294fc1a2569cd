package events

import (
	"time"

	"github.com/atomicstack/termloop/internal/logging"
)

type SourceTracer struct{}

var Source = SourceTracer{}

func (SourceTracer) Start(tickRate time.Duration, resize bool) {
	logging.Trace("source.start", map[string]interface{}{
		"tick_rate_ms": tickRate.Milliseconds(),
		"resize":       resize,
	})
}

func (SourceTracer) Stop(cause error) {
	payload := map[string]interface{}{}
	if cause != nil {
		payload["cause"] = cause.Error()
	}
	logging.Trace("source.stop", payload)
}
