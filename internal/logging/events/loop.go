package events

import "github.com/atomicstack/termloop/internal/logging"

type LoopTracer struct{}

var Loop = LoopTracer{}

func (LoopTracer) Quit(iterations int) {
	logging.Trace("loop.quit", map[string]interface{}{"iterations": iterations})
}

func (LoopTracer) Error(iterations int, err error) {
	logging.Trace("loop.error", map[string]interface{}{"iterations": iterations, "error": err.Error()})
}
