package events

import "github.com/atomicstack/tmux-popup-launcher/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Reload(path string, err error) {
	payload := map[string]interface{}{"path": path}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.reload", payload)
}

func (AppTracer) DefaultWritten(path string) {
	logging.Trace("app.default-config", map[string]interface{}{"path": path})
}
