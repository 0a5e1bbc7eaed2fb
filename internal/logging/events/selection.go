package events

import "github.com/atomicstack/tmux-popup-launcher/internal/logging"

type SelectionTracer struct{}

var Selection = SelectionTracer{}

func (SelectionTracer) Resolve(buildID string, id int, kind, target string) {
	logging.Trace("selection.resolve", map[string]interface{}{
		"build":  buildID,
		"id":     id,
		"kind":   kind,
		"target": target,
	})
}

func (SelectionTracer) Miss(buildID string, id int) {
	logging.Trace("selection.miss", map[string]interface{}{"build": buildID, "id": id})
}

func (SelectionTracer) Dispatch(kind, target string, err error) {
	payload := map[string]interface{}{"kind": kind, "target": target}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("selection.dispatch", payload)
}
