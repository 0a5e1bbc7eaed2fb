package events

import "github.com/atomicstack/tmux-popup-launcher/internal/logging"

type FolderTracer struct{}

var Folder = FolderTracer{}

func (FolderTracer) List(path string, total, shown int) {
	logging.Trace("folder.list", map[string]interface{}{"path": path, "total": total, "shown": shown})
}

func (FolderTracer) Inaccessible(path string, err error) {
	payload := map[string]interface{}{"path": path}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("folder.inaccessible", payload)
}
