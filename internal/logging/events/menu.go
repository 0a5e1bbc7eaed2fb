package events

import "github.com/atomicstack/tmux-popup-launcher/internal/logging"

// MenuTracer records the life cycle of a single menu build.
type MenuTracer struct{}

var Menu = MenuTracer{}

func (MenuTracer) Build(buildID string, entries, nodes int) {
	logging.Trace("menu.build", map[string]interface{}{
		"build":   buildID,
		"entries": entries,
		"nodes":   nodes,
	})
}

func (MenuTracer) Expand(buildID, path string, depth, offset int) {
	logging.Trace("menu.expand", map[string]interface{}{
		"build":  buildID,
		"path":   path,
		"depth":  depth,
		"offset": offset,
	})
}

// ExpandSkipped notes an expansion that hit an already populated or in-flight node.
func (MenuTracer) ExpandSkipped(buildID, path, reason string) {
	logging.Trace("menu.expand.skip", map[string]interface{}{"build": buildID, "path": path, "reason": reason})
}

func (MenuTracer) Apply(buildID, path string, entries int, hasMore bool) {
	logging.Trace("menu.apply", map[string]interface{}{
		"build":   buildID,
		"path":    path,
		"entries": entries,
		"more":    hasMore,
	})
}

func (MenuTracer) Abandon(buildID, path string) {
	logging.Trace("menu.apply.abandon", map[string]interface{}{"build": buildID, "path": path})
}

func (MenuTracer) Exhausted(buildID, pool string) {
	logging.Trace("menu.ids.exhausted", map[string]interface{}{"build": buildID, "pool": pool})
}

func (MenuTracer) Destroy(buildID string, released int) {
	logging.Trace("menu.destroy", map[string]interface{}{"build": buildID, "released": released})
}
