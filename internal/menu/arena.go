package menu

import "github.com/atomicstack/tmux-popup-launcher/internal/icon"

// arena owns the icon handles created during one build. Nodes only
// borrow them.
type arena struct {
	handles  []*icon.Handle
	released bool
}

func (a *arena) track(h *icon.Handle) *icon.Handle {
	if h == nil {
		return nil
	}
	if a.released {
		return nil
	}
	a.handles = append(a.handles, h)
	return h
}

// release frees every tracked handle once and returns how many were freed.
func (a *arena) release(loader icon.Loader) int {
	if a.released {
		return 0
	}
	a.released = true
	n := 0
	for _, h := range a.handles {
		if h == nil || h.Released() {
			continue
		}
		if loader != nil {
			loader.Release(h)
		}
		n++
	}
	a.handles = nil
	return n
}

func (a *arena) len() int { return len(a.handles) }
