package menu

import "github.com/atomicstack/tmux-popup-launcher/internal/settings"

// Identifier ranges. The three pools never overlap.
const (
	StaticBase     = 1000
	StaticMax      = 1000
	RecentBase     = 2000
	RecentMax      = 900
	RecentClearID  = RecentBase + 900
	DiscoveredBase = 3000
	DiscoveredMax  = 4096
)

// Pool names an identifier range.
type Pool int

const (
	PoolStatic Pool = iota
	PoolRecent
	PoolDiscovered
)

func (p Pool) String() string {
	switch p {
	case PoolStatic:
		return "static"
	case PoolRecent:
		return "recent"
	case PoolDiscovered:
		return "discovered"
	default:
		return "unknown"
	}
}

type allocator struct {
	pool Pool
	base int
	max  int
	next int
}

func (a *allocator) allocate() (int, bool) {
	if a.next >= a.max {
		return 0, false
	}
	id := a.base + a.next
	a.next++
	return id, true
}

func (a *allocator) reset() { a.next = 0 }

type mapping struct {
	id     int
	action Action
}

// Identifiers hands out command IDs for one build and remembers what each
// ID does. It is append-only between resets.
type Identifiers struct {
	static     allocator
	discovered allocator
	entries    []mapping
	index      map[int]int
}

// NewIdentifiers returns an empty allocator and map.
func NewIdentifiers() *Identifiers {
	ids := &Identifiers{
		static:     allocator{pool: PoolStatic, base: StaticBase, max: StaticMax},
		discovered: allocator{pool: PoolDiscovered, base: DiscoveredBase, max: DiscoveredMax},
	}
	ids.Reset()
	return ids
}

// Reset empties the map and restarts both pools at their bases.
func (m *Identifiers) Reset() {
	m.static.reset()
	m.discovered.reset()
	m.entries = m.entries[:0]
	m.index = make(map[int]int)
}

// AllocateStatic returns the next ID from the static pool. ok is false once
// the pool is exhausted.
func (m *Identifiers) AllocateStatic() (int, bool) {
	return m.static.allocate()
}

// AllocateDiscovered returns the next ID from the pool shared by every
// enumeration in the build.
func (m *Identifiers) AllocateDiscovered() (int, bool) {
	return m.discovered.allocate()
}

// RecentID maps a position in the recent list to its ID.
func RecentID(index int) (int, bool) {
	if index < 0 || index >= RecentMax {
		return 0, false
	}
	return RecentBase + index, true
}

// Record stores the action for id. Recording an ID twice replaces the
// earlier action but keeps its position.
func (m *Identifiers) Record(id int, action Action) {
	action.ID = id
	if i, ok := m.index[id]; ok {
		m.entries[i].action = action
		return
	}
	m.index[id] = len(m.entries)
	m.entries = append(m.entries, mapping{id: id, action: action})
}

// RecordPath stores a path or power sentinel for id.
func (m *Identifiers) RecordPath(id int, path string) {
	if power, ok := settings.PowerFromSentinel(path); ok {
		m.Record(id, Action{Kind: ActionPower, Target: power.Sentinel(), Power: power})
		return
	}
	m.Record(id, Action{Kind: ActionOpenPath, Target: path})
}

// Resolve looks up the action recorded for id.
func (m *Identifiers) Resolve(id int) (Action, bool) {
	i, ok := m.index[id]
	if !ok {
		return Action{}, false
	}
	return m.entries[i].action, true
}

// Len reports how many IDs have been recorded.
func (m *Identifiers) Len() int { return len(m.entries) }

// IDs returns the recorded IDs in allocation order.
func (m *Identifiers) IDs() []int {
	out := make([]int, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.id
	}
	return out
}
