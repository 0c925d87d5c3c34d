package offline

import (
	"log"
	"sync/atomic"
)

// Monitor tracks reachability of the backing store as a plain two-state
// flag. There is no heartbeat: callers flip the state when an operation
// succeeds or fails to reach the store.
type Monitor struct {
	offline atomic.Bool // zero value = online
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) Online() bool {
	return !m.offline.Load()
}

// SetOnline flips the flag, logging only actual transitions.
func (m *Monitor) SetOnline(online bool) {
	changed := m.offline.Swap(!online) == online
	if !changed {
		return
	}
	if online {
		log.Println("✅ Back online: store reachable again")
	} else {
		log.Println("⚠️ Offline: store unreachable, falling back to cached login")
	}
}
