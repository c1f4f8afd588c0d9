package stats

import (
	"sort"
	"sync"

	"github.com/VTGare/minesweeper/game"
	"go.uber.org/atomic"
)

// Stats counts domain events by kind over the lifetime of the process.
type Stats struct {
	Events map[game.EventKind]*atomic.Int64
	Games  *atomic.Int64

	mut sync.RWMutex
}

type Item struct {
	Name  string
	Count int64
}

func New() *Stats {
	stats := &Stats{
		Events: map[game.EventKind]*atomic.Int64{},
		Games:  atomic.NewInt64(0),
	}

	for _, kind := range game.EventKinds() {
		stats.Events[kind] = atomic.NewInt64(0)
	}

	return stats
}

func (m *Stats) IncrementGame() {
	m.Games.Inc()
}

func (m *Stats) Record(events ...game.Event) {
	for _, event := range events {
		m.increment(event.Kind())
	}
}

func (m *Stats) increment(kind game.EventKind) {
	m.mut.RLock()
	count, ok := m.Events[kind]
	m.mut.RUnlock()

	if !ok {
		m.mut.Lock()
		if count, ok = m.Events[kind]; !ok {
			count = atomic.NewInt64(0)
			m.Events[kind] = count
		}
		m.mut.Unlock()
	}

	count.Add(1)
}

func (m *Stats) Count(kind game.EventKind) int64 {
	m.mut.RLock()
	defer m.mut.RUnlock()

	if count, ok := m.Events[kind]; ok {
		return count.Load()
	}

	return 0
}

// Items returns per-kind counts, most frequent first, and their total.
func (m *Stats) Items() ([]Item, int64) {
	m.mut.RLock()
	defer m.mut.RUnlock()

	var (
		items = make([]Item, 0, len(m.Events))
		total int64
	)

	for kind, count := range m.Events {
		c := count.Load()
		items = append(items, Item{
			Name:  string(kind),
			Count: c,
		})

		total += c
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Name < items[j].Name
		}

		return items[i].Count > items[j].Count
	})

	return items, total
}
