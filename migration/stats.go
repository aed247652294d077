package migration

import (
	"github.com/napalu/goopt/v2/types/orderedmap"
)

// Counter names reported by the migration passes
const (
	FilesScanned         = "files_scanned"
	FilesModified        = "files_modified"
	TrCallsUpdated       = "tr_calls_updated"
	ImportsAdded         = "imports_added"
	WidgetsConverted     = "widgets_converted"
	StatelessToConsumer  = "stateless_to_consumer"
	StatefulToConsumer   = "stateful_to_consumer"
	RiverpodImportsAdded = "riverpod_imports_added"
	GetImportsRemoved    = "get_imports_removed"
	FilesFailed          = "files_failed"
)

// Stats is a set of named counters kept in registration order
type Stats struct {
	counters *orderedmap.OrderedMap[string, int]
}

// NewStats creates Stats with the given counters registered at zero
func NewStats(names ...string) *Stats {
	s := &Stats{counters: orderedmap.NewOrderedMap[string, int]()}
	for _, name := range names {
		if _, found := s.counters.Get(name); !found {
			s.counters.Set(name, 0)
		}
	}
	return s
}

// Add increments name by n, registering it if needed
func (s *Stats) Add(name string, n int) {
	v, _ := s.counters.Get(name)
	s.counters.Set(name, v+n)
}

// Get returns the value of name, 0 when it is unknown
func (s *Stats) Get(name string) int {
	v, _ := s.counters.Get(name)
	return v
}

// Merge adds every counter of other to s
func (s *Stats) Merge(other *Stats) {
	if other == nil {
		return
	}
	other.Each(func(name string, n int) {
		s.Add(name, n)
	})
}

// Each calls fn for every counter in registration order
func (s *Stats) Each(fn func(name string, n int)) {
	for f := s.counters.Front(); f != nil; f = f.Next() {
		fn(*f.Key, f.Value)
	}
}

// Names returns the registered counter names in order
func (s *Stats) Names() []string {
	var names []string
	s.Each(func(name string, _ int) {
		names = append(names, name)
	})
	return names
}
