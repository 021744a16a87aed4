// Package status collects process-wide metrics grouped into named sections.
package status

import (
	"sort"
	"sync"
)

var registry = struct {
	m        sync.Mutex
	sections map[string]*Section
}{sections: make(map[string]*Section)}

// NewSection returns the Section with the provided name, creating it on first use.
func NewSection(name string) *Section {
	registry.m.Lock()
	defer registry.m.Unlock()

	section, exists := registry.sections[name]
	if !exists {
		section = newEmptySection(name)
		registry.sections[name] = section
	}
	return section
}

// Sections returns all registered sections ordered by name
func Sections() []*Section {
	registry.m.Lock()
	defer registry.m.Unlock()

	var out []*Section
	for _, s := range registry.sections {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Section groups Counters, Ratios and Breakdowns.
type Section struct {
	Name string

	Counters   map[string]*Counter
	Ratios     map[string]*Ratio
	Breakdowns map[string]*Breakdown

	m sync.Mutex
}

func newEmptySection(name string) *Section {
	return &Section{
		Name:       name,
		Counters:   make(map[string]*Counter),
		Ratios:     make(map[string]*Ratio),
		Breakdowns: make(map[string]*Breakdown),
	}
}

// Counter returns the counter with the provided name.
func (s *Section) Counter(name string) *Counter {
	s.m.Lock()
	defer s.m.Unlock()

	counter, exists := s.Counters[name]
	if !exists {
		counter = newCounter()
		s.Counters[name] = counter
	}
	return counter
}

// Ratio returns the ratio metric with the provided name.
func (s *Section) Ratio(name string) *Ratio {
	s.m.Lock()
	defer s.m.Unlock()

	ratio, exists := s.Ratios[name]
	if !exists {
		ratio = newRatio()
		s.Ratios[name] = ratio
	}
	return ratio
}

// Breakdown returns the Breakdown metric with the provided name.
func (s *Section) Breakdown(name string) *Breakdown {
	s.m.Lock()
	defer s.m.Unlock()

	breakdown, exists := s.Breakdowns[name]
	if !exists {
		breakdown = newBreakdown()
		s.Breakdowns[name] = breakdown
	}
	return breakdown
}
