// Package report composes named sections into a plain-text diagnostic
// report. Sections run in registration order; a failing section degrades to
// a placeholder line so the rest of the report still renders.
package report

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
)

// Section builds one named block of a report.
type Section interface {
	Name() string
	Run(ctx context.Context) (string, error)
}

// SectionFunc adapts a titled function to the Section interface.
type SectionFunc struct {
	Title string
	Fn    func(ctx context.Context) (string, error)
}

func (s SectionFunc) Name() string { return s.Title }

func (s SectionFunc) Run(ctx context.Context) (string, error) { return s.Fn(ctx) }

// Manager handles section lifecycle.
type Manager struct {
	sections map[string]Section
	order    []string
	mu       sync.RWMutex
}

// NewManager creates an empty report manager.
func NewManager() *Manager {
	return &Manager{sections: make(map[string]Section)}
}

// Register adds a section. Re-registering a name replaces the section but
// keeps its original position in the report.
func (m *Manager) Register(s Section) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := s.Name()
	if _, exists := m.sections[name]; !exists {
		m.order = append(m.order, name)
	}
	m.sections[name] = s
}

// Run renders every section in registration order.
func (m *Manager) Run(ctx context.Context) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var b strings.Builder
	for _, name := range m.order {
		out, err := m.sections[name].Run(ctx)
		if err != nil {
			log.Printf("Section %s failed: %v", name, err)
			out = fmt.Sprintf("(unavailable: %v)", err)
		}
		fmt.Fprintf(&b, "== %s ==\n%s\n\n", name, out)
	}
	return b.String()
}
