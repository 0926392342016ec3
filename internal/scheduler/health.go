package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Components tracked by the daemon.
const (
	ComponentFetch    = "fetch"
	ComponentDatabase = "database"
)

// HealthStatus represents the health of a component.
type HealthStatus struct {
	Healthy     bool      `json:"healthy"`
	LastCheck   time.Time `json:"last_check"`
	LastSuccess time.Time `json:"last_success,omitzero"`
	LastError   error     `json:"-"`
	Message     string    `json:"message,omitempty"`
}

// HealthReport is a point-in-time view of every component.
type HealthReport struct {
	Healthy    bool                     `json:"healthy"`
	Components map[string]*HealthStatus `json:"components"`
}

// Health tracks the health of the daemon's components.
type Health struct {
	mu         sync.RWMutex
	components map[string]*HealthStatus
	now        func() time.Time
}

// NewHealth creates a new health tracker.
func NewHealth() *Health {
	return &Health{
		components: make(map[string]*HealthStatus),
		now:        time.Now,
	}
}

// SetHealthy marks a component as healthy.
func (h *Health) SetHealthy(component, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	status := h.status(component)
	status.Healthy = true
	status.LastCheck = h.now()
	status.LastSuccess = status.LastCheck
	status.LastError = nil
	status.Message = message
}

// SetUnhealthy marks a component as unhealthy. LastSuccess is kept.
func (h *Health) SetUnhealthy(component string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	status := h.status(component)
	status.Healthy = false
	status.LastCheck = h.now()
	status.LastError = err
	status.Message = err.Error()
}

// status returns the entry for component, creating it. Callers hold mu.
func (h *Health) status(component string) *HealthStatus {
	s, ok := h.components[component]
	if !ok {
		s = &HealthStatus{}
		h.components[component] = s
	}
	return s
}

// GetStatus returns a copy of a component's status, or nil if it was never reported.
func (h *Health) GetStatus(component string) *HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if status, ok := h.components[component]; ok {
		c := *status
		return &c
	}
	return nil
}

// Components returns the reported component names, sorted.
func (h *Health) Components() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.components))
	for name := range h.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Report returns copies of all statuses and the overall verdict.
func (h *Health) Report() HealthReport {
	h.mu.RLock()
	defer h.mu.RUnlock()

	report := HealthReport{
		Healthy:    true,
		Components: make(map[string]*HealthStatus, len(h.components)),
	}
	for name, status := range h.components {
		c := *status
		report.Components[name] = &c
		if !status.Healthy {
			report.Healthy = false
		}
	}
	return report
}

// IsOverallHealthy returns true if all components are healthy.
func (h *Health) IsOverallHealthy() bool {
	return h.Report().Healthy
}
