package mocks

import (
	"sync"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
)

// MockAuditLogger implements domain.AuditLogger interface for testing. Events
// are recorded for assertions.
type MockAuditLogger struct {
	LogEventFunc func(event *domain.AuditEvent)

	mu     sync.Mutex
	events []*domain.AuditEvent
}

// NewMockAuditLogger creates a new MockAuditLogger with default behaviors
func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

// LogEvent records a business event
func (m *MockAuditLogger) LogEvent(event *domain.AuditEvent) {
	if m.LogEventFunc != nil {
		m.LogEventFunc(event)
		return
	}
	// Default behavior: record for inspection
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns the recorded events
func (m *MockAuditLogger) Events() []*domain.AuditEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.AuditEvent, len(m.events))
	copy(out, m.events)
	return out
}

var _ domain.AuditLogger = (*MockAuditLogger)(nil)
