package alarm

import (
	"sync"
	"time"
)

// MockDispatcher records every instruction for tests.
type MockDispatcher struct {
	mu sync.Mutex

	Scheduled map[string]Command
	Cancelled []string
	StopCalls int
	Stopped   bool

	// PermissionGranted is returned by HasExactAlarmPermission.
	PermissionGranted bool
	// ScheduleErr, when set, fails every schedule call.
	ScheduleErr error
}

var _ Dispatcher = (*MockDispatcher)(nil)

func NewMockDispatcher() *MockDispatcher {
	return &MockDispatcher{
		Scheduled:         make(map[string]Command),
		PermissionGranted: true,
	}
}

func (m *MockDispatcher) ScheduleExact(id string, triggerAt time.Time, label, soundID string) error {
	if m.ScheduleErr != nil {
		return m.ScheduleErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Scheduled[id] = Command{
		Action:      "schedule",
		ID:          id,
		TriggerAtMs: triggerAt.UnixMilli(),
		Label:       label,
		SoundID:     soundID,
	}
	return nil
}

func (m *MockDispatcher) ScheduleExactRepeating(id string, firstAt time.Time, label, soundID string, intervalMinutes int, openUI bool) error {
	if m.ScheduleErr != nil {
		return m.ScheduleErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Scheduled[id] = Command{
		Action:          "schedule_repeating",
		ID:              id,
		TriggerAtMs:     firstAt.UnixMilli(),
		Label:           label,
		SoundID:         soundID,
		IntervalMinutes: intervalMinutes,
		OpenUI:          openUI,
	}
	return nil
}

func (m *MockDispatcher) Cancel(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Scheduled, id)
	m.Cancelled = append(m.Cancelled, id)
	return nil
}

func (m *MockDispatcher) StopActiveDelivery() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StopCalls++
	return m.Stopped
}

func (m *MockDispatcher) HasExactAlarmPermission() bool {
	return m.PermissionGranted
}

// ScheduledIDs returns the ids currently armed, for assertions.
func (m *MockDispatcher) ScheduledIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.Scheduled))
	for id := range m.Scheduled {
		ids = append(ids, id)
	}
	return ids
}
