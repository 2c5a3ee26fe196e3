// File: internal/monitoring/resource_monitor.go
package monitoring

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// ResourceUsage is a point-in-time snapshot of process-host resource
// pressure, surfaced on /healthz so a caller of the trigger API can judge
// whether it's safe to start another session.
type ResourceUsage struct {
	CPUPercent    float64   `json:"cpuPercent"`
	MemoryUsedMB  uint64    `json:"memoryUsedMB"`
	MemoryPercent float64   `json:"memoryPercent"`
	DiskUsedGB    uint64    `json:"diskUsedGB"`
	DiskPercent   float64   `json:"diskPercent"`
	Timestamp     time.Time `json:"timestamp"`
}

// ResourceAlert records a threshold crossing for the system-wide usage.
type ResourceAlert struct {
	Type      string    `json:"type"` // "cpu", "memory", "disk"
	Severity  string    `json:"severity"`
	Value     float64   `json:"value"`
	Threshold float64   `json:"threshold"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// SessionResourceLimits bounds how many discovery sessions may be in
// flight at once and how long one may run; a
// discovery session is I/O-bound HTTP fan-out, not a CPU/memory-heavy
// worker, so the only limit worth enforcing here is concurrency.
type SessionResourceLimits struct {
	MaxConcurrentSessions int           `json:"maxConcurrentSessions"`
	MaxSessionDuration    time.Duration `json:"maxSessionDuration"`
}

// AlertThresholds controls when system-wide usage produces a ResourceAlert.
type AlertThresholds struct {
	CPUWarning     float64 `json:"cpuWarning"`
	CPUCritical    float64 `json:"cpuCritical"`
	MemoryWarning  float64 `json:"memoryWarning"`
	MemoryCritical float64 `json:"memoryCritical"`
	DiskWarning    float64 `json:"diskWarning"`
	DiskCritical   float64 `json:"diskCritical"`
}

// ResourceMonitor samples host CPU/memory/disk on an interval and tracks
// which discovery sessions are currently running, backing the /healthz
// liveness endpoint. It is not a dashboard: it has no history store and no UI,
// just the current snapshot plus a bounded alert ring buffer.
type ResourceMonitor struct {
	systemUsage     *ResourceUsage
	activeSessions  map[uuid.UUID]time.Time
	alerts          []ResourceAlert
	limits          SessionResourceLimits
	alertThresholds AlertThresholds
	mutex           sync.RWMutex
	stopChan        chan struct{}
}

// NewResourceMonitor creates a ResourceMonitor with conservative defaults.
func NewResourceMonitor() *ResourceMonitor {
	return &ResourceMonitor{
		systemUsage:    &ResourceUsage{},
		activeSessions: make(map[uuid.UUID]time.Time),
		alerts:         make([]ResourceAlert, 0),
		limits: SessionResourceLimits{
			MaxConcurrentSessions: 10,
			MaxSessionDuration:    10 * time.Minute,
		},
		alertThresholds: AlertThresholds{
			CPUWarning:     70.0,
			CPUCritical:    90.0,
			MemoryWarning:  80.0,
			MemoryCritical: 95.0,
			DiskWarning:    85.0,
			DiskCritical:   95.0,
		},
		stopChan: make(chan struct{}),
	}
}

// StartMonitoring samples system usage on a fixed interval until ctx is
// cancelled or Stop is called.
func (rm *ResourceMonitor) StartMonitoring(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	rm.updateSystemUsage()
	for {
		select {
		case <-ctx.Done():
			return
		case <-rm.stopChan:
			return
		case <-ticker.C:
			rm.updateSystemUsage()
			rm.checkAlerts()
		}
	}
}

func (rm *ResourceMonitor) updateSystemUsage() {
	rm.mutex.Lock()
	defer rm.mutex.Unlock()

	if cpuPercent, err := cpu.Percent(0, false); err == nil && len(cpuPercent) > 0 {
		rm.systemUsage.CPUPercent = cpuPercent[0]
	}
	if memInfo, err := mem.VirtualMemory(); err == nil {
		rm.systemUsage.MemoryUsedMB = memInfo.Used / 1024 / 1024
		rm.systemUsage.MemoryPercent = memInfo.UsedPercent
	}
	if diskInfo, err := disk.Usage("/"); err == nil {
		rm.systemUsage.DiskUsedGB = diskInfo.Used / 1024 / 1024 / 1024
		rm.systemUsage.DiskPercent = diskInfo.UsedPercent
	}
	rm.systemUsage.Timestamp = time.Now().UTC()
}

func (rm *ResourceMonitor) checkAlerts() {
	rm.mutex.Lock()
	defer rm.mutex.Unlock()

	now := time.Now().UTC()
	rm.alertIfExceeded(ResourceTypeCPU, rm.systemUsage.CPUPercent, rm.alertThresholds.CPUWarning, rm.alertThresholds.CPUCritical, now)
	rm.alertIfExceeded(ResourceTypeMemory, rm.systemUsage.MemoryPercent, rm.alertThresholds.MemoryWarning, rm.alertThresholds.MemoryCritical, now)
	rm.alertIfExceeded(ResourceTypeDisk, rm.systemUsage.DiskPercent, rm.alertThresholds.DiskWarning, rm.alertThresholds.DiskCritical, now)
}

// alertIfExceeded must be called with rm.mutex already held.
func (rm *ResourceMonitor) alertIfExceeded(kind string, value, warning, critical float64, now time.Time) {
	switch {
	case value >= critical:
		rm.addAlertLocked(ResourceAlert{Type: kind, Severity: "critical", Value: value, Threshold: critical, Timestamp: now,
			Message: fmt.Sprintf("critical %s usage: %.1f%%", kind, value)})
	case value >= warning:
		rm.addAlertLocked(ResourceAlert{Type: kind, Severity: "warning", Value: value, Threshold: warning, Timestamp: now,
			Message: fmt.Sprintf("high %s usage: %.1f%%", kind, value)})
	}
}

// addAlertLocked must be called with rm.mutex already held.
func (rm *ResourceMonitor) addAlertLocked(alert ResourceAlert) {
	rm.alerts = append(rm.alerts, alert)
	if len(rm.alerts) > 100 {
		rm.alerts = rm.alerts[len(rm.alerts)-100:]
	}
}

// GetSystemUsage returns the most recent system-wide sample.
func (rm *ResourceMonitor) GetSystemUsage() ResourceUsage {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()
	return *rm.systemUsage
}

// GetActiveAlerts returns up to limit most recent alerts (0 = all).
func (rm *ResourceMonitor) GetActiveAlerts(limit int) []ResourceAlert {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()

	if limit <= 0 || limit > len(rm.alerts) {
		limit = len(rm.alerts)
	}
	start := len(rm.alerts) - limit
	if start < 0 {
		start = 0
	}
	alerts := make([]ResourceAlert, limit)
	copy(alerts, rm.alerts[start:])
	return alerts
}

// RegisterSession begins tracking an in-flight discovery session
// (called by the orchestrator at the start of Execute).
func (rm *ResourceMonitor) RegisterSession(sessionID uuid.UUID) {
	rm.mutex.Lock()
	defer rm.mutex.Unlock()
	rm.activeSessions[sessionID] = time.Now().UTC()
}

// UnregisterSession stops tracking a session (called when Execute returns).
func (rm *ResourceMonitor) UnregisterSession(sessionID uuid.UUID) {
	rm.mutex.Lock()
	defer rm.mutex.Unlock()
	delete(rm.activeSessions, sessionID)
}

// ActiveSessionCount reports how many discovery sessions are in flight.
func (rm *ResourceMonitor) ActiveSessionCount() int {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()
	return len(rm.activeSessions)
}

// AtCapacity reports whether a new session would exceed
// SessionResourceLimits.MaxConcurrentSessions.
func (rm *ResourceMonitor) AtCapacity() bool {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()
	return len(rm.activeSessions) >= rm.limits.MaxConcurrentSessions
}

// Stop halts the monitoring loop started by StartMonitoring.
func (rm *ResourceMonitor) Stop() {
	close(rm.stopChan)
}
