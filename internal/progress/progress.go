// Package progress defines the progress reporting primitives shared by scan
// strategies and the presentation layers. Strategies publish normalized
// progress values; observers decide how to surface them (channel fan-in for
// the CLI/TUI, structured logs, or nothing at all).
package progress

import (
	"sync"

	"github.com/agbru/dupscan/internal/logging"
)

// ProgressUpdate is a single progress notification from one scanner.
type ProgressUpdate struct {
	// ScannerIndex identifies which scanner sent the update.
	ScannerIndex int
	// Value is the normalized progress in [0.0, 1.0].
	Value float64
}

// ProgressCallback receives normalized progress values for one scanner.
type ProgressCallback func(value float64)

// ProgressObserver is notified of progress updates.
type ProgressObserver interface {
	Update(scannerIndex int, value float64)
}

// ProgressSubject fans progress updates out to registered observers.
// Registration is guarded by a mutex; the hot scan loop avoids that lock by
// taking a Freeze snapshot once per scan and notifying through the returned
// callback.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

// NewProgressSubject creates a new progress subject.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds an observer. Registering nil is a no-op.
func (s *ProgressSubject) Register(obs ProgressObserver) {
	if obs == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, obs)
}

// Freeze returns a lock-free callback bound to the scanner index, notifying
// the observers registered at the time of the call. Observers registered
// afterwards are not seen by the returned callback.
func (s *ProgressSubject) Freeze(scannerIndex int) ProgressCallback {
	s.mu.RLock()
	snapshot := make([]ProgressObserver, len(s.observers))
	copy(snapshot, s.observers)
	s.mu.RUnlock()

	return func(value float64) {
		for _, obs := range snapshot {
			obs.Update(scannerIndex, value)
		}
	}
}

// Notify delivers an update to every currently registered observer.
// Freeze is preferred in scan loops; Notify serves one-shot notifications.
func (s *ProgressSubject) Notify(scannerIndex int, value float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, obs := range s.observers {
		obs.Update(scannerIndex, value)
	}
}

// ChannelObserver forwards updates to a channel. Sends never block: when the
// channel is full the update is dropped, since progress is advisory and a
// slow consumer must not stall the workers.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver creates a channel observer. A nil channel yields an
// observer that discards everything.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// Update implements ProgressObserver.
func (o *ChannelObserver) Update(scannerIndex int, value float64) {
	if o.ch == nil {
		return
	}
	select {
	case o.ch <- ProgressUpdate{ScannerIndex: scannerIndex, Value: value}:
	default:
	}
}

// LoggingObserver writes progress updates to a structured logger at debug
// level. Intended for verbose non-interactive runs.
type LoggingObserver struct {
	logger logging.Logger
}

// NewLoggingObserver creates a logging observer.
func NewLoggingObserver(logger logging.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// Update implements ProgressObserver.
func (o *LoggingObserver) Update(scannerIndex int, value float64) {
	if o.logger == nil {
		return
	}
	o.logger.Debug("scan progress",
		logging.Int("scanner", scannerIndex),
		logging.Float64("value", value),
	)
}

// NoOpObserver discards all updates.
type NoOpObserver struct{}

// NewNoOpObserver creates a no-op observer.
func NewNoOpObserver() NoOpObserver { return NoOpObserver{} }

// Update implements ProgressObserver.
func (NoOpObserver) Update(int, float64) {}
